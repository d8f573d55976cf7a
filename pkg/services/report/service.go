// Package report orchestrates the export flow: numbering, output path
// resolution, document assembly and the snapshot that makes a report
// re-editable later.
package report

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/fraud-tools/scam-report-builder/pkg/adapters"
	"github.com/fraud-tools/scam-report-builder/pkg/models/domain"
	"github.com/fraud-tools/scam-report-builder/pkg/services/odt"
	"github.com/fraud-tools/scam-report-builder/pkg/services/template"
	"github.com/fraud-tools/scam-report-builder/pkg/store/config"
	"github.com/fraud-tools/scam-report-builder/pkg/store/snapshot"
)

var ErrNoReportsFolder = errors.New("no reports folder configured and no output path given")

type Service struct {
	config    *config.Store
	registry  *template.Registry
	assembler *odt.Assembler
	snapshots *snapshot.Store
	logger    zerolog.Logger
}

func NewService(
	cfg *config.Store,
	registry *template.Registry,
	assembler *odt.Assembler,
	snapshots *snapshot.Store,
	logger zerolog.Logger,
) *Service {
	return &Service{
		config:    cfg,
		registry:  registry,
		assembler: assembler,
		snapshots: snapshots,
		logger:    logger,
	}
}

// ExportRequest carries everything needed to produce one report document.
type ExportRequest struct {
	Content     domain.ReportContent
	Images      domain.ImageSet
	TemplateKey string

	// Number 0 means "take the next number from the configuration". When a
	// report is amended both values come back verbatim from its snapshot so
	// regenerating never drifts the numbering.
	Number int
	Format string

	// OutputPath empty means "derive from the configured reports folder and
	// the generated filename".
	OutputPath string

	// SnapshotPath is set when amending a previously exported report. It
	// identifies the report; amendments overwrite this snapshot and do not
	// advance the number sequence.
	SnapshotPath string
}

type ExportResult struct {
	DocumentPath string
	SnapshotPath string
	Number       int
	Format       string
}

// Export generates the document and persists its snapshot. The number
// sequence and last-template bookkeeping advance only for first-time
// exports, never for amendments.
func (s *Service) Export(req ExportRequest) (ExportResult, error) {
	if req.TemplateKey != "" {
		if _, err := s.registry.Get(req.TemplateKey); err != nil {
			return ExportResult{}, err
		}
	}

	number, format := req.Number, req.Format
	if number == 0 {
		number, format = s.config.NextReportNumber()
	}
	if format == "" {
		format = "{number}"
	}

	content := req.Content.Clone()
	content[domain.FieldReportNumber] = domain.Text(config.FormatReportNumber(format, number))

	outputPath := req.OutputPath
	if outputPath == "" {
		dir := s.config.OutputDirectory()
		if dir == "" {
			return ExportResult{}, ErrNoReportsFolder
		}
		outputPath = filepath.Join(dir, Filename(number, filenameName(content)))
	}

	if err := s.assembler.Create(content, outputPath, req.Images); err != nil {
		return ExportResult{}, fmt.Errorf("export report #%d: %w", number, err)
	}

	isAmendment := req.SnapshotPath != ""
	if !isAmendment {
		s.config.UpdateReportNumber(number, format)
		if req.TemplateKey != "" {
			s.config.SetLastTemplateKey(req.TemplateKey)
		}
	}
	s.config.SetLastUsedFolder(filepath.Dir(outputPath))

	snapPath := req.SnapshotPath
	if snapPath == "" {
		snapPath = s.snapshots.PathForDocument(outputPath)
	}
	snap := adapters.SnapshotFromDomain(content, req.Images, req.TemplateKey, number, format, outputPath)
	if err := s.snapshots.Write(snapPath, snap); err != nil {
		// The document exists; losing the snapshot only costs re-editability.
		s.logger.Warn().Err(err).Str("path", snapPath).Msg("report exported but snapshot not saved")
	}

	s.logger.Info().
		Int("number", number).
		Str("document", outputPath).
		Int("images", req.Images.Count()).
		Bool("amendment", isAmendment).
		Msg("report exported")

	return ExportResult{
		DocumentPath: outputPath,
		SnapshotPath: snapPath,
		Number:       number,
		Format:       format,
	}, nil
}

// Reopen loads a previously exported report back into an editable request.
// The original numbering is restored verbatim and the original document
// path is offered as the default save target so an amendment overwrites
// the same file.
func (s *Service) Reopen(snapshotPath string) (ExportRequest, error) {
	snap, err := s.snapshots.Read(snapshotPath)
	if err != nil {
		return ExportRequest{}, fmt.Errorf("cannot modify report: %w", err)
	}

	images, err := adapters.ImagesFromSnapshot(snap)
	if err != nil {
		return ExportRequest{}, fmt.Errorf("cannot modify report: %w", err)
	}

	return ExportRequest{
		Content:      snap.ReportData,
		Images:       images,
		TemplateKey:  snap.TemplateKey,
		Number:       snap.ReportNumber,
		Format:       snap.ReportFormat,
		OutputPath:   snap.OutputPath(),
		SnapshotPath: snapshotPath,
	}, nil
}
