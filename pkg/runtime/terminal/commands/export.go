package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fraud-tools/scam-report-builder/pkg/adapters"
	"github.com/fraud-tools/scam-report-builder/pkg/models/domain"
	"github.com/fraud-tools/scam-report-builder/pkg/models/store"
	"github.com/fraud-tools/scam-report-builder/pkg/services/odt"
	"github.com/fraud-tools/scam-report-builder/pkg/services/report"
)

type ExportCmd struct {
	inputPath   string
	outputPath  string
	templateKey string
	number      int
	format      string
	attachments []string
	reports     *report.Service
	out         io.Writer
}

func NewExportCmd(reports *report.Service, out io.Writer) *cobra.Command {
	ec := &ExportCmd{reports: reports, out: out}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate an ODT report from a report data file",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.inputPath, "input", "", "Path to the report data JSON file")
	cmd.Flags().StringVar(&ec.outputPath, "out", "", "Destination .odt path (default: configured reports folder)")
	cmd.Flags().StringVar(&ec.templateKey, "template", "", "Template key (default: taken from the data file)")
	cmd.Flags().IntVar(&ec.number, "number", 0, "Report number (default: next in sequence)")
	cmd.Flags().StringVar(&ec.format, "format", "", "Numbering format, e.g. \"{number:04d}\"")
	cmd.Flags().StringArrayVar(&ec.attachments, "attach", nil,
		"Attach an evidence image as category=path (categories: passport_ids, scammer_photos, victim_ids, others)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, args []string) error {
	content, images, templateKey, err := readReportFile(ec.inputPath)
	if err != nil {
		return err
	}
	if ec.templateKey != "" {
		templateKey = ec.templateKey
	}

	if err := attachImages(images, ec.attachments); err != nil {
		return err
	}

	result, err := ec.reports.Export(report.ExportRequest{
		Content:     content,
		Images:      images,
		TemplateKey: templateKey,
		Number:      ec.number,
		Format:      ec.format,
		OutputPath:  ec.outputPath,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(ec.out, "Report #%d saved to %s\n", result.Number, result.DocumentPath)
	fmt.Fprintf(ec.out, "Snapshot: %s\n", result.SnapshotPath)
	return nil
}

// readReportFile accepts the snapshot JSON shape, so both hand-written data
// files and previously saved snapshots work as export input.
func readReportFile(path string) (domain.ReportContent, domain.ImageSet, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, "", fmt.Errorf("read report data: %w", err)
	}

	var snap store.ReportSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, nil, "", fmt.Errorf("parse report data: %w", err)
	}
	if snap.ReportData == nil {
		return nil, nil, "", fmt.Errorf("report data file %s has no report_data", path)
	}

	images, err := adapters.ImagesFromSnapshot(snap)
	if err != nil {
		return nil, nil, "", err
	}
	return snap.ReportData, images, snap.TemplateKey, nil
}

// attachImages adds category=path attachments from the command line,
// re-encoding each image to JPEG.
func attachImages(images domain.ImageSet, specs []string) error {
	for _, spec := range specs {
		category, path, ok := strings.Cut(spec, "=")
		if !ok || category == "" || path == "" {
			return fmt.Errorf("invalid --attach value %q, expected category=path", spec)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read attachment %s: %w", path, err)
		}

		cat := domain.ImageCategory(category)
		images[cat] = append(images[cat], domain.ImageAttachment{
			Name: fileBase(path),
			Data: odt.NormalizeJPEG(data),
		})
	}
	return nil
}
