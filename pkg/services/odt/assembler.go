// Package odt assembles OpenDocument Text packages from report content and
// attached evidence images. A document is staged in a temporary directory
// and published atomically; a failed run never leaves a partial file at the
// destination.
package odt

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/fraud-tools/scam-report-builder/pkg/models/domain"
)

// MimeType is the ODF package media type. It must be the first archive
// entry, stored without compression.
const MimeType = "application/vnd.oasis.opendocument.text"

type Assembler struct {
	logger zerolog.Logger
	now    func() time.Time
}

func NewAssembler(logger zerolog.Logger) *Assembler {
	return &Assembler{
		logger: logger,
		now:    time.Now,
	}
}

// Create renders content plus images into a single .odt file at outputPath.
// All parts are assembled in a temporary staging directory which is removed
// on every exit path; the final archive is written next to the destination
// and moved into place in one rename.
func (a *Assembler) Create(content domain.ReportContent, outputPath string, images domain.ImageSet) error {
	staging, err := os.MkdirTemp("", "odt-staging-*")
	if err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(staging); rmErr != nil {
			a.logger.Warn().Err(rmErr).Str("dir", staging).Msg("failed to clean up staging directory")
		}
	}()

	for _, dir := range []string{"Pictures", "META-INF"} {
		if err := os.Mkdir(filepath.Join(staging, dir), 0o755); err != nil {
			return fmt.Errorf("create staging layout: %w", err)
		}
	}

	entries, err := a.stageImages(staging, images)
	if err != nil {
		a.logger.Error().Err(err).Msg("image staging failed")
		return fmt.Errorf("stage images: %w", err)
	}

	parts := map[string]string{
		"mimetype":              MimeType,
		"META-INF/manifest.xml": buildManifest(entries),
		"content.xml":           a.buildContent(content, entries),
		"styles.xml":            stylesXML,
		"meta.xml":              a.buildMeta(),
	}
	for name, body := range parts {
		if err := os.WriteFile(filepath.Join(staging, name), []byte(body), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	if err := writeArchive(staging, outputPath, entries); err != nil {
		a.logger.Error().Err(err).Str("path", outputPath).Msg("odt packaging failed")
		return fmt.Errorf("package document: %w", err)
	}

	a.logger.Info().
		Str("path", outputPath).
		Int("images", len(entries)).
		Msg("odt document generated")
	return nil
}
