package odt

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"sort"

	// Decoders for dimension probing; sources may be any of these before
	// re-encoding.
	_ "image/gif"
	_ "image/png"

	"github.com/fraud-tools/scam-report-builder/pkg/models/domain"
)

const (
	displayDPI     = 96.0
	maxWidthIn     = 6.0
	jpegQuality    = 90
	fallbackWidth  = "4in"
	fallbackHeight = "3in"
)

// stagedImage is one image persisted into the Pictures/ staging folder,
// with its archive filename and precomputed display size. Index is unique
// and contiguous from 1 across all categories of a single document; it
// derives both the filename (image_<index>.jpg) and the graphic style
// name (fr<index>).
type stagedImage struct {
	Filename string
	Category domain.ImageCategory
	Name     string
	Width    string
	Height   string
	Index    int
}

// stageImages persists every non-empty attachment under Pictures/ and
// computes its display dimensions. Categories are walked in the fixed
// evidence order so index assignment is deterministic.
func (a *Assembler) stageImages(staging string, images domain.ImageSet) ([]stagedImage, error) {
	var entries []stagedImage
	index := 1

	for _, category := range orderedCategories(images) {
		for _, att := range images[category] {
			if len(att.Data) == 0 {
				continue
			}

			filename := fmt.Sprintf("image_%d.jpg", index)
			path := filepath.Join(staging, "Pictures", filename)
			if err := os.WriteFile(path, att.Data, 0o644); err != nil {
				return nil, fmt.Errorf("write %s: %w", filename, err)
			}

			width, height, err := displaySize(att.Data)
			if err != nil {
				// A broken image must not abort the export; fall back to a
				// fixed frame and keep going.
				a.logger.Warn().
					Err(err).
					Str("image", att.Name).
					Str("category", string(category)).
					Msg("image decode failed, using placeholder dimensions")
				width, height = fallbackWidth, fallbackHeight
			}

			entries = append(entries, stagedImage{
				Filename: filename,
				Category: category,
				Name:     att.Name,
				Width:    width,
				Height:   height,
				Index:    index,
			})
			index++
		}
	}

	return entries, nil
}

// orderedCategories returns the evidence categories present in the set in
// fixed display order, with any unrecognized categories sorted after them.
func orderedCategories(images domain.ImageSet) []domain.ImageCategory {
	known := make(map[domain.ImageCategory]bool, len(domain.EvidenceCategoryOrder))
	var out []domain.ImageCategory
	for _, c := range domain.EvidenceCategoryOrder {
		known[c] = true
		if _, ok := images[c]; ok {
			out = append(out, c)
		}
	}

	var extra []domain.ImageCategory
	for c := range images {
		if !known[c] {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// displaySize converts pixel dimensions to inches at 96 DPI, capping width
// at 6in and scaling height to preserve the aspect ratio.
func displaySize(data []byte) (string, string, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", "", err
	}

	widthIn := float64(cfg.Width) / displayDPI
	heightIn := float64(cfg.Height) / displayDPI
	if widthIn > maxWidthIn {
		heightIn = float64(cfg.Height) * maxWidthIn / float64(cfg.Width)
		widthIn = maxWidthIn
	}

	return fmt.Sprintf("%.2fin", widthIn), fmt.Sprintf("%.2fin", heightIn), nil
}

// NormalizeJPEG re-encodes an image of any supported format to JPEG, the
// only format embedded in generated documents. Input that cannot be decoded
// is returned unchanged so the placeholder-size path still applies later.
func NormalizeJPEG(data []byte) []byte {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}
	if format == "jpeg" {
		return data
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return data
	}
	return buf.Bytes()
}
