package adapters

import (
	"encoding/base64"
	"fmt"

	"github.com/fraud-tools/scam-report-builder/pkg/models/domain"
	"github.com/fraud-tools/scam-report-builder/pkg/models/store"
)

// SnapshotFromDomain builds the on-disk snapshot record for an exported
// report. Attachments without image data are dropped rather than stored as
// empty blobs.
func SnapshotFromDomain(
	content domain.ReportContent,
	images domain.ImageSet,
	templateKey string,
	number int,
	format string,
	outputPath string,
) store.ReportSnapshot {
	encoded := make(map[string][]store.ImageBlob, len(images))
	for category, list := range images {
		blobs := make([]store.ImageBlob, 0, len(list))
		for _, att := range list {
			if len(att.Data) == 0 {
				continue
			}
			blobs = append(blobs, store.ImageBlob{
				Name: att.Name,
				Data: base64.StdEncoding.EncodeToString(att.Data),
			})
		}
		encoded[string(category)] = blobs
	}

	return store.ReportSnapshot{
		ReportData:         content,
		Images:             encoded,
		TemplateKey:        templateKey,
		ReportNumber:       number,
		ReportFormat:       format,
		OriginalOutputPath: outputPath,
	}
}

// ImagesFromSnapshot decodes the base64 image blobs of a snapshot back into
// an attachment set.
func ImagesFromSnapshot(snap store.ReportSnapshot) (domain.ImageSet, error) {
	images := make(domain.ImageSet, len(snap.Images))
	for category, blobs := range snap.Images {
		list := make([]domain.ImageAttachment, 0, len(blobs))
		for _, blob := range blobs {
			data, err := base64.StdEncoding.DecodeString(blob.Data)
			if err != nil {
				return nil, fmt.Errorf("decode image %q in category %q: %w", blob.Name, category, err)
			}
			list = append(list, domain.ImageAttachment{Name: blob.Name, Data: data})
		}
		images[domain.ImageCategory(category)] = list
	}
	return images, nil
}
