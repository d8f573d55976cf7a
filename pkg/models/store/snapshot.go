package store

import "github.com/fraud-tools/scam-report-builder/pkg/models/domain"

// ImageBlob is a single embedded image in a snapshot file, base64 encoded.
type ImageBlob struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

// ReportSnapshot is the on-disk JSON record written next to every exported
// report so the operator can reopen and amend it later. One file per
// report; a snapshot is identified by its own path, not by report number.
type ReportSnapshot struct {
	ReportData         domain.ReportContent   `json:"report_data"`
	Images             map[string][]ImageBlob `json:"images"`
	TemplateKey        string                 `json:"template_key"`
	ReportNumber       int                    `json:"report_number"`
	ReportFormat       string                 `json:"report_format"`
	OriginalOutputPath string                 `json:"original_output_path,omitempty"`

	// Written by older versions under a different name; honored on load.
	LegacyOutputPath string `json:"original_odt_path,omitempty"`
}

// OutputPath returns the document path the snapshot was exported to,
// falling back to the legacy field name.
func (s ReportSnapshot) OutputPath() string {
	if s.OriginalOutputPath != "" {
		return s.OriginalOutputPath
	}
	return s.LegacyOutputPath
}
