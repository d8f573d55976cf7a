package api

// Template is the wire shape returned by the template endpoints.
type Template struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Builtin     bool   `json:"builtin"`
}

// ExportResult is returned by the report export endpoint.
type ExportResult struct {
	DocumentPath string `json:"document_path"`
	SnapshotPath string `json:"snapshot_path"`
	ReportNumber int    `json:"report_number"`
}

// Error is the uniform error payload.
type Error struct {
	Message string `json:"message"`
}
