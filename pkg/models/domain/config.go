package domain

// Settings holds the persisted application configuration. Extra carries
// keys the current version does not recognize so a round-trip through the
// config file never discards them.
type Settings struct {
	LastReportNumber int
	NumberingFormat  string
	ReportFolder     string
	LastUsedFolder   string
	OutputDirectory  string // legacy key, superseded by ReportFolder
	LastTemplateKey  string
	Extra            map[string]any
}

// DefaultSettings mirrors the defaults applied when the config file is
// missing or unreadable.
func DefaultSettings() Settings {
	return Settings{
		LastReportNumber: 0,
		NumberingFormat:  "{number}",
	}
}
