// Package config persists application settings as a flat JSON mapping.
// Load failures are never fatal: the store falls back to defaults and only
// logs the problem. Unknown keys survive a load/save round trip.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/fraud-tools/scam-report-builder/pkg/models/domain"
)

const (
	keyLastReportNumber = "last_report_number"
	keyNumberingFormat  = "numbering_format"
	keyReportFolder     = "report_folder"
	keyLastUsedFolder   = "last_used_folder"
	keyOutputDirectory  = "output_directory"
	keyLastTemplateKey  = "last_template_key"
)

var recognizedKeys = []string{
	keyLastReportNumber,
	keyNumberingFormat,
	keyReportFolder,
	keyLastUsedFolder,
	keyOutputDirectory,
	keyLastTemplateKey,
}

type Store struct {
	path     string
	logger   zerolog.Logger
	settings domain.Settings
}

// NewStore loads the config file at path immediately. A missing or corrupt
// file yields defaults.
func NewStore(path string, logger zerolog.Logger) *Store {
	s := &Store{path: path, logger: logger}
	s.settings = s.load()
	return s
}

func (s *Store) load() domain.Settings {
	defaults := domain.DefaultSettings()

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	v.SetDefault(keyLastReportNumber, defaults.LastReportNumber)
	v.SetDefault(keyNumberingFormat, defaults.NumberingFormat)
	v.SetDefault(keyReportFolder, defaults.ReportFolder)
	v.SetDefault(keyLastUsedFolder, defaults.LastUsedFolder)
	v.SetDefault(keyOutputDirectory, defaults.OutputDirectory)
	v.SetDefault(keyLastTemplateKey, defaults.LastTemplateKey)

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("cannot read config, using defaults")
		}
	}

	settings := domain.Settings{
		LastReportNumber: v.GetInt(keyLastReportNumber),
		NumberingFormat:  v.GetString(keyNumberingFormat),
		ReportFolder:     v.GetString(keyReportFolder),
		LastUsedFolder:   v.GetString(keyLastUsedFolder),
		OutputDirectory:  v.GetString(keyOutputDirectory),
		LastTemplateKey:  v.GetString(keyLastTemplateKey),
	}
	settings.Extra = s.loadExtra()
	return settings
}

// loadExtra re-reads the raw file for the keys this version does not
// recognize. Viper lowercases every key it touches, so the unknown keys
// come from a plain decode to keep their exact spelling.
func (s *Store) loadExtra() map[string]any {
	extra := map[string]any{}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return extra
	}
	if err := json.Unmarshal(raw, &extra); err != nil {
		return map[string]any{}
	}
	for _, key := range recognizedKeys {
		delete(extra, key)
	}
	return extra
}

func (s *Store) Settings() domain.Settings {
	return s.settings
}

// Save writes the current settings back to disk atomically, unknown keys
// included.
func (s *Store) Save() error {
	out := make(map[string]any, len(s.settings.Extra)+len(recognizedKeys))
	for key, value := range s.settings.Extra {
		out[key] = value
	}
	out[keyLastReportNumber] = s.settings.LastReportNumber
	out[keyNumberingFormat] = s.settings.NumberingFormat
	out[keyReportFolder] = s.settings.ReportFolder
	out[keyLastUsedFolder] = s.settings.LastUsedFolder
	out[keyOutputDirectory] = s.settings.OutputDirectory
	out[keyLastTemplateKey] = s.settings.LastTemplateKey

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	encoded = append(encoded, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(encoded); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *Store) saveLogged() {
	if err := s.Save(); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("cannot save config")
	}
}

// NextReportNumber returns the number the next report should get together
// with the configured numbering format. The sequence advances only when
// UpdateReportNumber is called after a successful first export.
func (s *Store) NextReportNumber() (int, string) {
	return s.settings.LastReportNumber + 1, s.settings.NumberingFormat
}

func (s *Store) UpdateReportNumber(number int, format string) {
	s.settings.LastReportNumber = number
	s.settings.NumberingFormat = format
	s.saveLogged()
}

func (s *Store) SetLastTemplateKey(key string) {
	s.settings.LastTemplateKey = key
	s.saveLogged()
}

// SetReportFolder records the explicitly chosen reports folder and updates
// the dialog pre-selection folder alongside it.
func (s *Store) SetReportFolder(dir string) {
	s.settings.ReportFolder = dir
	s.settings.LastUsedFolder = dir
	s.saveLogged()
}

func (s *Store) SetLastUsedFolder(dir string) {
	s.settings.LastUsedFolder = dir
	s.saveLogged()
}

// OutputDirectory resolves where reports are saved: the explicit report
// folder first, then the last used folder, then the legacy output
// directory. Only directories that still exist qualify; an empty string
// means nothing usable is configured.
func (s *Store) OutputDirectory() string {
	for _, dir := range []string{
		s.settings.ReportFolder,
		s.settings.LastUsedFolder,
		s.settings.OutputDirectory,
	} {
		if dir != "" && dirExists(dir) {
			return dir
		}
	}
	return ""
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// numberPlaceholder matches "{number}" with an optional zero-padding
// specifier, e.g. "{number:04d}".
var numberPlaceholder = regexp.MustCompile(`\{number(?::0(\d+)d)?\}`)

// FormatReportNumber renders a report number through the configured
// numbering format. Formats without a recognizable placeholder fall back
// to the bare number.
func FormatReportNumber(format string, number int) string {
	if !numberPlaceholder.MatchString(format) {
		return strconv.Itoa(number)
	}
	return numberPlaceholder.ReplaceAllStringFunc(format, func(match string) string {
		groups := numberPlaceholder.FindStringSubmatch(match)
		if groups[1] == "" {
			return strconv.Itoa(number)
		}
		width, err := strconv.Atoi(groups[1])
		if err != nil {
			return strconv.Itoa(number)
		}
		return fmt.Sprintf("%0*d", width, number)
	})
}
