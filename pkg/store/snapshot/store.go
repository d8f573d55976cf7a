// Package snapshot reads and writes the JSON records that make exported
// reports re-editable. Snapshots live in a dedicated data folder separate
// from the exported documents, one file per report, named after the
// document's base filename.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fraud-tools/scam-report-builder/pkg/models/store"
)

var (
	ErrNotFound = errors.New("snapshot not found")
	ErrCorrupt  = errors.New("snapshot file is corrupt")
)

type Store struct {
	dir    string
	logger zerolog.Logger
}

func NewStore(dir string, logger zerolog.Logger) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("snapshot folder must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot folder: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// PathForDocument derives the snapshot path for an exported document: the
// document's base filename with a .json extension inside the data folder.
func (s *Store) PathForDocument(documentPath string) string {
	base := filepath.Base(documentPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(s.dir, stem+".json")
}

// Write persists a snapshot atomically. An existing file at the same path
// is overwritten: re-saving a report replaces its snapshot rather than
// creating a sibling.
func (s *Store) Write(path string, snap store.ReportSnapshot) error {
	encoded, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	encoded = append(encoded, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(encoded); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}

	s.logger.Debug().Str("path", path).Msg("snapshot written")
	return nil
}

// Read loads a snapshot. Missing files map to ErrNotFound and malformed
// JSON to ErrCorrupt so callers can surface a "cannot modify" message
// without affecting the export flow.
func (s *Store) Read(path string) (store.ReportSnapshot, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return store.ReportSnapshot{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return store.ReportSnapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var snap store.ReportSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return store.ReportSnapshot{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return snap, nil
}
