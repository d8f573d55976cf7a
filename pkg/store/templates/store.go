// Package templates persists user-defined report templates, one JSON file
// per template, inside a dedicated folder.
package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNotFound = errors.New("template file not found")

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("template folder must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create template folder: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// List returns the slugs of every stored template file, sorted by name.
func (s *Store) List() ([]string, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read template folder: %w", err)
	}

	var slugs []string
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(slugs)
	return slugs, nil
}

func (s *Store) Exists(slug string) bool {
	_, err := os.Stat(s.path(slug))
	return err == nil
}

func (s *Store) Read(slug string) ([]byte, error) {
	data, err := os.ReadFile(s.path(slug))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read template %q: %w", slug, err)
	}
	return data, nil
}

// Write stores a template file atomically via a hidden temp file and rename.
func (s *Store) Write(slug string, data []byte) error {
	target := s.path(slug)
	tmp, err := os.CreateTemp(s.dir, "."+slug+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp template file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write template %q: %w", slug, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write template %q: %w", slug, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write template %q: %w", slug, err)
	}
	return os.Rename(tmp.Name(), target)
}

func (s *Store) Delete(slug string) error {
	err := os.Remove(s.path(slug))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

func (s *Store) path(slug string) string {
	return filepath.Join(s.dir, slug+".json")
}
