// Package template resolves report template keys to field and section
// definitions, merging the immutable built-ins with user-created templates
// discovered from the template folder at query time.
package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fraud-tools/scam-report-builder/pkg/models/domain"
	"github.com/fraud-tools/scam-report-builder/pkg/store/templates"
)

const customKeyPrefix = "custom-"

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrBuiltinTemplate  = errors.New("built-in templates cannot be modified or deleted")
	ErrInvalidTemplate  = errors.New("invalid template definition")
)

type Registry struct {
	store  *templates.Store
	logger zerolog.Logger
}

func NewRegistry(store *templates.Store, logger zerolog.Logger) *Registry {
	return &Registry{store: store, logger: logger}
}

// Get resolves a template key. Custom templates are re-read from disk on
// every call so edits made outside the process are picked up.
func (r *Registry) Get(key string) (domain.Template, error) {
	for _, tpl := range builtinTemplates {
		if tpl.Key == key {
			return tpl, nil
		}
	}

	if slug, ok := strings.CutPrefix(key, customKeyPrefix); ok {
		return r.loadCustom(slug)
	}
	return domain.Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, key)
}

// List returns every available template, built-ins first, then customs
// ordered by name. Invalid custom files are skipped, not fatal.
func (r *Registry) List() []domain.Template {
	out := make([]domain.Template, len(builtinTemplates))
	copy(out, builtinTemplates)

	slugs, err := r.store.List()
	if err != nil {
		r.logger.Warn().Err(err).Msg("cannot list custom templates")
		return out
	}

	var customs []domain.Template
	for _, slug := range slugs {
		tpl, err := r.loadCustom(slug)
		if err != nil {
			r.logger.Warn().Err(err).Str("template", slug).Msg("skipping invalid custom template")
			continue
		}
		customs = append(customs, tpl)
	}
	sort.Slice(customs, func(i, j int) bool { return customs[i].Name < customs[j].Name })
	return append(out, customs...)
}

// Save persists a user-defined template and returns its key. The key is a
// unique filesystem-safe slug derived from the name. When sections is nil,
// a section layout is derived from each field's declared category. The base
// fields every report form needs are merged in if absent.
func (r *Registry) Save(name, description string, fields map[string]domain.FieldDef, sections []domain.TemplateSection) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidTemplate)
	}

	merged := make(map[string]domain.FieldDef, len(fields)+len(alwaysIncludedFields))
	for key, def := range alwaysIncludedFields {
		merged[key] = def
	}
	for key, def := range fields {
		if def.Type == "" || def.Label == "" {
			return "", fmt.Errorf("%w: field %q needs a type and a label", ErrInvalidTemplate, key)
		}
		merged[key] = def
	}

	if sections == nil {
		sections = deriveSections(merged)
	}

	tpl := domain.Template{
		Name:        name,
		Description: description,
		Sections:    sections,
		Fields:      merged,
	}
	if err := validateSectionRefs(tpl); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	slug := r.uniqueSlug(name)
	raw, err := json.MarshalIndent(tpl, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode template: %w", err)
	}
	if err := r.store.Write(slug, raw); err != nil {
		return "", err
	}

	key := customKeyPrefix + slug
	r.logger.Info().Str("template", key).Msg("custom template saved")
	return key, nil
}

// Delete removes a user-created template. Built-ins are rejected.
func (r *Registry) Delete(key string) error {
	slug, ok := strings.CutPrefix(key, customKeyPrefix)
	if !ok {
		for _, tpl := range builtinTemplates {
			if tpl.Key == key {
				return ErrBuiltinTemplate
			}
		}
		return fmt.Errorf("%w: %q", ErrTemplateNotFound, key)
	}

	if err := r.store.Delete(slug); err != nil {
		if errors.Is(err, templates.ErrNotFound) {
			return fmt.Errorf("%w: %q", ErrTemplateNotFound, key)
		}
		return err
	}
	r.logger.Info().Str("template", key).Msg("custom template deleted")
	return nil
}

func (r *Registry) loadCustom(slug string) (domain.Template, error) {
	raw, err := r.store.Read(slug)
	if errors.Is(err, templates.ErrNotFound) {
		return domain.Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, customKeyPrefix+slug)
	}
	if err != nil {
		return domain.Template{}, err
	}

	tpl, err := validateTemplateFile(raw)
	if err != nil {
		return domain.Template{}, err
	}
	tpl.Key = customKeyPrefix + slug
	return tpl, nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// uniqueSlug derives a filesystem-safe key component from a template name,
// suffixing a counter when the name is already taken.
func (r *Registry) uniqueSlug(name string) string {
	base := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(name), "_"), "_")
	if base == "" {
		base = "template"
	}

	slug := base
	for n := 2; r.store.Exists(slug); n++ {
		slug = fmt.Sprintf("%s_%d", base, n)
	}
	return slug
}

// sectionOrder fixes the derived layout: the canonical tabs first, any
// other declared categories after them alphabetically.
var sectionOrder = []string{"Main Info", "Payment Information", "Evidence", "Remarks"}

func deriveSections(fields map[string]domain.FieldDef) []domain.TemplateSection {
	byCategory := make(map[string][]string)
	for key, def := range fields {
		category := def.Category
		if category == "" {
			category = "Main Info"
		}
		byCategory[category] = append(byCategory[category], key)
	}

	var categories []string
	seen := make(map[string]bool)
	for _, category := range sectionOrder {
		if _, ok := byCategory[category]; ok {
			categories = append(categories, category)
			seen[category] = true
		}
	}
	var extra []string
	for category := range byCategory {
		if !seen[category] {
			extra = append(extra, category)
		}
	}
	sort.Strings(extra)
	categories = append(categories, extra...)

	sections := make([]domain.TemplateSection, 0, len(categories))
	for _, category := range categories {
		keys := byCategory[category]
		sort.Slice(keys, func(i, j int) bool {
			return fieldRank(keys[i]) < fieldRank(keys[j]) ||
				(fieldRank(keys[i]) == fieldRank(keys[j]) && keys[i] < keys[j])
		})
		sections = append(sections, domain.TemplateSection{
			Title:  category + ":",
			Fields: keys,
		})
	}
	return sections
}

// fieldRank keeps the identifying fields at the top of a derived section.
func fieldRank(key string) int {
	switch key {
	case domain.FieldType:
		return 0
	case domain.FieldSummary:
		return 1
	case domain.FieldFilenameName:
		return 2
	default:
		return 3
	}
}
