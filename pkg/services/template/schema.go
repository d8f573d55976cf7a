package template

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/fraud-tools/scam-report-builder/pkg/models/domain"
)

// templateSchema constrains custom template files: name and description,
// a field map where every entry carries at least a type and a label, and
// an ordered section list.
var templateSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []string{"name", "description", "fields", "sections"},
	"properties": map[string]any{
		"name":        map[string]any{"type": "string", "minLength": 1},
		"description": map[string]any{"type": "string"},
		"fields": map[string]any{
			"type":          "object",
			"minProperties": 1,
			"additionalProperties": map[string]any{
				"type":     "object",
				"required": []string{"type", "label"},
				"properties": map[string]any{
					"type":        map[string]any{"type": "string", "minLength": 1},
					"label":       map[string]any{"type": "string", "minLength": 1},
					"category":    map[string]any{"type": "string"},
					"required":    map[string]any{"type": "boolean"},
					"button":      map[string]any{"type": "string"},
					"placeholder": map[string]any{"type": "string"},
					"format":      map[string]any{"type": "string"},
					"default":     map[string]any{},
				},
			},
		},
		"sections": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"title", "fields"},
				"properties": map[string]any{
					"title":  map[string]any{"type": "string", "minLength": 1},
					"fields": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
		},
	},
}

var compiledTemplateSchema = mustCompileSchema(templateSchema)

func mustCompileSchema(schemaMap map[string]any) *jsonschema.Schema {
	raw, err := json.Marshal(schemaMap)
	if err != nil {
		panic(fmt.Sprintf("marshal template schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("template.json", bytes.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("add template schema: %v", err))
	}
	schema, err := compiler.Compile("template.json")
	if err != nil {
		panic(fmt.Sprintf("compile template schema: %v", err))
	}
	return schema
}

// validateTemplateFile checks raw template JSON against the schema and the
// referential rule that every section field exists in the field map.
func validateTemplateFile(raw []byte) (domain.Template, error) {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return domain.Template{}, fmt.Errorf("parse template: %w", err)
	}
	if err := compiledTemplateSchema.Validate(generic); err != nil {
		return domain.Template{}, fmt.Errorf("template does not match schema: %w", err)
	}

	var tpl domain.Template
	if err := json.Unmarshal(raw, &tpl); err != nil {
		return domain.Template{}, fmt.Errorf("decode template: %w", err)
	}
	if err := validateSectionRefs(tpl); err != nil {
		return domain.Template{}, err
	}
	return tpl, nil
}

func validateSectionRefs(tpl domain.Template) error {
	for _, section := range tpl.Sections {
		for _, key := range section.Fields {
			if _, ok := tpl.Fields[key]; !ok {
				return fmt.Errorf("section %q references unknown field %q", section.Title, key)
			}
		}
	}
	return nil
}
