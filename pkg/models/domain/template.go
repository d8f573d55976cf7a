package domain

// FieldDef describes a single form field within a template. Type and Label
// are mandatory; everything else is presentation metadata carried through
// from the template file.
type FieldDef struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Category    string `json:"category,omitempty"`
	Default     any    `json:"default,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Button      string `json:"button,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Format      string `json:"format,omitempty"`
}

// Field widget types recognized by the form layer.
const (
	FieldTypeText          = "text"
	FieldTypeList          = "list"
	FieldTypeDate          = "date"
	FieldTypeMultiline     = "multiline"
	FieldTypeOtherPayments = "other_payments"
	FieldTypeImageList     = "image_list"
	FieldTypeImages        = "images"
)

// TemplateSection is an ordered group of field keys rendered under a common
// heading.
type TemplateSection struct {
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
}

// Template is a report form definition. Built-in templates are immutable;
// custom templates live as JSON files in the template folder and carry
// keys prefixed with "custom-".
type Template struct {
	Key         string              `json:"-"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Sections    []TemplateSection   `json:"sections"`
	Fields      map[string]FieldDef `json:"fields"`
	Builtin     bool                `json:"-"`
}

// Section returns the section with the given title, if present.
func (t Template) Section(title string) (TemplateSection, bool) {
	for _, s := range t.Sections {
		if s.Title == title {
			return s, true
		}
	}
	return TemplateSection{}, false
}
