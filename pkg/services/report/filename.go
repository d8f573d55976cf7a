package report

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fraud-tools/scam-report-builder/pkg/models/domain"
)

var extraWhitespace = regexp.MustCompile(`\s+`)

// Filename builds the document filename for a report:
// "<number>_Scammer report <name>.odt", with runs of whitespace collapsed.
func Filename(number int, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Unknown"
	}
	filename := fmt.Sprintf("%d_Scammer report %s.odt", number, name)
	return strings.TrimSpace(extraWhitespace.ReplaceAllString(filename, " "))
}

// filenameName picks the name used in the filename: the dedicated
// filename_name field when the template provides one, otherwise the first
// alias.
func filenameName(content domain.ReportContent) string {
	if content.Has(domain.FieldFilenameName) {
		return content.Text(domain.FieldFilenameName)
	}
	return content.MainAlias()
}
