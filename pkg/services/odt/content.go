package odt

import (
	"fmt"
	"strings"

	"github.com/fraud-tools/scam-report-builder/pkg/models/domain"
)

// legacyAdvanceFeeLabel is a historical template label normalized by
// stripping the parenthetical before rendering.
const legacyAdvanceFeeLabel = "Advance-Fee Scam (419)"

// realNamePlaceholder marks a name the operator has not collected yet; it
// is never rendered.
const realNamePlaceholder = "(to be collected)"

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func esc(s string) string {
	return xmlEscaper.Replace(s)
}

func normalizeScamType(s string) string {
	if s == legacyAdvanceFeeLabel {
		return "Advance-Fee Scam"
	}
	return s
}

const contentHeader = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
  xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0"
  xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0"
  xmlns:draw="urn:oasis:names:tc:opendocument:xmlns:drawing:1.0"
  xmlns:fo="urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0"
  xmlns:xlink="http://www.w3.org/1999/xlink"
  xmlns:dc="http://purl.org/dc/elements/1.1/"
  xmlns:meta="urn:oasis:names:tc:opendocument:xmlns:meta:1.0"
  xmlns:svg="urn:oasis:names:tc:opendocument:xmlns:svg-compatible:1.0"
  office:version="1.3">
  <office:scripts/>
  <office:font-face-decls>
    <style:font-face style:name="Liberation Serif" svg:font-family="&apos;Liberation Serif&apos;" style:font-family-generic="roman" style:font-pitch="variable"/>
  </office:font-face-decls>
  <office:automatic-styles>`

const contentTextStyles = `
    <style:style style:name="T1" style:family="text">
      <style:text-properties fo:font-size="12pt" fo:font-family="Liberation Serif" style:font-name="Liberation Serif"/>
    </style:style>
    <style:style style:name="T1Underline" style:family="text">
      <style:text-properties fo:font-size="12pt" fo:font-family="Liberation Serif" style:font-name="Liberation Serif" style:text-underline-style="solid" style:text-underline-width="auto" style:text-underline-color="font-color"/>
    </style:style>
    <style:style style:name="P1" style:family="paragraph">
      <style:paragraph-properties fo:margin-top="0in" fo:margin-bottom="0.1in"/>
      <style:text-properties fo:font-size="12pt" fo:font-family="Liberation Serif" style:font-name="Liberation Serif"/>
    </style:style>
    <style:style style:name="P1BoldUnderline" style:family="paragraph">
      <style:paragraph-properties fo:margin-top="0in" fo:margin-bottom="0.1in"/>
      <style:text-properties fo:font-size="12pt" fo:font-family="Liberation Serif" style:font-name="Liberation Serif" fo:font-weight="bold" style:text-underline-style="solid" style:text-underline-width="auto" style:text-underline-color="font-color"/>
    </style:style>
    <style:style style:name="ListBullet" style:family="paragraph">
      <style:paragraph-properties fo:margin-top="0in" fo:margin-bottom="0in" fo:margin-left="0.2in" fo:text-indent="0in" style:auto-text-indent="false"/>
      <style:text-properties fo:font-size="12pt" fo:font-family="Liberation Serif" style:font-name="Liberation Serif"/>
    </style:style>
    <style:style style:name="PageBreak" style:family="paragraph">
      <style:paragraph-properties fo:break-before="page"/>
      <style:text-properties fo:font-size="12pt" fo:font-family="Liberation Serif" style:font-name="Liberation Serif"/>
    </style:style>
  </office:automatic-styles>
  <office:body>
    <office:text>
      <text:sequence-decls>
        <text:sequence-decl text:display-outline-level="0" text:name="Illustration"/>
      </text:sequence-decls>`

const contentFooter = `
    </office:text>
  </office:body>
</office:document-content>
`

// contentBuilder accumulates body paragraphs. Values passed to its methods
// are raw user text; escaping happens here.
type contentBuilder struct {
	b strings.Builder
}

func (c *contentBuilder) raw(markup string) {
	c.b.WriteString("\n      ")
	c.b.WriteString(markup)
}

func (c *contentBuilder) blank() {
	c.raw(`<text:p text:style-name="P1"/>`)
}

func (c *contentBuilder) pageBreak() {
	c.raw(`<text:p text:style-name="PageBreak"/>`)
}

func (c *contentBuilder) heading(text string) {
	c.raw(fmt.Sprintf(`<text:p text:style-name="P1BoldUnderline">%s</text:p>`, esc(text)))
}

// labeled renders an underlined label with an optional plain value on the
// same line. The label is expected to carry its own trailing colon.
func (c *contentBuilder) labeled(label, value string) {
	if value == "" {
		c.raw(fmt.Sprintf(`<text:p text:style-name="P1"><text:span text:style-name="T1Underline">%s</text:span></text:p>`, esc(label)))
		return
	}
	c.raw(fmt.Sprintf(`<text:p text:style-name="P1"><text:span text:style-name="T1Underline">%s</text:span> %s</text:p>`, esc(label), esc(value)))
}

func (c *contentBuilder) plain(text string) {
	c.raw(fmt.Sprintf(`<text:p text:style-name="P1">%s</text:p>`, esc(text)))
}

// lines renders a free-text block one paragraph per non-blank line.
func (c *contentBuilder) lines(block string) {
	for _, line := range strings.Split(block, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			c.plain(trimmed)
		}
	}
}

func (c *contentBuilder) frame(entry stagedImage) {
	c.raw(fmt.Sprintf(`<text:p text:style-name="P1">
        <draw:frame draw:style-name="fr%d" draw:name="Image%d" text:anchor-type="as-char" svg:width="%s" svg:height="%s" draw:z-index="0">
          <draw:image xlink:href="Pictures/%s" xlink:type="simple" xlink:show="embed" xlink:actuate="onLoad"/>
          <svg:desc>%s</svg:desc>
        </draw:frame>
      </text:p>`, entry.Index, entry.Index, entry.Width, entry.Height, entry.Filename, esc(entry.Name)))
}

func (a *Assembler) buildContent(content domain.ReportContent, entries []stagedImage) string {
	var doc strings.Builder
	doc.WriteString(contentHeader)
	for _, entry := range entries {
		fmt.Fprintf(&doc, `
    <style:style style:name="fr%d" style:family="graphic">
      <style:graphic-properties style:horizontal-pos="center" style:horizontal-rel="paragraph"/>
    </style:style>`, entry.Index)
	}
	doc.WriteString(contentTextStyles)

	body := &contentBuilder{}
	scamType := normalizeScamType(content.Text(domain.FieldType))
	if strings.TrimSpace(scamType) == "" {
		scamType = "Unknown Type"
	}
	title := fmt.Sprintf(`Report for %s scammer "%s"`, scamType, content.MainAlias())
	body.heading(title)
	body.labeled("Generated:", a.now().Format("2006-01-02 15:04:05"))
	body.blank()

	writeMainInfo(body, content)
	writePayment(body, content)
	writeEvidence(body, content, entries)
	writeRemarks(body, content)

	doc.WriteString(body.b.String())
	doc.WriteString(contentFooter)
	return doc.String()
}

func writeMainInfo(body *contentBuilder, content domain.ReportContent) {
	if scamType := normalizeScamType(content.Text(domain.FieldType)); scamType != "" {
		body.labeled("Type of scam:", scamType)
	}
	if content.Has(domain.FieldSummary) {
		body.labeled("Short summary:", content.Text(domain.FieldSummary))
	}
	body.blank()

	joined := []struct {
		key   string
		label string
		sep   string
	}{
		{domain.FieldAlias, "Scammers aliase(s):", ", "},
		{domain.FieldEmails, "Email(s):", ", "},
		{domain.FieldWebsites, "Website(s):", ", "},
		{domain.FieldIPs, "IPs:", ", "},
		{domain.FieldLocations, "Geo location(s):", " / "},
	}
	for _, field := range joined {
		if content.Has(field.key) {
			body.labeled(field.label, strings.Join(content.List(field.key), field.sep))
		}
	}
	if content.Has(domain.FieldStarted) {
		body.labeled("Started:", content.Text(domain.FieldStarted))
	}
	body.blank()
}

func writePayment(body *contentBuilder, content domain.ReportContent) {
	if content.Has(domain.FieldAmount) {
		body.labeled("Fee/Amount:", content.Text(domain.FieldAmount))
		body.blank()
	}

	if content.Has(domain.FieldBankInfo) {
		body.heading("BANK ACCOUNTS")
		for i, account := range content.List(domain.FieldBankInfo) {
			if strings.TrimSpace(account) == "" {
				continue
			}
			body.labeled(fmt.Sprintf("Bank Account %d:", i+1), "")
			body.lines(account)
			body.blank()
		}
	}

	if payments := content[domain.FieldOtherPayments].Payments(); len(payments) > 0 {
		body.labeled("Other payment methods:", "")
		for _, payment := range payments {
			paymentType := payment.Type
			if paymentType == "" {
				paymentType = "Unknown"
			}
			body.raw(fmt.Sprintf(`<text:p text:style-name="ListBullet">- <text:span text:style-name="T1Underline">%s:</text:span></text:p>`, esc(paymentType)))
			body.lines(payment.Details)
		}
		body.blank()
	}
}

// writeEvidence emits the Evidence section only when it has anything to
// show: a real name, collected aliases used as the real name, or at least
// one staged image. Image groups follow the fixed category order with a
// page break before every group after the first.
func writeEvidence(body *contentBuilder, content domain.ReportContent, entries []stagedImage) {
	hasNames := content.Has(domain.FieldScammerNames)
	hasLegacyName := content.Has(domain.FieldScammerRealName)
	if !hasNames && !hasLegacyName && len(entries) == 0 {
		return
	}

	body.pageBreak()
	body.labeled("Evidence:", "")

	realName := ""
	if hasNames {
		realName = content.List(domain.FieldScammerNames)[0]
	} else if hasLegacyName {
		realName = content.Text(domain.FieldScammerRealName)
	}
	if trimmed := strings.TrimSpace(realName); trimmed != "" && trimmed != realNamePlaceholder {
		body.labeled("Scammers real name:", trimmed)
	}

	for i, entry := range entries {
		if i == 0 || entry.Category != entries[i-1].Category {
			if i > 0 {
				body.pageBreak()
			}
			body.labeled(entry.Category.Label(), "")
		}
		body.frame(entry)
	}

	body.blank()
}

func writeRemarks(body *contentBuilder, content domain.ReportContent) {
	if !content.Has(domain.FieldRemarks) {
		return
	}
	body.labeled("Remarks:", "")
	for _, remark := range content.List(domain.FieldRemarks) {
		if strings.TrimSpace(remark) == "" {
			continue
		}
		body.raw(fmt.Sprintf(`<text:p text:style-name="ListBullet">- %s</text:p>`, esc(remark)))
	}
	body.blank()
}
