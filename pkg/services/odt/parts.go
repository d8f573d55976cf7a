package odt

import (
	"fmt"
	"strings"
	"time"
)

// buildManifest cross-references every package part. Image entries always
// declare image/jpeg: attachments are normalized to JPEG before assembly.
func buildManifest(entries []stagedImage) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0">
  <manifest:file-entry manifest:full-path="/" manifest:media-type="` + MimeType + `"/>
  <manifest:file-entry manifest:full-path="content.xml" manifest:media-type="text/xml"/>
  <manifest:file-entry manifest:full-path="styles.xml" manifest:media-type="text/xml"/>
  <manifest:file-entry manifest:full-path="meta.xml" manifest:media-type="text/xml"/>`)

	for _, entry := range entries {
		fmt.Fprintf(&b, "\n  <manifest:file-entry manifest:full-path=\"Pictures/%s\" manifest:media-type=\"image/jpeg\"/>", entry.Filename)
	}

	b.WriteString("\n</manifest:manifest>\n")
	return b.String()
}

const stylesXML = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-styles xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
  xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0"
  xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0"
  xmlns:fo="urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0"
  office:version="1.3">
  <office:styles>
    <style:style style:name="Standard" style:family="paragraph">
      <style:text-properties fo:font-size="12pt" fo:font-family="Liberation Serif"/>
    </style:style>
    <style:style style:name="Graphics" style:family="graphic">
      <style:graphic-properties text:anchor-type="paragraph"
        style:horizontal-pos="center" style:horizontal-rel="paragraph"/>
    </style:style>
  </office:styles>
</office:document-styles>
`

func (a *Assembler) buildMeta() string {
	now := a.now().Format(time.RFC3339)
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<office:document-meta xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
  xmlns:meta="urn:oasis:names:tc:opendocument:xmlns:meta:1.0"
  xmlns:dc="http://purl.org/dc/elements/1.1/"
  office:version="1.3">
  <office:meta>
    <meta:generator>Scam Report Builder</meta:generator>
    <dc:creator>Scam Report Builder</dc:creator>
    <dc:date>%s</dc:date>
    <meta:creation-date>%s</meta:creation-date>
  </office:meta>
</office:document-meta>
`, now, now)
}
