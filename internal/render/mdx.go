package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"kifuliiru.net/kifuliiru-web/internal/content"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// sanitizer keeps user-facing markup safe while preserving the heading
// ids the table of contents anchors to.
var sanitizer = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	return p
}()

// MDX converts a raw markup document into sanitized HTML. Embedded
// component tags that goldmark does not recognize pass through as text
// and are stripped by the sanitizer.
func MDX(doc *content.Document) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(doc.Body), &buf); err != nil {
		return "", fmt.Errorf("render: convert %s: %w", doc.Slug, err)
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes())), nil
}
