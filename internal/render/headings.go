package render

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"kifuliiru.net/kifuliiru-web/internal/content"
)

// Heading is one table-of-contents entry. Only levels 2-4 are collected;
// level-1 headings are the page title and stay out of the TOC.
type Heading struct {
	ID    string
	Level int
	Text  string
}

// HeadingsFromBlocks extracts TOC entries from a structured block
// sequence. Repeated heading text produces repeated ids; the source does
// not deduplicate and neither do we, to keep anchor URLs stable.
func HeadingsFromBlocks(blocks []content.TextBlock) []Heading {
	var out []Heading
	for _, b := range blocks {
		if b.Type != content.BlockHeading {
			continue
		}
		if b.Level < 2 || b.Level > 4 {
			continue
		}
		out = append(out, Heading{
			ID:    HeadingID(b.Text),
			Level: b.Level,
			Text:  b.Text,
		})
	}
	return out
}

// HeadingsFromHTML extracts TOC entries from rendered markup. Markup
// documents can embed arbitrary nested components, so their headings are
// only enumerable after rendering; this pass runs over the produced HTML.
// Existing id attributes (goldmark's auto heading ids) are preferred.
func HeadingsFromHTML(html string) ([]Heading, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	var out []Heading
	doc.Find("h2, h3, h4").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		id, ok := sel.Attr("id")
		if !ok || id == "" {
			id = HeadingID(text)
		}
		level, _ := strconv.Atoi(strings.TrimPrefix(goquery.NodeName(sel), "h"))
		out = append(out, Heading{ID: id, Level: level, Text: text})
	})
	return out, nil
}

// HeadingID derives an anchor id from heading text: lower-cased,
// punctuation stripped, spaces collapsed to hyphens.
func HeadingID(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	var b strings.Builder
	lastHyphen := false
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		default:
			// punctuation and other symbols are dropped
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
