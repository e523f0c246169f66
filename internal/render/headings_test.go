package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"kifuliiru.net/kifuliiru-web/internal/content"
)

func TestHeadingsFromBlocksKeepsLevels2To4(t *testing.T) {
	blocks := []content.TextBlock{
		{Type: content.BlockHeading, Level: 1, Text: "Title"},
		{Type: content.BlockHeading, Level: 2, Text: "First"},
		{Type: content.BlockParagraph, Text: "body"},
		{Type: content.BlockHeading, Level: 3, Text: "Deep"},
		{Type: content.BlockHeading, Level: 4, Text: "Deeper"},
		{Type: content.BlockHeading, Level: 5, Text: "Too Deep"},
	}
	got := HeadingsFromBlocks(blocks)
	want := []Heading{
		{ID: "first", Level: 2, Text: "First"},
		{ID: "deep", Level: 3, Text: "Deep"},
		{ID: "deeper", Level: 4, Text: "Deeper"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("headings mismatch (-want +got):\n%s", diff)
	}
}

func TestHeadingsFromBlocksRepeatedTextRepeatsIDs(t *testing.T) {
	blocks := []content.TextBlock{
		{Type: content.BlockHeading, Level: 2, Text: "Same"},
		{Type: content.BlockHeading, Level: 2, Text: "Same"},
	}
	got := HeadingsFromBlocks(blocks)
	if len(got) != 2 || got[0].ID != got[1].ID {
		t.Fatalf("expected repeated ids, got %+v", got)
	}
}

func TestHeadingsFromHTML(t *testing.T) {
	html := `<h1>Page Title</h1>
<h2 id="pre-set">Kept ID</h2>
<p>text</p>
<h3>Derived Here</h3>
<h4>Last One</h4>`
	got, err := HeadingsFromHTML(html)
	if err != nil {
		t.Fatalf("headings: %v", err)
	}
	want := []Heading{
		{ID: "pre-set", Level: 2, Text: "Kept ID"},
		{ID: "derived-here", Level: 3, Text: "Derived Here"},
		{ID: "last-one", Level: 4, Text: "Last One"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("headings mismatch (-want +got):\n%s", diff)
	}
}

func TestHeadingID(t *testing.T) {
	cases := map[string]string{
		"Imigani y'Imwitu":   "imigani-yimwitu",
		"  Spaced   Out  ":   "spaced-out",
		"Já with_underscore": "já-with-underscore",
		"Trailing!?":         "trailing",
		"123 Go":             "123-go",
	}
	for in, want := range cases {
		if got := HeadingID(in); got != want {
			t.Fatalf("HeadingID(%q) = %q, want %q", in, got, want)
		}
	}
}
