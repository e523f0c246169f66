package render

import (
	"strings"
	"testing"

	"kifuliiru.net/kifuliiru-web/internal/content"
)

func TestMDXRendersMarkdownWithHeadingIDs(t *testing.T) {
	doc := &content.Document{
		Slug: "page",
		Body: "# Title\n\n## Section One\n\nSome **bold** text.\n",
	}
	html, err := MDX(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("expected rendered markdown, got %s", out)
	}
	if !strings.Contains(out, `id="section-one"`) {
		t.Fatalf("expected auto heading id preserved, got %s", out)
	}
}

func TestMDXSanitizesScripts(t *testing.T) {
	doc := &content.Document{
		Slug: "page",
		Body: "hello\n\n<script>alert(1)</script>\n",
	}
	html, err := MDX(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(html), "<script") {
		t.Fatalf("expected script stripped, got %s", html)
	}
}

func TestMDXRendersGFMTables(t *testing.T) {
	doc := &content.Document{
		Slug: "page",
		Body: "| a | b |\n| --- | --- |\n| 1 | 2 |\n",
	}
	html, err := MDX(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(html), "<table>") {
		t.Fatalf("expected table markup, got %s", html)
	}
}
