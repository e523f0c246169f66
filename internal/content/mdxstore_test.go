package content

import (
	"errors"
	"strings"
	"testing"
)

func TestMDXStoreGetParsesFrontMatter(t *testing.T) {
	s := NewMDXStore("testdata/tree")
	doc, err := s.Get("gamma")
	if err != nil {
		t.Fatalf("get gamma: %v", err)
	}
	if doc.Title() != "Gamma Page" {
		t.Fatalf("expected front-matter title, got %q", doc.Title())
	}
	if desc, _ := doc.Meta["description"].(string); desc != "A fixture document." {
		t.Fatalf("expected description in meta, got %v", doc.Meta)
	}
	if strings.Contains(doc.Body, "---") {
		t.Fatalf("expected fence stripped from body, got %q", doc.Body)
	}
	if !strings.Contains(doc.Body, "# Gamma") {
		t.Fatalf("expected body content, got %q", doc.Body)
	}
}

func TestMDXStoreTitleFallsBackToSlug(t *testing.T) {
	s := NewMDXStore("testdata/tree")
	doc, err := s.Get("nested/delta-page")
	if err != nil {
		t.Fatalf("get nested/delta-page: %v", err)
	}
	if doc.Title() != "Delta Page" {
		t.Fatalf("expected prettified slug title, got %q", doc.Title())
	}
}

func TestMDXStoreMissingIsNotFound(t *testing.T) {
	s := NewMDXStore("testdata/tree")
	if _, err := s.Get("no-such-page"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSplitFrontMatter(t *testing.T) {
	front, body := SplitFrontMatter("---\ntitle: Hi\n---\n\nBody text.")
	if strings.TrimSpace(front) != "title: Hi" {
		t.Fatalf("unexpected front %q", front)
	}
	if body != "Body text." {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestSplitFrontMatterByteOrderMark(t *testing.T) {
	front, body := SplitFrontMatter("\uFEFF---\ntitle: Hi\n---\nBody text.")
	if strings.TrimSpace(front) != "title: Hi" {
		t.Fatalf("expected fence recognized past a BOM, got front %q", front)
	}
	if body != "Body text." {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestSplitFrontMatterWithoutFence(t *testing.T) {
	front, body := SplitFrontMatter("# Just markdown\n")
	if front != "" {
		t.Fatalf("expected no front matter, got %q", front)
	}
	if !strings.Contains(body, "# Just markdown") {
		t.Fatalf("expected body preserved, got %q", body)
	}
}

func TestSplitFrontMatterUnterminatedFence(t *testing.T) {
	input := "---\ntitle: Hi\nno closing fence"
	front, body := SplitFrontMatter(input)
	if front != "" {
		t.Fatalf("expected no front matter for unterminated fence, got %q", front)
	}
	if body != input {
		t.Fatalf("expected whole input as body, got %q", body)
	}
}

func TestPrettifySlug(t *testing.T) {
	cases := map[string]string{
		"bingi-ku-kifuliiru": "Bingi Ku Kifuliiru",
		"misingi":            "Misingi",
		"":                   "",
	}
	for in, want := range cases {
		if got := PrettifySlug(in); got != want {
			t.Fatalf("PrettifySlug(%q) = %q, want %q", in, got, want)
		}
	}
}
