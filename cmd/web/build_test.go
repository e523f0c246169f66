package main

import (
	"testing"

	"kifuliiru.net/kifuliiru-web/internal/content"
	"kifuliiru.net/kifuliiru-web/internal/resolver"
)

func TestResolvePort(t *testing.T) {
	t.Setenv("KIFULIIRU_WEB_PORT", "")
	t.Setenv("PORT", "")
	if got := resolvePort(); got != "8080" {
		t.Fatalf("expected default 8080, got %s", got)
	}
	t.Setenv("PORT", "9000")
	if got := resolvePort(); got != "9000" {
		t.Fatalf("expected platform port, got %s", got)
	}
	t.Setenv("KIFULIIRU_WEB_PORT", "7000")
	if got := resolvePort(); got != "7000" {
		t.Fatalf("expected site port to win, got %s", got)
	}
}

func TestEnumeratePathsCoversSiteTree(t *testing.T) {
	res := resolver.New(
		content.NewJSONStore("../../content"),
		content.NewMDXStore("../../content"),
	)
	paths, err := enumeratePaths(res)
	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}
	seen := map[string]bool{}
	for _, p := range paths {
		seen[p] = true
	}
	for _, want := range []string{
		"/",
		"/ukuharura/misingi",
		"/amagambo",
		"/amagambo/herufi",
		"/eng-frn-swa/english",
		"/imwitu",
	} {
		if !seen[want] {
			t.Fatalf("expected %s in build paths, got %v", want, paths)
		}
	}
	if seen["/ukuharura"] {
		t.Fatalf("expected no root route for a rootless section, got %v", paths)
	}
}
