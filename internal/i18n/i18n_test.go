package i18n

import "testing"

func loadTestBundle(t *testing.T) *Bundle {
	t.Helper()
	b, err := Load("../../locales", "kif", []string{"kif", "en", "fr", "sw"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return b
}

func TestResolveHonorsQValues(t *testing.T) {
	b := loadTestBundle(t)
	got := b.Resolve("fr;q=0.8, en;q=0.9")
	if got != "en" {
		t.Fatalf("expected en, got %s", got)
	}
}

func TestResolveStripsRegionSubtags(t *testing.T) {
	b := loadTestBundle(t)
	if got := b.Resolve("fr-CD, en;q=0.5"); got != "fr" {
		t.Fatalf("expected fr, got %s", got)
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	b := loadTestBundle(t)
	if got := b.Resolve("de, ja;q=0.9"); got != "kif" {
		t.Fatalf("expected kif fallback, got %s", got)
	}
	if got := b.Resolve(""); got != "kif" {
		t.Fatalf("expected kif for empty header, got %s", got)
	}
}

func TestTFallsBackThroughDefaultToKey(t *testing.T) {
	b := loadTestBundle(t)
	if got := b.T("sw", "nav.home"); got != "Nyumbani" {
		t.Fatalf("expected Nyumbani, got %q", got)
	}
	// key missing everywhere comes back verbatim
	if got := b.T("en", "no.such.key"); got != "no.such.key" {
		t.Fatalf("expected key passthrough, got %q", got)
	}
}
