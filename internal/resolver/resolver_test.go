package resolver

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"kifuliiru.net/kifuliiru-web/internal/content"
)

func newTestResolver() *Resolver {
	return New(
		content.NewJSONStore("testdata/content"),
		content.NewMDXStore("testdata/content"),
	)
}

func TestResolveNestedJSONBeatsMDX(t *testing.T) {
	r := newTestResolver()
	res, err := r.Resolve("ukuharura", []string{"abandu"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !res.Found {
		t.Fatalf("expected a hit")
	}
	if res.Format != FormatJSON {
		t.Fatalf("expected json format, got %s", res.Format)
	}
	if res.Item == nil || res.Item.Title != "Abandu JSON" {
		t.Fatalf("expected the structured file, got %+v", res.Item)
	}
	if res.ResolvedSlug != "ukuharura/abandu" {
		t.Fatalf("expected nested resolved slug, got %q", res.ResolvedSlug)
	}
}

func TestResolveFallsBackToRootCandidate(t *testing.T) {
	r := newTestResolver()
	res, err := r.Resolve("twehe", []string{"akahugo"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !res.Found || res.Format != FormatMDX {
		t.Fatalf("expected mdx hit via root candidate, got %+v", res)
	}
	if res.StoredSlug != "akahugo" {
		t.Fatalf("expected stored slug akahugo, got %q", res.StoredSlug)
	}
	// the resolved slug keeps the nested shape even for a root hit
	if res.ResolvedSlug != "twehe/akahugo" {
		t.Fatalf("expected resolved slug twehe/akahugo, got %q", res.ResolvedSlug)
	}
}

func TestResolveAliasPrefersTopLevelFile(t *testing.T) {
	// herufi exists both as a top-level mdx and nested under amagambo;
	// the alias form wins.
	r := newTestResolver()
	res, err := r.Resolve("amagambo", []string{"herufi"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !res.Found || res.Format != FormatMDX {
		t.Fatalf("expected the top-level mdx alias page, got %+v", res)
	}
	if res.StoredSlug != "herufi" {
		t.Fatalf("expected stored slug herufi, got %q", res.StoredSlug)
	}
}

func TestResolveSectionRootDocument(t *testing.T) {
	r := newTestResolver()
	res, err := r.Resolve("twehe", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !res.Found || res.Format != FormatJSON {
		t.Fatalf("expected the root document, got %+v", res)
	}
	if res.Item.Title != "Twehe Root" {
		t.Fatalf("expected Twehe Root, got %q", res.Item.Title)
	}
}

func TestResolveRootlessSectionSkipsLookup(t *testing.T) {
	r := newTestResolver()
	res, err := r.Resolve("ukuharura", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Found {
		t.Fatalf("expected not found for rootless section, got %+v", res)
	}
}

func TestResolveUnknownSectionIsNotFound(t *testing.T) {
	r := newTestResolver()
	res, err := r.Resolve("nope", []string{"x"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Found {
		t.Fatalf("expected not found, got %+v", res)
	}
}

func TestResolveMalformedJSONFallsThroughToMDX(t *testing.T) {
	r := newTestResolver()
	res, err := r.Resolve("ukuharura", []string{"bad"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !res.Found || res.Format != FormatMDX {
		t.Fatalf("expected the mdx sibling, got %+v", res)
	}
	if res.Doc.Title() != "Rescue Page" {
		t.Fatalf("expected Rescue Page, got %q", res.Doc.Title())
	}
}

func TestResolveIsHandlerIdempotent(t *testing.T) {
	r := newTestResolver()
	first, err := r.Resolve("ukuharura", []string{"abandu"})
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := r.Resolve("ukuharura", []string{"abandu"})
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if first.Format != second.Format || first.StoredSlug != second.StoredSlug {
		t.Fatalf("expected identical resolutions, got %+v vs %+v", first, second)
	}
}

func TestLookupDirectSlug(t *testing.T) {
	r := newTestResolver()
	res, err := r.Lookup("ukuharura/abandu")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !res.Found || res.Format != FormatJSON {
		t.Fatalf("expected json hit, got %+v", res)
	}

	res, err = r.Lookup("akahugo")
	if err != nil {
		t.Fatalf("lookup mdx: %v", err)
	}
	if !res.Found || res.Format != FormatMDX {
		t.Fatalf("expected mdx hit, got %+v", res)
	}

	res, err = r.Lookup("missing")
	if err != nil {
		t.Fatalf("lookup missing: %v", err)
	}
	if res.Found {
		t.Fatalf("expected miss, got %+v", res)
	}
}

func TestEnumerateSectionForcedPathsAlwaysPresent(t *testing.T) {
	r := newTestResolver()
	paths, err := r.EnumerateSection("eng-frn-swa")
	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}
	got := map[string]bool{}
	for _, p := range paths {
		got[strings.Join(p, "/")] = true
	}
	for _, want := range []string{"kiswahili", "english", "francais", "tukole"} {
		if !got[want] {
			t.Fatalf("expected forced path %q in %v", want, paths)
		}
	}
}

func TestEnumerateSectionUnionsStoresAndAliases(t *testing.T) {
	r := newTestResolver()
	paths, err := r.EnumerateSection("ukuharura")
	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}
	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		keys = append(keys, strings.Join(p, "/"))
	}
	sort.Strings(keys)
	// abandu appears once despite existing in both stores
	want := []string{"abandu", "bad"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}

	amagambo, err := r.EnumerateSection("amagambo")
	if err != nil {
		t.Fatalf("enumerate amagambo: %v", err)
	}
	seen := map[string]bool{}
	for _, p := range amagambo {
		seen[strings.Join(p, "/")] = true
	}
	if !seen["herufi"] {
		t.Fatalf("expected alias slug herufi in %v", amagambo)
	}
}
