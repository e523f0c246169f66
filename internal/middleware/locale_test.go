package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"kifuliiru.net/kifuliiru-web/internal/i18n"
)

func testBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	b, err := i18n.Load("../../locales", "kif", []string{"kif", "en", "fr", "sw"})
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	return b
}

func langProbe(t *testing.T, b *i18n.Bundle) (http.Handler, *string) {
	t.Helper()
	var got string
	h := Locale(b)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Lang(r, b.Fallback())
	}))
	return h, &got
}

func TestLocaleQueryOverrideSetsCookie(t *testing.T) {
	h, got := langProbe(t, testBundle(t))
	req := httptest.NewRequest(http.MethodGet, "/?hl=sw", nil)
	req.Header.Set("Accept-Language", "fr")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if *got != "sw" {
		t.Fatalf("expected sw, got %q", *got)
	}
	var cookie string
	for _, c := range rec.Result().Cookies() {
		if c.Name == "hl" {
			cookie = c.Value
		}
	}
	if cookie != "sw" {
		t.Fatalf("expected hl cookie sw, got %q", cookie)
	}
	if rec.Header().Get("Content-Language") != "sw" {
		t.Fatalf("expected Content-Language sw")
	}
}

func TestLocaleCookieBeatsAcceptLanguage(t *testing.T) {
	h, got := langProbe(t, testBundle(t))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "hl", Value: "fr"})
	req.Header.Set("Accept-Language", "en")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if *got != "fr" {
		t.Fatalf("expected fr from cookie, got %q", *got)
	}
}

func TestLocaleFallsBackToAcceptLanguage(t *testing.T) {
	h, got := langProbe(t, testBundle(t))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en;q=0.9, fr;q=0.4")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if *got != "en" {
		t.Fatalf("expected en, got %q", *got)
	}
}

func TestHTMXFlag(t *testing.T) {
	var is bool
	h := HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is = IsHTMX(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !is {
		t.Fatalf("expected htmx flag set")
	}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if is {
		t.Fatalf("expected htmx flag clear for plain request")
	}
}

func TestHTMXFlagClearForHistoryRestore(t *testing.T) {
	var is bool
	h := HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is = IsHTMX(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-History-Restore-Request", "true")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if is {
		t.Fatalf("expected full page for history restore")
	}
}

func TestLangFallbackWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := Lang(req, "sw"); got != "sw" {
		t.Fatalf("expected configured fallback sw, got %q", got)
	}
}
