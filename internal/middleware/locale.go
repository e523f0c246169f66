package middleware

import (
	"net/http"
	"strings"

	"kifuliiru.net/kifuliiru-web/internal/i18n"
)

// VaryLocale sets Vary header for Accept-Language on dynamic responses
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// append to existing Vary if any
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}

// Locale resolves the preferred UI language and stores it in the request
// context and the `hl` cookie. Priority: ?hl= query override, existing
// cookie, then Accept-Language.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if q := r.URL.Query().Get("hl"); q != "" {
				lang = strings.ToLower(q)
				http.SetCookie(w, &http.Cookie{Name: "hl", Value: lang, Path: "/"})
			} else if c, err := r.Cookie("hl"); err == nil && c.Value != "" {
				lang = strings.ToLower(c.Value)
			} else {
				lang = bundle.Resolve(r.Header.Get("Accept-Language"))
			}
			ctx := WithLang(r.Context(), lang)
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Lang returns the resolved language for a request. fallback covers
// handlers reached without the Locale middleware in front of them.
func Lang(r *http.Request, fallback string) string {
	if lang := LangFromContext(r.Context()); lang != "" {
		return lang
	}
	return fallback
}

// HTMX flags requests issued by the page's htmx script, so the search
// endpoint can answer with an HTML fragment instead of JSON. History
// restores want the full page and are not flagged.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true" &&
			r.Header.Get("HX-History-Restore-Request") != "true"
		next.ServeHTTP(w, r.WithContext(WithHTMX(r.Context(), is)))
	})
}
