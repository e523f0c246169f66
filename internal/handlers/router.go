package handlers

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	mw "kifuliiru.net/kifuliiru-web/internal/middleware"
	"kifuliiru.net/kifuliiru-web/internal/resolver"
)

// Router assembles the full middleware stack and route table. The same
// router serves requests and feeds the static build crawl.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Locale(s.bundle))
	r.Use(mw.VaryLocale)
	r.Use(mw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	assets := http.StripPrefix("/assets", mw.Assets(filepath.Join(s.cfg.PublicDir, "assets")))
	r.Handle("/assets/*", assets)

	r.Get("/", s.Home)

	r.Route("/api", func(r chi.Router) {
		r.Get("/content/*", s.APIContent)
		r.Get("/meta", s.APIMeta)
		r.Get("/search", s.APISearch)
	})

	for _, sec := range resolver.Sections {
		sec := sec
		r.Get("/"+sec.ID, s.SectionPage(sec))
		r.Get("/"+sec.ID+"/*", s.SectionPage(sec))
	}

	r.NotFound(s.NotFound)
	return r
}
