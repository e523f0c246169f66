package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"kifuliiru.net/kifuliiru-web/internal/config"
	"kifuliiru.net/kifuliiru-web/internal/content"
	"kifuliiru.net/kifuliiru-web/internal/format"
	"kifuliiru.net/kifuliiru-web/internal/i18n"
	"kifuliiru.net/kifuliiru-web/internal/resolver"
	"kifuliiru.net/kifuliiru-web/internal/search"
)

// Server owns the stores, the resolver, and the template set, and exposes
// the site's routes. Content is read-only at request time; the only
// mutable state is the caches, purged by the dev watcher.
type Server struct {
	cfg    *config.Site
	bundle *i18n.Bundle
	dev    bool

	json *content.JSONStore
	mdx  *content.MDXStore
	res  *resolver.Resolver

	tmpl *template.Template // parsed once in production, per request in dev

	searchMu sync.Mutex
	searchIx *search.Index
}

// NewServer wires the stores and parses templates. In dev mode templates
// are reparsed on every render instead.
func NewServer(cfg *config.Site, bundle *i18n.Bundle, dev bool) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		bundle: bundle,
		dev:    dev,
		json:   content.NewJSONStore(cfg.ContentDir),
		mdx:    content.NewMDXStore(cfg.ContentDir),
	}
	s.res = resolver.New(s.json, s.mdx)
	if !dev {
		tc, err := s.parseTemplates()
		if err != nil {
			return nil, err
		}
		s.tmpl = tc
	}
	return s, nil
}

// Resolver exposes the slug resolver for the static build.
func (s *Server) Resolver() *resolver.Resolver { return s.res }

// PurgeCaches drops the store read caches and the search index. The dev
// watcher calls this when content changes on disk.
func (s *Server) PurgeCaches() {
	s.json.Purge()
	s.mdx.Purge()
	s.searchMu.Lock()
	s.searchIx = nil
	s.searchMu.Unlock()
}

// parseTemplates recursively discovers and parses all .tmpl files.
// Note: ParseGlob doesn't support **.
func (s *Server) parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now":       time.Now,
		"fmtNumber": format.FmtNumber,
		"fmtDate":   format.FmtDate,
	}
	var files []string
	if err := filepath.WalkDir(s.cfg.TemplatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", s.cfg.TemplatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

// render executes the base layout. In dev mode, templates are reparsed on
// each request.
func (s *Server) render(w http.ResponseWriter, status int, data any) {
	s.renderTemplate(w, status, "base", data)
}

func (s *Server) renderTemplate(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	t := s.tmpl
	if s.dev {
		tc, err := s.parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return
		}
		t = tc
	}
	if t == nil {
		http.Error(w, "template not initialized", http.StatusInternalServerError)
		return
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
	}
}

// searchIndex lazily builds the search index; the guard against short
// queries in the handler runs before this, so those never touch a store.
func (s *Server) searchIndex() *search.Index {
	s.searchMu.Lock()
	defer s.searchMu.Unlock()
	if s.searchIx == nil {
		tree, err := s.navTree()
		if err != nil {
			tree = navTreeEmpty
		}
		s.searchIx = search.Build(tree, s.json, s.mdx)
	}
	return s.searchIx
}
