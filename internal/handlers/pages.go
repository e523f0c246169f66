package handlers

import (
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"kifuliiru.net/kifuliiru-web/internal/content"
	"kifuliiru.net/kifuliiru-web/internal/i18n"
	"kifuliiru.net/kifuliiru-web/internal/middleware"
	"kifuliiru.net/kifuliiru-web/internal/nav"
	"kifuliiru.net/kifuliiru-web/internal/render"
	"kifuliiru.net/kifuliiru-web/internal/resolver"
	"kifuliiru.net/kifuliiru-web/internal/seo"
)

// Page kinds selected by the base layout.
const (
	pageHome     = "home"
	pageContent  = "content"
	pageMDX      = "mdx"
	pageNotFound = "notfound"
)

// PageData is the shared view model for the base layout. The navigation
// tree is loaded once per request and passed down; consumers never fetch
// it themselves.
type PageData struct {
	Page  string
	Title string
	Site  string
	Lang  string
	Path  string
	Query string

	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Prev        *nav.PageRef
	Next        *nav.PageRef
	TOC         []render.Heading
	Meta        seo.Meta

	// one of, depending on Page
	View *render.View
	Doc  *MDXView

	bundle *i18n.Bundle
}

// MDXView is the passthrough view model for markup content.
type MDXView struct {
	Title string
	HTML  template.HTML
}

// T localizes a UI string for the page's language.
func (p PageData) T(key string) string {
	if p.bundle == nil {
		return key
	}
	return p.bundle.T(p.Lang, key)
}

var navTreeEmpty = nav.Tree{}

func (s *Server) navTree() (nav.Tree, error) {
	return nav.LoadTree(s.cfg.ContentDir)
}

// pageData builds the chrome shared by every page render.
func (s *Server) pageData(r *http.Request, page, title string) PageData {
	lang := middleware.Lang(r, s.bundle.Fallback())
	tree, err := s.navTree()
	if err != nil {
		log.Printf("handlers: load nav: %v", err)
		tree = navTreeEmpty
	}
	path := r.URL.Path
	prev, next := nav.PrevNext(tree, path)
	crumbs := nav.Breadcrumbs(tree, path)
	return PageData{
		Page:        page,
		Title:       title,
		Site:        s.cfg.Title,
		Lang:        lang,
		Path:        path,
		Nav:         nav.Build(tree, path),
		Breadcrumbs: crumbs,
		Prev:        prev,
		Next:        next,
		Meta:        s.pageMeta(page, lang, path, crumbs),
		bundle:      s.bundle,
	}
}

// pageMeta assembles the head block: the canonical URL plus the
// schema.org payloads appropriate to the page kind.
func (s *Server) pageMeta(page, lang, path string, crumbs []nav.Crumb) seo.Meta {
	meta := seo.Meta{Canonical: seo.Canonical(s.cfg.Origin, path)}
	switch page {
	case pageHome:
		meta.JSONLD = append(meta.JSONLD, seo.JSON(seo.WebSite(
			s.cfg.Title, s.cfg.Origin, s.cfg.Origin+"/api/search?q=")))
	case pageContent, pageMDX:
		items := make([]seo.BreadcrumbItem, 0, len(crumbs))
		for _, c := range crumbs {
			name := c.Title
			if c.TitleKey != "" {
				name = s.bundle.T(lang, c.TitleKey)
			}
			items = append(items, seo.BreadcrumbItem{
				Name: name,
				Item: seo.Canonical(s.cfg.Origin, c.Href),
			})
		}
		meta.JSONLD = append(meta.JSONLD, seo.JSON(seo.BreadcrumbList(items)))
	}
	return meta
}

// SectionPage serves every path under a content section through the slug
// resolver.
func (s *Server) SectionPage(sec resolver.Section) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		segments := splitSegments(chi.URLParam(r, "*"))
		res, err := s.res.Resolve(sec.ID, segments)
		if err != nil {
			log.Printf("handlers: resolve %s/%v: %v", sec.ID, segments, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !res.Found {
			s.NotFound(w, r)
			return
		}

		switch res.Format {
		case resolver.FormatJSON:
			view := render.Dispatch(res.Item.Data)
			data := s.pageData(r, pageContent, itemTitle(res))
			data.View = &view
			data.TOC = view.TOC()
			data.Query = r.URL.Query().Get("q")
			data.Meta.Description = viewDescription(view)
			data.Meta.JSONLD = append(data.Meta.JSONLD, seo.JSON(seo.Article(
				itemTitle(res), data.Meta.Canonical, data.Lang, itemAuthor(res.Item))))
			s.applyFilter(&view, data.Query)
			s.render(w, http.StatusOK, data)
		case resolver.FormatMDX:
			html, err := render.MDX(res.Doc)
			if err != nil {
				log.Printf("handlers: render %s: %v", res.StoredSlug, err)
				s.NotFound(w, r)
				return
			}
			toc, err := render.HeadingsFromHTML(string(html))
			if err != nil {
				log.Printf("handlers: headings %s: %v", res.StoredSlug, err)
			}
			data := s.pageData(r, pageMDX, res.Doc.Title())
			data.Doc = &MDXView{Title: res.Doc.Title(), HTML: html}
			data.TOC = toc
			if desc, ok := res.Doc.Meta["description"].(string); ok {
				data.Meta.Description = desc
			}
			data.Meta.JSONLD = append(data.Meta.JSONLD, seo.JSON(seo.Article(
				res.Doc.Title(), data.Meta.Canonical, data.Lang, "")))
			s.render(w, http.StatusOK, data)
		}
	}
}

// applyFilter narrows the filterable views to a search-box query. The
// filter is a pure re-derivation from the full dataset, so an empty query
// restores everything.
func (s *Server) applyFilter(view *render.View, query string) {
	if query == "" {
		return
	}
	switch view.Kind {
	case render.ViewNumbers:
		view.Numbers.Rows = render.FilterNumbers(view.Numbers.Rows, query)
		for i := range view.Numbers.Sections {
			view.Numbers.Sections[i].Rows = render.FilterNumbers(view.Numbers.Sections[i].Rows, query)
		}
	case render.ViewVocabulary:
		view.Vocabulary.Words = render.FilterWords(view.Vocabulary.Words, query)
	}
}

// NotFound renders the generic not-found view. A miss is a normal outcome
// for an invalid URL, so it is not logged as an error.
func (s *Server) NotFound(w http.ResponseWriter, r *http.Request) {
	data := s.pageData(r, pageNotFound, "")
	s.render(w, http.StatusNotFound, data)
}

// viewDescription pulls the authored description off whichever view
// carries one.
func viewDescription(view render.View) string {
	switch view.Kind {
	case render.ViewNumbers:
		return view.Numbers.Description
	case render.ViewVocabulary:
		return view.Vocabulary.Description
	case render.ViewArticle:
		return view.Article.Description
	}
	return ""
}

func itemAuthor(it *content.Item) string {
	if it == nil || it.Metadata == nil {
		return ""
	}
	return it.Metadata.Author
}

func itemTitle(res resolver.Resolution) string {
	if res.Item != nil && strings.TrimSpace(res.Item.Title) != "" {
		return res.Item.Title
	}
	return res.ResolvedSlug
}

func splitSegments(rest string) []string {
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return nil
	}
	parts := strings.Split(rest, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
