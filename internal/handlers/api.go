package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"kifuliiru.net/kifuliiru-web/internal/middleware"
	"kifuliiru.net/kifuliiru-web/internal/resolver"
	"kifuliiru.net/kifuliiru-web/internal/search"
)

// contentResponse is the wire shape of a content lookup hit.
type contentResponse struct {
	ContentType resolver.Format `json:"contentType"`
	Content     any             `json:"content"`
}

// mdxPayload mirrors the structured item envelope for markup documents.
type mdxPayload struct {
	Slug    string         `json:"slug"`
	Content string         `json:"content"`
	Data    map[string]any `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type searchResponse struct {
	Results []search.Result `json:"results"`
}

// APIContent serves fetch-content-by-slug. The store layer reports
// absence as a sentinel; anything else is unexpected and becomes a
// generic 500 so filesystem detail never leaks to the client.
func (s *Server) APIContent(w http.ResponseWriter, r *http.Request) {
	slug := strings.Trim(chi.URLParam(r, "*"), "/")
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing slug"})
		return
	}

	res, err := s.res.Lookup(slug)
	if err != nil {
		log.Printf("api: lookup %s: %v", slug, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	if !res.Found {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "content not found"})
		return
	}

	resp := contentResponse{ContentType: res.Format}
	switch res.Format {
	case resolver.FormatJSON:
		resp.Content = res.Item
	case resolver.FormatMDX:
		resp.Content = mdxPayload{
			Slug:    res.Doc.Slug,
			Content: res.Doc.Body,
			Data:    res.Doc.Meta,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// APIMeta serves the full navigation metadata tree.
func (s *Server) APIMeta(w http.ResponseWriter, r *http.Request) {
	tree, err := s.navTree()
	if err != nil {
		log.Printf("api: meta: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

// APISearch serves free-text search. Queries under the minimum length
// return an empty result list before any index or store access. HTMX
// requests get an HTML fragment for the search-as-you-type dropdown.
func (s *Server) APISearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	results := []search.Result{}
	if len([]rune(query)) >= search.MinQueryLen {
		results = s.searchIndex().Search(query)
	}

	if middleware.IsHTMX(r.Context()) {
		s.renderTemplate(w, http.StatusOK, "search_results", results)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Results: results})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}
