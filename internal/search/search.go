// Package search implements the site's free-text lookup: a linear,
// case-insensitive substring scan over navigation and content titles in
// discovery order. There is no ranking; the first ten hits win.
package search

import (
	"log"
	"strings"

	"kifuliiru.net/kifuliiru-web/internal/content"
	"kifuliiru.net/kifuliiru-web/internal/nav"
	"kifuliiru.net/kifuliiru-web/internal/resolver"
)

// MinQueryLen is the shortest query the scan accepts. Anything shorter
// returns no results without touching the index or the stores.
const MinQueryLen = 2

// MaxResults caps a single response.
const MaxResults = 10

// Result is one search hit.
type Result struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// Index is the scannable entry list. Build order is discovery order:
// navigation entries first, then store enumeration.
type Index struct {
	entries []entry
}

type entry struct {
	title string
	path  string
	hay   string
}

// Build assembles an index from the navigation tree plus both stores'
// content. Content bodies are included in the haystack so phrases inside
// a lesson are findable, not just its title.
func Build(tree nav.Tree, jsonStore *content.JSONStore, mdxStore *content.MDXStore) *Index {
	ix := &Index{}
	ix.addNav(tree.Items, "")

	if jsonStore != nil {
		slugs, err := jsonStore.Slugs()
		if err != nil {
			log.Printf("search: enumerate json: %v", err)
		}
		for _, slug := range slugs {
			route, ok := routeFor(slug)
			if !ok {
				continue
			}
			it, err := jsonStore.Get(slug)
			if err != nil {
				continue
			}
			ix.add(it.Title, route, it.Title)
		}
	}
	if mdxStore != nil {
		slugs, err := mdxStore.Slugs()
		if err != nil {
			log.Printf("search: enumerate mdx: %v", err)
		}
		for _, slug := range slugs {
			route, ok := routeFor(slug)
			if !ok {
				continue
			}
			doc, err := mdxStore.Get(slug)
			if err != nil {
				continue
			}
			ix.add(doc.Title(), route, doc.Title()+" "+doc.Body)
		}
	}
	return ix
}

// routeFor maps a stored slug to the route the router serves it under.
// Top-level alias documents are reachable only beneath their owning
// section; slugs with no servable route report false so the index never
// links to a dead page.
func routeFor(slug string) (string, bool) {
	segs := strings.Split(slug, "/")
	if sec, ok := resolver.SectionByID(segs[0]); ok {
		if len(segs) == 1 && !sec.HasRoot {
			return "", false
		}
		return "/" + slug, true
	}
	if len(segs) == 1 {
		for _, sec := range resolver.Sections {
			if sec.HasAlias(segs[0]) {
				return "/" + sec.ID + "/" + segs[0], true
			}
		}
	}
	return "", false
}

func (ix *Index) addNav(items []nav.Entry, parent string) {
	for _, e := range items {
		href := nav.HrefFor(e, parent)
		title := nav.TitleFor(e)
		ix.add(title, href, title)
		if len(e.Node.Items) > 0 {
			ix.addNav(e.Node.Items, href)
		}
	}
}

func (ix *Index) add(title, path, hay string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	ix.entries = append(ix.entries, entry{
		title: title,
		path:  path,
		hay:   strings.ToLower(hay),
	})
}

// Search scans the index. Queries under MinQueryLen return an empty,
// non-nil slice; duplicates by path are collapsed, keeping the first.
func (ix *Index) Search(query string) []Result {
	results := []Result{}
	query = strings.ToLower(strings.TrimSpace(query))
	if len([]rune(query)) < MinQueryLen {
		return results
	}
	seen := map[string]bool{}
	for _, e := range ix.entries {
		if !strings.Contains(e.hay, query) {
			continue
		}
		if seen[e.path] {
			continue
		}
		seen[e.path] = true
		results = append(results, Result{Title: e.title, Path: e.path})
		if len(results) >= MaxResults {
			break
		}
	}
	return results
}
