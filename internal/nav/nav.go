package nav

import (
	"path"
	"strings"

	"kifuliiru.net/kifuliiru-web/internal/content"
)

// RenderedItem is a view model for the header and sidebar templates.
type RenderedItem struct {
	Href      string
	Title     string
	NewWindow bool
	Active    bool
	Items     []RenderedItem
}

// Crumb represents a breadcrumb entry. When TitleKey is set the template
// localizes it; otherwise Title is used verbatim.
type Crumb struct {
	Href     string
	TitleKey string
	Title    string
	Active   bool
}

// PageRef points at a neighbouring page for prev/next links.
type PageRef struct {
	Href  string
	Title string
}

// Build renders the tree with active state given the current path.
// Activity is decided by string-prefix comparison of the current URL
// against each node's derived href; consumers never mutate the tree.
func Build(tree Tree, currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	return buildItems(tree.Items, "", currentPath)
}

func buildItems(items []Entry, parent, currentPath string) []RenderedItem {
	out := make([]RenderedItem, 0, len(items))
	for _, e := range items {
		href := HrefFor(e, parent)
		item := RenderedItem{
			Href:      href,
			Title:     TitleFor(e),
			NewWindow: e.Node.NewWindow,
			Active:    isActive(href, currentPath),
		}
		if len(e.Node.Items) > 0 {
			item.Items = buildItems(e.Node.Items, href, currentPath)
		}
		out = append(out, item)
	}
	return out
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumb entries from the current path. Titles
// come from the tree where a segment matches a known entry, otherwise
// from a prettified segment label. Home is always first.
func Breadcrumbs(tree Tree, currentPath string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", TitleKey: "nav.home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")

	items := tree.Items
	href := ""
	for i, seg := range parts {
		if seg == "" {
			continue
		}
		href = href + "/" + seg
		title := content.PrettifySlug(seg)
		var next []Entry
		for _, e := range items {
			if e.Key == seg {
				title = TitleFor(e)
				next = e.Node.Items
				break
			}
		}
		items = next
		crumbs = append(crumbs, Crumb{
			Href:   href,
			Title:  title,
			Active: i == len(parts)-1,
		})
	}
	return crumbs
}

// PrevNext returns the pages before and after the current path in the
// tree's display order, for footer pagination. External links (explicit
// hrefs or newWindow nodes) are skipped.
func PrevNext(tree Tree, currentPath string) (prev, next *PageRef) {
	pages := flattenPages(tree.Items, "")
	for i, p := range pages {
		if p.Href != currentPath {
			continue
		}
		if i > 0 {
			prev = &pages[i-1]
		}
		if i+1 < len(pages) {
			next = &pages[i+1]
		}
		return prev, next
	}
	return nil, nil
}

func flattenPages(items []Entry, parent string) []PageRef {
	var out []PageRef
	for _, e := range items {
		if e.Node.Href != "" || e.Node.NewWindow {
			continue
		}
		href := HrefFor(e, parent)
		if e.Node.Type != TypeMenu {
			out = append(out, PageRef{Href: href, Title: TitleFor(e)})
		}
		if len(e.Node.Items) > 0 {
			out = append(out, flattenPages(e.Node.Items, href)...)
		}
	}
	return out
}
