// Package resolver maps URL paths to content files across the site's
// content trees. A request is a section prefix plus residual path
// segments; resolution tries multiple candidate slugs so content may live
// either nested under its section or at the top level of the tree.
package resolver

import (
	"errors"
	"strings"

	"kifuliiru.net/kifuliiru-web/internal/content"
)

// Format identifies which store a resolution came from.
type Format string

const (
	FormatJSON Format = "json"
	FormatMDX  Format = "mdx"
)

// Resolution is the outcome of a slug lookup. Found=false is a normal
// result for invalid URLs, not an error.
type Resolution struct {
	Found  bool
	Format Format

	// ResolvedSlug is always the nested candidate form, even when the hit
	// came from the root candidate: breadcrumb and prev/next logic depend
	// on the nested shape. StoredSlug is the slug actually read from
	// storage; the two can differ.
	ResolvedSlug string
	StoredSlug   string

	Item *content.Item
	Doc  *content.Document
}

// Resolver resolves request paths against the JSON and MDX stores.
type Resolver struct {
	json *content.JSONStore
	mdx  *content.MDXStore
}

// New builds a resolver over the two stores.
func New(json *content.JSONStore, mdx *content.MDXStore) *Resolver {
	return &Resolver{json: json, mdx: mdx}
}

// Resolve maps (section, segments) to content. Candidates are tried in a
// strict priority chain, first hit wins:
//
//  1. a bare alias, when the single segment is one of the section's
//     top-level aliases (bypasses the section prefix entirely),
//  2. the nested form section/seg1/.../segN,
//  3. the root form seg1/.../segN.
//
// Within each candidate the JSON store is consulted before the MDX store.
// The returned error covers only unexpected store failures; an exhausted
// chain is reported as a not-found Resolution.
func (r *Resolver) Resolve(section string, segments []string) (Resolution, error) {
	sec, ok := SectionByID(section)
	if !ok {
		return Resolution{}, nil
	}
	if len(segments) == 0 && !sec.HasRoot {
		// known to never exist; skip the lookup entirely
		return Resolution{}, nil
	}

	nested := sec.ID
	root := sec.ID
	if len(segments) > 0 {
		joined := strings.Join(segments, "/")
		nested = sec.ID + "/" + joined
		root = joined
	}

	candidates := make([]string, 0, 2)
	if len(segments) == 1 && sec.HasAlias(segments[0]) {
		candidates = append(candidates, root, nested)
	} else {
		candidates = append(candidates, nested)
		if root != nested {
			candidates = append(candidates, root)
		}
	}

	for _, cand := range candidates {
		it, err := r.json.Get(cand)
		if err == nil {
			return Resolution{
				Found:        true,
				Format:       FormatJSON,
				ResolvedSlug: nested,
				StoredSlug:   cand,
				Item:         it,
			}, nil
		}
		if !isMiss(err) {
			return Resolution{}, err
		}

		doc, err := r.mdx.Get(cand)
		if err == nil {
			return Resolution{
				Found:        true,
				Format:       FormatMDX,
				ResolvedSlug: nested,
				StoredSlug:   cand,
				Doc:          doc,
			}, nil
		}
		if !isMiss(err) {
			return Resolution{}, err
		}
	}
	return Resolution{}, nil
}

// Lookup resolves a full slug directly against the stores, JSON first.
// It backs the fetch-content-by-slug endpoint, which takes slugs rather
// than section paths.
func (r *Resolver) Lookup(slug string) (Resolution, error) {
	it, err := r.json.Get(slug)
	if err == nil {
		return Resolution{
			Found:        true,
			Format:       FormatJSON,
			ResolvedSlug: slug,
			StoredSlug:   slug,
			Item:         it,
		}, nil
	}
	if !isMiss(err) {
		return Resolution{}, err
	}
	doc, err := r.mdx.Get(slug)
	if err == nil {
		return Resolution{
			Found:        true,
			Format:       FormatMDX,
			ResolvedSlug: slug,
			StoredSlug:   slug,
			Doc:          doc,
		}, nil
	}
	if !isMiss(err) {
		return Resolution{}, err
	}
	return Resolution{}, nil
}

// EnumerateSection lists every servable path under a section as segment
// arrays, for build-time static generation. The union of both stores'
// slug listings is filtered to the section prefix or its alias allow-list;
// the section's forced paths are always present.
func (r *Resolver) EnumerateSection(section string) ([][]string, error) {
	sec, ok := SectionByID(section)
	if !ok {
		return nil, nil
	}

	jsonSlugs, err := r.json.Slugs()
	if err != nil {
		return nil, err
	}
	mdxSlugs, err := r.mdx.Slugs()
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var paths [][]string
	add := func(segments []string) {
		key := strings.Join(segments, "/")
		if seen[key] {
			return
		}
		seen[key] = true
		paths = append(paths, segments)
	}

	for _, slug := range append(append([]string(nil), jsonSlugs...), mdxSlugs...) {
		switch {
		case strings.HasPrefix(slug, sec.ID+"/"):
			add(strings.Split(strings.TrimPrefix(slug, sec.ID+"/"), "/"))
		case sec.HasAlias(slug):
			add([]string{slug})
		case slug == sec.ID && sec.HasRoot:
			add([]string{})
		}
	}
	for _, forced := range sec.Forced {
		add(forced)
	}
	return paths, nil
}

func isMiss(err error) bool {
	return errors.Is(err, content.ErrNotFound) || errors.Is(err, content.ErrMalformed)
}
