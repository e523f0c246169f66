package content

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Document is a raw markup content item with front-matter metadata. It is
// the parallel universe to Item for pages not migrated to structured JSON;
// both share one slug space.
type Document struct {
	Slug string
	Body string
	Meta map[string]any
}

// Title returns the front-matter title, or a prettified slug when the
// author left it out.
func (d *Document) Title() string {
	if d == nil {
		return ""
	}
	if t, ok := d.Meta["title"].(string); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	base := d.Slug
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	return PrettifySlug(base)
}

// MDXStore reads markup files (<slug>.mdx) from the same content tree the
// JSONStore serves.
type MDXStore struct {
	dir string

	mu   sync.RWMutex
	ttl  time.Duration
	docs map[string]mdxCacheEntry
}

type mdxCacheEntry struct {
	doc     *Document
	expires time.Time
}

// NewMDXStore builds a store rooted at dir.
func NewMDXStore(dir string) *MDXStore {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "content"
	}
	return &MDXStore{
		dir:  dir,
		ttl:  defaultCacheTTL,
		docs: map[string]mdxCacheEntry{},
	}
}

// Dir returns the content root.
func (s *MDXStore) Dir() string { return s.dir }

// SetCacheDuration overrides the read-cache TTL (primarily for tests).
func (s *MDXStore) SetCacheDuration(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	s.mu.Lock()
	s.ttl = d
	s.mu.Unlock()
}

// Purge drops every cached entry.
func (s *MDXStore) Purge() {
	s.mu.Lock()
	s.docs = map[string]mdxCacheEntry{}
	s.mu.Unlock()
}

// Get returns the document stored at slug. Missing files are ErrNotFound;
// a front-matter block that fails to parse is logged and reported as
// ErrMalformed.
func (s *MDXStore) Get(slug string) (*Document, error) {
	slug = CleanSlug(slug)
	if slug == "" {
		return nil, ErrNotFound
	}
	if doc, ok := s.cached(slug); ok {
		return doc, nil
	}

	path := filepath.Join(s.dir, filepath.FromSlash(slug)+".mdx")
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("content: read %s: %w", slug, err)
	}

	front, body := SplitFrontMatter(string(raw))
	meta := map[string]any{}
	if strings.TrimSpace(front) != "" {
		if err := yaml.Unmarshal([]byte(front), &meta); err != nil {
			log.Printf("content: malformed front matter %s: %v", slug, err)
			return nil, ErrMalformed
		}
	}
	doc := &Document{Slug: slug, Body: body, Meta: meta}
	s.store(slug, doc)
	return doc, nil
}

// Slugs enumerates every markup slug under the root in lexical walk order.
func (s *MDXStore) Slugs() ([]string, error) {
	return walkSlugs(s.dir, ".mdx")
}

func (s *MDXStore) cached(slug string) (*Document, bool) {
	s.mu.RLock()
	entry, ok := s.docs[slug]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.doc, true
}

func (s *MDXStore) store(slug string, doc *Document) {
	s.mu.Lock()
	s.docs[slug] = mdxCacheEntry{doc: doc, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
}

// SplitFrontMatter separates a leading "---" delimited YAML block from the
// document body. Files without a front-matter fence return the whole input
// as body.
func SplitFrontMatter(input string) (front, body string) {
	input = strings.TrimLeft(input, "\uFEFF")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			front = strings.Join(lines[1:i], "\n")
			body = strings.Join(lines[i+1:], "\n")
			return front, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

// PrettifySlug turns a hyphenated slug segment into display text.
func PrettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return slug
	}
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
