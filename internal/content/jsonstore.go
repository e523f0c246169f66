package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultCacheTTL = 5 * time.Minute

// JSONStore reads structured lesson files (<slug>.json) from a content
// tree. The tree is authored ahead of time and never written at request
// time, so reads are cached with a short TTL.
type JSONStore struct {
	dir string

	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]jsonCacheEntry
}

type jsonCacheEntry struct {
	item    *Item
	expires time.Time
}

// NewJSONStore builds a store rooted at dir.
func NewJSONStore(dir string) *JSONStore {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "content"
	}
	return &JSONStore{
		dir:   dir,
		ttl:   defaultCacheTTL,
		items: map[string]jsonCacheEntry{},
	}
}

// Dir returns the content root.
func (s *JSONStore) Dir() string { return s.dir }

// SetCacheDuration overrides the read-cache TTL (primarily for tests).
func (s *JSONStore) SetCacheDuration(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	s.mu.Lock()
	s.ttl = d
	s.mu.Unlock()
}

// Purge drops every cached entry. The dev watcher calls this when a
// content file changes on disk.
func (s *JSONStore) Purge() {
	s.mu.Lock()
	s.items = map[string]jsonCacheEntry{}
	s.mu.Unlock()
}

// Get returns the item stored at slug. A missing file is ErrNotFound; a
// file that fails to decode is logged and reported as ErrMalformed.
func (s *JSONStore) Get(slug string) (*Item, error) {
	slug = CleanSlug(slug)
	if slug == "" {
		return nil, ErrNotFound
	}
	if it, ok := s.cached(slug); ok {
		return it, nil
	}

	path := filepath.Join(s.dir, filepath.FromSlash(slug)+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("content: read %s: %w", slug, err)
	}

	var it Item
	if err := json.Unmarshal(raw, &it); err != nil {
		log.Printf("content: malformed json %s: %v", slug, err)
		return nil, ErrMalformed
	}
	if it.Slug == "" {
		it.Slug = slug
	}
	s.store(slug, &it)
	return &it, nil
}

// Slugs enumerates every content slug under the root in lexical walk
// order. _meta.json and any other underscore-prefixed file describe
// navigation, not content, and are skipped.
func (s *JSONStore) Slugs() ([]string, error) {
	return walkSlugs(s.dir, ".json")
}

func (s *JSONStore) cached(slug string) (*Item, bool) {
	s.mu.RLock()
	entry, ok := s.items[slug]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.item, true
}

func (s *JSONStore) store(slug string, it *Item) {
	s.mu.Lock()
	s.items[slug] = jsonCacheEntry{item: it, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
}

// CleanSlug normalizes a slug for file lookup. Nested slugs keep their
// forward slashes; anything that could escape the content root is
// rejected outright.
func CleanSlug(slug string) string {
	slug = strings.TrimSpace(slug)
	slug = strings.Trim(slug, "/")
	if slug == "" {
		return ""
	}
	if strings.Contains(slug, "..") || strings.ContainsRune(slug, '\\') {
		return ""
	}
	for _, seg := range strings.Split(slug, "/") {
		if seg == "" {
			return ""
		}
	}
	return slug
}

func walkSlugs(dir, ext string) ([]string, error) {
	var slugs []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, "_") || !strings.HasSuffix(name, ext) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		slugs = append(slugs, strings.TrimSuffix(rel, ext))
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("content: enumerate %s: %w", dir, err)
	}
	return slugs, nil
}
