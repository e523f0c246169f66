// Package watch invalidates content caches when files change on disk.
// It only runs in dev mode; production content is immutable per deploy.
package watch

import (
	"context"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes a content tree and calls the purge hook when a
// content file is created, modified, or removed. Rapid editor saves are
// debounced.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	dir      string
	purge    func()
	debounce time.Duration
	last     map[string]time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// New builds a watcher over dir; purge is invoked after relevant events.
func New(dir string, purge func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:  fsw,
		dir:      dir,
		purge:    purge,
		debounce: 500 * time.Millisecond,
		last:     map[string]time.Time{},
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching the content tree and every subdirectory.
// Non-blocking; the event loop runs in a goroutine until Stop or context
// cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	err := filepath.WalkDir(w.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		return w.watcher.Add(path)
	})
	if err != nil {
		log.Printf("watch: initial walk %s: %v", w.dir, err)
	}

	go w.run(ctx)
	return nil
}

// Stop shuts the watcher down and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if event.Op&fsnotify.Create != 0 {
		// new subdirectories need their own watch
		if !strings.Contains(name, ".") {
			_ = w.watcher.Add(event.Name)
		}
	}
	if !isContentFile(name) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.mu.Lock()
	now := time.Now()
	if t, ok := w.last[event.Name]; ok && now.Sub(t) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.last[event.Name] = now
	w.mu.Unlock()

	log.Printf("watch: %s changed, purging content caches", event.Name)
	w.purge()
}

func isContentFile(name string) bool {
	switch filepath.Ext(name) {
	case ".json", ".mdx":
		return true
	}
	return false
}
