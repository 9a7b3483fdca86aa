package theme

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Theme is a named presentation style a slide can reference.
type Theme struct {
	Name       string `json:"name"`
	Background string `json:"background"`
	TextColor  string `json:"textColor"`
	Accent     string `json:"accent"`
	FontFamily string `json:"fontFamily"`
	Heading    string `json:"heading,omitempty"`
}

// builtins ship with the app so a fresh install has something to pick from.
var builtins = []Theme{
	{Name: "clean", Background: "#ffffff", TextColor: "#1a1a2e", Accent: "#2563eb", FontFamily: "Inter"},
	{Name: "dark", Background: "#0f0f14", TextColor: "#f5f5f5", Accent: "#22d3ee", FontFamily: "Inter"},
	{Name: "investor", Background: "#fafaf5", TextColor: "#111827", Accent: "#b45309", FontFamily: "Georgia"},
}

// Registry loads themes from a directory of JSON files and hot-reloads them
// when the directory changes, so designers can iterate without restarting
// the server.
type Registry struct {
	dir     string
	mu      sync.RWMutex
	themes  map[string]Theme
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
}

func NewRegistry(dir string) *Registry {
	r := &Registry{dir: dir, themes: make(map[string]Theme)}
	r.reload()
	return r
}

// Get returns a theme by name.
func (r *Registry) Get(name string) (Theme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.themes[name]
	return t, ok
}

// List returns all known themes, builtins included.
func (r *Registry) List() []Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Theme, 0, len(r.themes))
	for _, t := range r.themes {
		out = append(out, t)
	}
	return out
}

func (r *Registry) reload() {
	themes := make(map[string]Theme)
	for _, t := range builtins {
		themes[t.Name] = t
	}

	if r.dir != "" {
		entries, err := os.ReadDir(r.dir)
		if err != nil && !os.IsNotExist(err) {
			log.Printf("theme registry: read dir %q: %v", r.dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			path := filepath.Join(r.dir, entry.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				log.Printf("theme registry: read %q: %v", path, err)
				continue
			}
			var t Theme
			if err := json.Unmarshal(data, &t); err != nil {
				log.Printf("theme registry: parse %q: %v", path, err)
				continue
			}
			if t.Name == "" {
				t.Name = strings.TrimSuffix(entry.Name(), ".json")
			}
			themes[t.Name] = t
		}
	}

	r.mu.Lock()
	r.themes = themes
	r.mu.Unlock()
}

// Watch starts watching the theme directory for changes. Stops when ctx is
// canceled or Close is called.
func (r *Registry) Watch(ctx context.Context) error {
	if r.dir == "" {
		return nil
	}
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("create themes dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch themes dir: %w", err)
	}
	r.watcher = watcher

	watchCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
					r.reload()
					log.Printf("theme registry: reloaded after %s", ev.Name)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("theme registry: watcher error: %v", err)
			case <-watchCtx.Done():
				return
			}
		}
	}()
	return nil
}

// Close stops the watcher.
func (r *Registry) Close() {
	if r.cancel != nil {
		r.cancel()
	}
	if r.watcher != nil {
		r.watcher.Close()
	}
}
