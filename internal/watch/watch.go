// Package watch polls a project tree for content changes and triggers
// rescans. It uses polling with content digests instead of OS file
// events so behavior is identical across platforms and network mounts.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// watchedExts are the file extensions whose changes trigger a rescan.
var watchedExts = map[string]bool{
	".py": true, ".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".vue": true, ".svelte": true,
	".java": true, ".kt": true, ".swift": true, ".go": true, ".rs": true, ".rb": true,
	".css": true, ".scss": true, ".less": true, ".html": true, ".md": true,
	".json": true, ".yaml": true, ".yml": true, ".toml": true,
}

// ignoredDirs are skipped entirely while polling.
var ignoredDirs = map[string]bool{
	"node_modules": true, ".git": true, "__pycache__": true,
	".venv": true, "venv": true, "dist": true, "build": true,
	".next": true, ".nuxt": true, "coverage": true,
	".cursor": true, ".windsurf": true, ".vscode": true, ".idea": true,
}

const (
	// DefaultInterval is how often the tree is polled.
	DefaultInterval = 2 * time.Second
	// DefaultDebounce is how long changes accumulate before a rescan.
	DefaultDebounce = 2 * time.Second
)

// Change is one observed file event.
type Change struct {
	Path   string // relative to the watched root
	Action string // created, modified, deleted
}

// Watcher polls a project tree and invokes a callback when watched
// files change.
type Watcher struct {
	root     string
	interval time.Duration
	debounce time.Duration
	onChange func([]Change)

	digests map[string]string
	pending []Change
	dirty   time.Time
}

// New creates a Watcher for root. onChange receives the batched changes
// after the debounce window closes; it runs on the polling goroutine.
func New(root string, onChange func([]Change)) (*Watcher, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("watch: root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch: root %q is not a directory", root)
	}
	return &Watcher{
		root:     root,
		interval: DefaultInterval,
		debounce: DefaultDebounce,
		onChange: onChange,
		digests:  map[string]string{},
	}, nil
}

// SetInterval overrides the polling interval. Intended for tests.
func (w *Watcher) SetInterval(d time.Duration) { w.interval = d }

// SetDebounce overrides the debounce window. Intended for tests.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// Run polls until ctx is cancelled. Pending changes are flushed before
// returning.
func (w *Watcher) Run(ctx context.Context) error {
	// Prime digests so the first poll doesn't report every file as created.
	w.snapshot(func(rel, digest string) {
		w.digests[rel] = digest
	})

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.flush()
			return ctx.Err()
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *Watcher) poll() {
	seen := make(map[string]bool, len(w.digests))

	w.snapshot(func(rel, digest string) {
		seen[rel] = true
		old, known := w.digests[rel]
		switch {
		case !known:
			w.digests[rel] = digest
			w.queue(Change{Path: rel, Action: "created"})
		case old != digest:
			w.digests[rel] = digest
			w.queue(Change{Path: rel, Action: "modified"})
		}
	})

	for rel := range w.digests {
		if !seen[rel] {
			delete(w.digests, rel)
			w.queue(Change{Path: rel, Action: "deleted"})
		}
	}

	if len(w.pending) > 0 && time.Since(w.dirty) >= w.debounce {
		w.flush()
	}
}

// snapshot walks the tree and reports the digest of every watched file.
func (w *Watcher) snapshot(visit func(rel, digest string)) {
	_ = filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if ignoredDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !shouldWatch(d.Name()) {
			return nil
		}
		digest, err := fileDigest(path)
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return nil
		}
		visit(filepath.ToSlash(rel), digest)
		return nil
	})
}

func (w *Watcher) queue(c Change) {
	if len(w.pending) == 0 {
		w.dirty = time.Now()
	}
	w.pending = append(w.pending, c)
}

func (w *Watcher) flush() {
	if len(w.pending) == 0 {
		return
	}
	changes := w.pending
	w.pending = nil
	if w.onChange != nil {
		w.onChange(changes)
	} else {
		log.Printf("WARNING: %d changes dropped: no change handler", len(changes))
	}
}

// shouldWatch reports whether a file name is interesting. Memory
// artifacts are excluded so a rescan never retriggers the watcher.
func shouldWatch(name string) bool {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "guardian") {
		return false
	}
	return watchedExts[strings.ToLower(filepath.Ext(name))]
}

func fileDigest(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
