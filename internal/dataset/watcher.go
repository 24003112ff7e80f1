package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"showcase/internal/gallery"
	"showcase/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc receives a freshly decoded dataset.
type ReloadFunc func(groups []gallery.ContributorGroup)

// Watcher reloads a dataset file whenever it changes on disk. It watches the
// containing directory so editors that save by rename are still seen.
type Watcher struct {
	path      string
	dir       string
	onReload  ReloadFunc
	debouncer *Debouncer

	mu    sync.Mutex
	stats WatcherStats
}

// WatcherStats tracks watcher activity.
type WatcherStats struct {
	Events        int
	Reloads       int
	Errors        int
	LastEventTime time.Time
	LastEventType string
}

// NewWatcher creates a watcher for path. Bursts of events closer together
// than quiet trigger a single reload.
func NewWatcher(path string, quiet time.Duration, onReload ReloadFunc) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("dataset path required for watching")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dataset path: %w", err)
	}
	w := &Watcher{
		path:     abs,
		dir:      filepath.Dir(abs),
		onReload: onReload,
	}
	w.debouncer = NewDebouncer(quiet, w.reload)
	return w, nil
}

// Run watches until ctx is cancelled. It returns nil on cancellation, and
// only after any reload in progress has finished; onReload is never called
// once Run has returned. A Watcher runs once.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()
	defer w.debouncer.Stop()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	logging.Watcher("watching %s", w.path)

	for {
		select {
		case <-ctx.Done():
			logging.Watcher("context cancelled, stopping")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logging.WatcherError("watch error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}

	var eventType string
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = "create"
	case event.Op&fsnotify.Write != 0:
		eventType = "modify"
	case event.Op&fsnotify.Rename != 0:
		eventType = "rename"
	case event.Op&fsnotify.Remove != 0:
		// The file is usually recreated right after; wait for that event.
		eventType = "delete"
	default:
		return
	}

	w.mu.Lock()
	w.stats.Events++
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventType = eventType
	w.mu.Unlock()

	if eventType == "delete" {
		return
	}
	w.debouncer.Trigger(ctx)
}

func (w *Watcher) reload(ctx context.Context) {
	groups, err := Load(w.path)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		logging.WatcherError("reload failed, keeping previous dataset: %v", err)
		w.mu.Lock()
		w.stats.Errors++
		w.mu.Unlock()
		return
	}

	w.mu.Lock()
	w.stats.Reloads++
	w.mu.Unlock()

	logging.Get(logging.CategoryWatcher).
		With("path", w.path, "contributors", len(groups), "reloads", w.Stats().Reloads).
		Info("reloaded dataset")
	if w.onReload != nil {
		w.onReload(groups)
	}
}

// Stats returns a snapshot of watcher activity.
func (w *Watcher) Stats() WatcherStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}
