package content

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var reloadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "wardbot",
		Name:      "content_reloads_total",
		Help:      "Content file reload attempts by result.",
	},
	[]string{"result"},
)

// Source hands out the content snapshot new sessions should bind to.
type Source interface {
	Current() Store
}

type staticSource struct {
	store Store
}

// Static wraps a fixed store as a Source.
func Static(store Store) Source {
	return staticSource{store: store}
}

func (s staticSource) Current() Store { return s.store }

// reloadDelay lets editors finish writing before the file is re-read.
const reloadDelay = 100 * time.Millisecond

// Watcher keeps a content file loaded and swaps in a new snapshot whenever
// the file changes. A file that fails to parse leaves the previous snapshot
// in place.
type Watcher struct {
	path    string
	log     zerolog.Logger
	watcher *fsnotify.Watcher
	current atomic.Pointer[MemoryStore]
}

// NewWatcher loads path once and starts watching its directory.
func NewWatcher(path string, log zerolog.Logger) (*Watcher, error) {
	tables, err := Load(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("content: create file watcher: %w", err)
	}
	// Watch the directory so atomic rename-on-save still produces events.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("content: watch %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path:    filepath.Clean(path),
		log:     log.With().Str("component", "content_watcher").Str("path", path).Logger(),
		watcher: fw,
	}
	w.current.Store(NewMemoryStore(tables))
	return w, nil
}

// Current returns the latest successfully loaded snapshot.
func (w *Watcher) Current() Store {
	return w.current.Load()
}

// Close stops the underlying file watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	w.log.Info().Msg("content watcher started")
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(reloadDelay):
			}
			w.Reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("content watcher error")
		}
	}
}

// Reload re-reads the file and swaps the snapshot on success.
func (w *Watcher) Reload() error {
	tables, err := Load(w.path)
	if err != nil {
		reloadsTotal.WithLabelValues("error").Inc()
		w.log.Error().Err(err).Msg("content reload failed, keeping previous tables")
		return err
	}
	w.current.Store(NewMemoryStore(tables))
	reloadsTotal.WithLabelValues("ok").Inc()
	w.log.Info().
		Int("categories", len(tables.Categories)).
		Int("departments", len(tables.Departments)).
		Msg("content reloaded")
	return nil
}
