package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// DefaultDebounce coalesces bursts of write events from editors and deploy tools.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads the catalog file into a Store whenever it changes.
type Watcher struct {
	store    *Store
	loader   *FileLoader
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	reloads chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher watches the directory holding the loader's file. Watching the
// directory rather than the file survives atomic rename-on-save.
func NewWatcher(store *Store, loader *FileLoader, opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(loader.Path())); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", loader.Path(), err)
	}

	w := &Watcher{
		store:    store,
		loader:   loader,
		watcher:  fw,
		debounce: DefaultDebounce,
		reloads:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Reloads signals after every reload attempt. Intended for tests.
func (w *Watcher) Reloads() <-chan struct{} {
	return w.reloads
}

// Start runs the event loop until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.watchLoop(ctx)
	log.Info().Str("path", w.loader.Path()).Msg("Catalog watcher started")
}

// Stop shuts the watcher down and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
	err := w.watcher.Close()
	w.wg.Wait()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return err
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer w.wg.Done()

	target := filepath.Clean(w.loader.Path())
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Str("path", target).Msg("Catalog watcher error")
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if err := w.store.Reload(ctx, w.loader); err != nil {
			log.Error().Err(err).Str("path", w.loader.Path()).Msg("Catalog reload failed, keeping previous snapshot")
		}
		select {
		case w.reloads <- struct{}{}:
		default:
		}
	})
}
