package theme

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long file events must settle before a theme is re-read.
const DefaultDebounce = 100 * time.Millisecond

// Watcher re-reads a user theme when any stylesheet in its directory changes
// and hands the new CSS to a callback. Imported partials live beside the
// theme, so the directory is watched instead of the single file.
type Watcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	theme    *Theme
	debounce time.Duration
	onChange func(css string)

	fsw     *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher creates a Watcher for theme.
func NewWatcher(theme *Theme, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		logger:   logger,
		theme:    theme,
		debounce: DefaultDebounce,
	}
}

// SetDebounce sets how long to wait for file events to settle.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// SetChangeCallback sets the callback invoked with the new CSS.
// It runs on the watcher goroutine.
func (w *Watcher) SetChangeCallback(callback func(css string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = callback
}

// Start watches the theme's directory. Bundled themes have no file and are
// ignored.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running || w.theme == nil || w.theme.IsBundled {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	dir := filepath.Dir(w.theme.Path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.fsw = fsw
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})

	go w.watchLoop(ctx, fsw, w.debounce, w.stopCh, w.doneCh)

	w.logger.Debug("theme watcher started", "path", w.theme.Path)
	return nil
}

// Stop stops watching and waits for the watch goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	doneCh, fsw := w.doneCh, w.fsw
	w.mu.Unlock()

	<-doneCh
	if err := fsw.Close(); err != nil {
		w.logger.Debug("failed to close theme watcher", "error", err)
	}
	w.logger.Debug("theme watcher stopped")
}

// IsRunning reports whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

func (w *Watcher) watchLoop(ctx context.Context, fsw *fsnotify.Watcher, debounce time.Duration, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Ext(event.Name) != ".css" {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("theme watcher error", "error", err)

		case <-timer.C:
			w.refresh()
		}
	}
}

func (w *Watcher) refresh() {
	w.mu.RLock()
	theme := w.theme
	callback := w.onChange
	w.mu.RUnlock()

	changed, err := theme.Refresh()
	if err != nil {
		// A save by rename leaves the file briefly absent; the create that
		// follows triggers another refresh.
		w.logger.Debug("theme not reloaded", "path", theme.Path, "error", err)
		return
	}
	if !changed {
		return
	}

	w.logger.Info("theme file changed, reloading", "path", theme.Path)
	if callback != nil {
		callback(theme.CSS)
	}
}
