package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/hyprclock/internal/config"
)

// DefaultDebounce collapses the burst of events editors produce on save.
const DefaultDebounce = 150 * time.Millisecond

// ConfigWatcher reloads the config file when it changes on disk.
// A file that fails to parse or validate is reported through the error
// callback and the previous configuration stays current.
type ConfigWatcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	configPath string
	debounce   time.Duration
	watcher    *fsnotify.Watcher

	currentConfig *config.Config

	onReloadCallback func(newConfig *config.Config)
	onErrorCallback  func(err error)

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewConfigWatcher creates a ConfigWatcher for configPath.
func NewConfigWatcher(configPath string, logger *slog.Logger) *ConfigWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfigWatcher{
		logger:     logger,
		configPath: configPath,
		debounce:   DefaultDebounce,
	}
}

// SetDebounce sets how long to wait for events to settle before reloading.
func (w *ConfigWatcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// SetReloadCallback sets the callback to invoke when config is successfully reloaded.
// It runs on the watcher goroutine.
func (w *ConfigWatcher) SetReloadCallback(callback func(newConfig *config.Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReloadCallback = callback
}

// SetErrorCallback sets the callback to invoke when config reload fails validation.
func (w *ConfigWatcher) SetErrorCallback(callback func(err error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onErrorCallback = callback
}

// Start begins watching the config file for changes.
// The containing directory is watched, and created if missing, so editors
// that replace the file by rename are seen.
func (w *ConfigWatcher) Start(ctx context.Context, initialConfig *config.Config) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	dir := filepath.Dir(w.configPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.watcher = watcher
	w.currentConfig = initialConfig
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})

	go w.watchLoop(ctx, watcher, w.debounce, w.stopCh, w.doneCh)

	w.logger.Debug("config watcher started", "path", w.configPath)
	return nil
}

// Stop stops watching the config file.
func (w *ConfigWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	doneCh := w.doneCh
	watcher := w.watcher
	w.mu.Unlock()

	<-doneCh
	if err := watcher.Close(); err != nil {
		w.logger.Debug("failed to close file watcher", "error", err)
	}
	w.logger.Debug("config watcher stopped")
}

// CurrentConfig returns the last valid configuration.
func (w *ConfigWatcher) CurrentConfig() *config.Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.currentConfig
}

func (w *ConfigWatcher) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	filename := filepath.Base(w.configPath)
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			// Only care about our file
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *ConfigWatcher) reload() {
	w.mu.RLock()
	reloadCallback := w.onReloadCallback
	errorCallback := w.onErrorCallback
	w.mu.RUnlock()

	if _, err := os.Stat(w.configPath); os.IsNotExist(err) {
		// Renamed away mid-save; the following create triggers the reload.
		return
	}

	w.logger.Debug("config file changed", "path", w.configPath)

	newConfig, err := config.LoadConfig(w.configPath)
	if err != nil {
		w.logger.Warn("config file changed but validation failed", "error", err)
		if errorCallback != nil {
			errorCallback(err)
		}
		return
	}

	w.mu.Lock()
	w.currentConfig = newConfig
	w.mu.Unlock()

	w.logger.Info("config reloaded successfully")
	if reloadCallback != nil {
		reloadCallback(newConfig)
	}
}
