package theme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/hyprclock/internal/config"
)

// ErrThemeNotFound is returned by LoadTheme when the requested theme does not
// exist and the default theme was loaded instead.
var ErrThemeNotFound = errors.New("theme not found")

// Loader loads a theme into a process-wide CSS provider.
type Loader struct {
	mu        sync.RWMutex
	logger    *slog.Logger
	provider  *gtk.CSSProvider
	themesDir string
	theme     *Theme
	watcher   *Watcher
	applied   bool
}

// NewLoader creates a new theme loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	themesDir, err := ThemesDir()
	if err != nil {
		logger.Warn("failed to get themes directory", "error", err)
		themesDir = ""
	}

	return &Loader{
		logger:    logger,
		provider:  gtk.NewCSSProvider(),
		themesDir: themesDir,
	}
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "themes"), nil
}

// ResolveTheme finds a theme by name: the user themes directory first, then
// the bundled themes, then the default theme.
func ResolveTheme(name, themesDir string, logger *slog.Logger) *Theme {
	if name == "" {
		name = DefaultThemeName
	}

	if themesDir != "" {
		path := filepath.Join(themesDir, name+".css")
		if _, err := os.Stat(path); err == nil {
			t, err := NewTheme(name, path)
			if err == nil {
				return t
			}
			logger.Warn("failed to load user theme, trying bundled", "theme", name, "error", err)
		}
	}

	if t, found := NewBundledTheme(name); found {
		return t
	}

	logger.Warn("theme not found, using default", "theme", name)
	t, _ := NewBundledTheme(DefaultThemeName)
	return t
}

// LoadTheme loads a theme by name into the provider. When name cannot be
// found the default theme is loaded and ErrThemeNotFound returned.
func (l *Loader) LoadTheme(name string) error {
	t := ResolveTheme(name, l.themesDir, l.logger)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.theme = t
	l.provider.LoadFromString(t.CSS)
	l.logger.Info("loaded theme", "name", t.Name, "path", t.Path, "bundled", t.IsBundled)

	if name != "" && t.Name != name {
		return fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}
	return nil
}

// Apply attaches the provider to display, or the default display when nil.
// The provider stays attached for the lifetime of the process.
func (l *Loader) Apply(display *gdk.Display) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.applied {
		return
	}
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}

	gtk.StyleContextAddProviderForDisplay(display, l.provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
	l.applied = true
	l.logger.Debug("applied theme to display", "name", l.currentNameLocked())
}

// StartHotReload watches the current user theme and reloads the provider on change.
// Bundled themes are not watched.
func (l *Loader) StartHotReload(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher != nil {
		l.watcher.Stop()
		l.watcher = nil
	}

	if l.theme == nil || l.theme.IsBundled {
		l.logger.Debug("not starting hot-reload for bundled theme")
		return
	}

	l.watcher = NewWatcher(l.theme, l.logger)
	l.watcher.SetChangeCallback(func(css string) {
		glib.IdleAdd(func() {
			l.mu.Lock()
			l.provider.LoadFromString(css)
			name := l.currentNameLocked()
			l.mu.Unlock()
			l.logger.Info("hot-reloaded theme", "name", name)
		})
	})

	if err := l.watcher.Start(ctx); err != nil {
		l.logger.Warn("failed to start theme watcher", "error", err)
	}
}

// StopHotReload stops watching the theme for changes.
func (l *Loader) StopHotReload() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher != nil {
		l.watcher.Stop()
		l.watcher = nil
	}
}

// CurrentTheme returns the name of the currently loaded theme.
func (l *Loader) CurrentTheme() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentNameLocked()
}

func (l *Loader) currentNameLocked() string {
	if l.theme == nil {
		return ""
	}
	return l.theme.Name
}

// ThemesDirectory returns the directory user themes are read from.
func (l *Loader) ThemesDirectory() string {
	return l.themesDir
}
