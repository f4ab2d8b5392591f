package display

import (
	"log/slog"
	"sync"
	"time"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/hyprclock/internal/clock"
	"github.com/jmylchreest/hyprclock/internal/config"
	"github.com/jmylchreest/hyprclock/internal/visibility"
)

// LabelInterval is how often the clock label is refreshed.
const LabelInterval = time.Second

// Manager owns the clock window and its main-loop timers.
// All methods except Handle must be called on the GTK main loop.
type Manager struct {
	app     *gtk.Application
	logger  *slog.Logger
	display *gdk.Display

	mu     sync.RWMutex
	config *config.Config

	window *ClockWindow
	label  *clock.Label
	handle *visibility.Handle
	poller *visibility.Poller

	labelSource glib.SourceHandle
	pollSource  glib.SourceHandle
	pollEvery   time.Duration
	stopped     bool
}

// NewManager creates a new display manager.
func NewManager(app *gtk.Application, cfg *config.Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Manager{
		app:    app,
		config: cfg,
		logger: logger,
		label:  clock.NewLabel(clock.StyleFromConfig(cfg.Clock), cfg.Clock.ShowDateOnStart),
	}
}

// Start creates and presents the window and starts the label timer.
// layerShell places the window with layer-shell. signals, when non-nil, is
// drained by the visibility poller.
func (m *Manager) Start(layerShell bool, signals <-chan bool) error {
	m.display = gdk.DisplayGetDefault()
	if m.display == nil {
		return &DisplayError{Message: "no display available"}
	}

	m.mu.RLock()
	cfg := m.config
	m.mu.RUnlock()

	m.window = NewClockWindow(m.app, cfg, layerShell, m.logger)
	m.handle = visibility.NewHandle(m.window)
	m.window.OnDestroy(func() {
		m.handle.Detach()
		m.logger.Debug("clock window destroyed")
	})

	m.tickLabel()
	m.labelSource = glib.TimeoutSecondsAdd(uint(LabelInterval/time.Second), func() bool {
		if m.stopped {
			return false
		}
		m.tickLabel()
		return true
	})

	if signals != nil {
		m.poller = visibility.NewPoller(signals, m.handle)
		m.startPolling(cfg.Fullscreen.PollInterval.Duration())
	}

	m.window.Present()

	m.logger.Info("clock window started",
		"layer_shell", m.window.LayerShell(),
		"position", cfg.Window.Position,
		"layer", cfg.Window.Layer,
		"auto_hide", m.poller != nil,
	)
	return nil
}

func (m *Manager) tickLabel() {
	m.window.SetMarkup(m.label.Render(time.Now()))
}

func (m *Manager) startPolling(interval time.Duration) {
	m.pollEvery = interval
	m.pollSource = glib.TimeoutAdd(uint(interval.Milliseconds()), func() bool {
		if m.stopped {
			return false
		}
		m.poller.Tick()
		return true
	})
}

func (m *Manager) stopPolling() {
	if m.pollSource != 0 {
		glib.SourceRemove(m.pollSource)
		m.pollSource = 0
	}
}

// Handle returns the visibility handle, or nil before Start.
func (m *Manager) Handle() *visibility.Handle {
	return m.handle
}

// UpdateConfig applies a reloaded configuration to the running window.
// This is called when the config file is hot-reloaded.
func (m *Manager) UpdateConfig(cfg *config.Config) {
	m.mu.Lock()
	old := m.config
	m.config = cfg
	m.mu.Unlock()

	m.label.SetStyle(clock.StyleFromConfig(cfg.Clock))
	if m.window == nil {
		return
	}

	m.window.ApplyWindowConfig(cfg.Window)
	m.window.ApplyColorScheme(config.ColorScheme(cfg.Theme.ColorScheme))
	m.tickLabel()

	if m.poller != nil && cfg.Fullscreen.PollInterval.Duration() != m.pollEvery {
		m.stopPolling()
		m.startPolling(cfg.Fullscreen.PollInterval.Duration())
	}

	if old.Fullscreen.AutoHide != cfg.Fullscreen.AutoHide {
		m.logger.Warn("fullscreen.auto_hide changes take effect on restart")
	}

	m.logger.Debug("display manager config updated",
		"position", cfg.Window.Position,
		"layer", cfg.Window.Layer,
		"format", cfg.Clock.Format,
	)
}

// Stop removes the timers and closes the window.
func (m *Manager) Stop() {
	if m.stopped {
		return
	}
	m.stopped = true

	if m.labelSource != 0 {
		glib.SourceRemove(m.labelSource)
		m.labelSource = 0
	}
	m.stopPolling()

	if m.window != nil {
		m.window.Close()
	}

	m.logger.Info("display manager stopped")
}

// DisplayError represents a display-related error.
type DisplayError struct {
	Message string
	Cause   error
}

func (e *DisplayError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DisplayError) Unwrap() error {
	return e.Cause
}
