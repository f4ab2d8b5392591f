package display

import (
	"log/slog"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/hyprclock/internal/config"
)

const (
	// WindowTitle is the toplevel title, used by compositor window rules.
	WindowTitle = "GTK4 Clock"
	// LabelName is the widget name the stylesheets target as #clock_label.
	LabelName = "clock_label"
	// WindowClass is the CSS class on the clock window.
	WindowClass = "hyprclock"
)

// ClockWindow is the undecorated window holding the clock label.
type ClockWindow struct {
	window     *gtk.Window
	label      *gtk.Label
	logger     *slog.Logger
	layerShell bool
	schemeCls  string
	closed     bool
}

// NewClockWindow creates the clock window. When layerShell is set the window
// becomes a layer-shell surface; otherwise it is a plain toplevel.
func NewClockWindow(app *gtk.Application, cfg *config.Config, layerShell bool, logger *slog.Logger) *ClockWindow {
	if logger == nil {
		logger = slog.Default()
	}

	w := &ClockWindow{logger: logger}

	w.window = gtk.NewWindow()
	w.window.SetApplication(app)
	w.window.SetTitle(WindowTitle)
	w.window.SetDecorated(false)
	w.window.SetResizable(false)
	w.window.SetDefaultSize(cfg.Window.Width, cfg.Window.Height)
	w.window.AddCSSClass(WindowClass)

	w.label = gtk.NewLabel("")
	w.label.SetName(LabelName)
	w.label.SetUseMarkup(true)
	w.window.SetChild(w.label)

	if layerShell && !layershell.IsSupported() {
		logger.Warn("compositor does not support layer-shell, using a regular window")
		layerShell = false
	}
	w.layerShell = layerShell

	if w.layerShell {
		layershell.InitForWindow(w.window)
		layershell.SetExclusiveZone(w.window, 0) // Don't reserve space
		layershell.SetKeyboardMode(w.window, layershell.LayerShellKeyboardModeNone)
		layershell.SetNamespace(w.window, namespace(cfg.Window))
	}

	w.ApplyWindowConfig(cfg.Window)
	w.ApplyColorScheme(config.ColorScheme(cfg.Theme.ColorScheme))

	return w
}

func namespace(cfg config.WindowConfig) string {
	if cfg.Namespace == "" {
		return config.DefaultNamespace
	}
	return cfg.Namespace
}

// ApplyWindowConfig updates size and, on layer-shell, layer, anchors,
// margins and monitor.
func (w *ClockWindow) ApplyWindowConfig(cfg config.WindowConfig) {
	w.window.SetDefaultSize(cfg.Width, cfg.Height)

	if !w.layerShell {
		return
	}

	layershell.SetLayer(w.window, layerFor(config.Layer(cfg.Layer)))

	anchors := config.Position(cfg.Position).Anchors()
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeTop, anchors.Top)
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeRight, anchors.Right)
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeBottom, anchors.Bottom)
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeLeft, anchors.Left)

	margins := cfg.Margins()
	layershell.SetMargin(w.window, layershell.LayerShellEdgeTop, margins.Top)
	layershell.SetMargin(w.window, layershell.LayerShellEdgeRight, margins.Right)
	layershell.SetMargin(w.window, layershell.LayerShellEdgeBottom, margins.Bottom)
	layershell.SetMargin(w.window, layershell.LayerShellEdgeLeft, margins.Left)

	if monitor := selectMonitor(w.window.Display(), cfg.Monitor, w.logger); monitor != nil {
		layershell.SetMonitor(w.window, monitor)
	}
}

// layerFor maps a configured layer to its layer-shell value.
func layerFor(layer config.Layer) layershell.LayerShellLayer {
	switch layer {
	case config.LayerBackground:
		return layershell.LayerShellLayerBackground
	case config.LayerBottom:
		return layershell.LayerShellLayerBottom
	case config.LayerTop:
		return layershell.LayerShellLayerTop
	default:
		return layershell.LayerShellLayerOverlay
	}
}

// ApplyColorScheme sets the libadwaita colour scheme and swaps the window's
// light/dark class so themes can style either.
func (w *ClockWindow) ApplyColorScheme(scheme config.ColorScheme) {
	adw.StyleManagerGetDefault().SetColorScheme(adwColorScheme(scheme))

	cls := colorSchemeClass(scheme, detectSystemDark())
	if cls == w.schemeCls {
		return
	}
	if w.schemeCls != "" {
		w.window.RemoveCSSClass(w.schemeCls)
	}
	w.window.AddCSSClass(cls)
	w.schemeCls = cls
}

func adwColorScheme(scheme config.ColorScheme) adw.ColorScheme {
	switch scheme {
	case config.ColorSchemeLight:
		return adw.ColorSchemeForceLight
	case config.ColorSchemeDark:
		return adw.ColorSchemeForceDark
	default:
		return adw.ColorSchemeDefault
	}
}

// colorSchemeClass returns "light" or "dark" for the configured scheme,
// consulting the system preference for "system".
func colorSchemeClass(scheme config.ColorScheme, systemDark bool) string {
	switch scheme {
	case config.ColorSchemeLight:
		return "light"
	case config.ColorSchemeDark:
		return "dark"
	default:
		if systemDark {
			return "dark"
		}
		return "light"
	}
}

// detectSystemDark checks libadwaita for the system dark mode preference.
func detectSystemDark() bool {
	return adw.StyleManagerGetDefault().Dark()
}

// SetMarkup replaces the label's Pango markup.
func (w *ClockWindow) SetMarkup(markup string) {
	w.label.SetMarkup(markup)
}

// SetVisible shows or hides the window.
func (w *ClockWindow) SetVisible(visible bool) {
	if w.closed {
		return
	}
	w.window.SetVisible(visible)
}

// Present shows the window for the first time.
func (w *ClockWindow) Present() {
	w.window.Present()
}

// OnDestroy registers cb to run when the window is destroyed.
func (w *ClockWindow) OnDestroy(cb func()) {
	w.window.ConnectDestroy(func() {
		w.closed = true
		cb()
	})
}

// Close closes the window.
func (w *ClockWindow) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.window.Close()
}

// LayerShell reports whether the window is a layer-shell surface.
func (w *ClockWindow) LayerShell() bool {
	return w.layerShell
}
