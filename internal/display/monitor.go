package display

import (
	"log/slog"
	"unsafe"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
)

// selectMonitor returns the monitor for a configured index.
// 0 leaves the choice to the compositor and returns nil; 1+ is a 1-indexed
// monitor, falling back to the first monitor when out of range.
func selectMonitor(display *gdk.Display, monitorNum int, logger *slog.Logger) *gdk.Monitor {
	if display == nil || monitorNum <= 0 {
		return nil
	}

	monitors := display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		logger.Warn("no monitors list available")
		return nil
	}

	index := uint(monitorNum - 1)
	if index >= monitors.NItems() {
		logger.Warn("configured monitor not available, using first",
			"configured", monitorNum,
			"available", monitors.NItems(),
		)
		index = 0
	}

	return wrapMonitor(monitors.Item(index))
}

// wrapMonitor wraps a list model item as a gdk.Monitor.
// gotk4 doesn't export its own wrapper; gdk.Monitor is a struct embedding
// *glib.Object, so the layout matches.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}
