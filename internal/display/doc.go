// Package display owns the clock window. It builds the GTK4 window and label,
// places it with Wayland layer-shell, and drives the label and visibility
// timers on the GTK main loop.
package display
