// Package hypr reads the Hyprland event socket and turns fullscreen
// transitions into boolean signals for the UI.
package hypr
