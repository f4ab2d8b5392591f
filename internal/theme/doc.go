// Package theme loads the clock stylesheet and applies it to the display.
// Bundled themes are embedded; a file with the same name in
// ~/.config/hyprclock/themes/ overrides the bundled one and is hot-reloaded.
package theme
