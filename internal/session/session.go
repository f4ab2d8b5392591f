// Package session inspects the desktop session environment: whether it is
// a Wayland session and where the Hyprland event socket lives.
package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	sessionTypeEnv = "XDG_SESSION_TYPE"
	waylandEnv     = "WAYLAND_DISPLAY"
	runtimeEnv     = "XDG_RUNTIME_DIR"
	signatureEnv   = "HYPRLAND_INSTANCE_SIGNATURE"

	eventSocketName = ".socket2.sock"
	legacyHyprDir   = "/tmp/hypr"
)

var (
	// ErrMissingSignature is returned when HYPRLAND_INSTANCE_SIGNATURE is unset.
	ErrMissingSignature = errors.New("HYPRLAND_INSTANCE_SIGNATURE is not set; is Hyprland running?")
	// ErrNotWayland reports that a Wayland-only feature is unavailable.
	ErrNotWayland = errors.New("not a wayland session")
)

// Env looks up an environment variable. os.Getenv satisfies it.
type Env func(key string) string

// IsWayland reports whether the session is a Wayland session.
// An explicit XDG_SESSION_TYPE wins; without it WAYLAND_DISPLAY decides.
func IsWayland(getenv Env) bool {
	if getenv == nil {
		getenv = os.Getenv
	}

	switch strings.ToLower(strings.TrimSpace(getenv(sessionTypeEnv))) {
	case "wayland":
		return true
	case "":
		return getenv(waylandEnv) != ""
	default:
		return false
	}
}

// Signature returns the Hyprland instance signature.
func Signature(getenv Env) (string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	sig := strings.TrimSpace(getenv(signatureEnv))
	if sig == "" {
		return "", ErrMissingSignature
	}
	return sig, nil
}

// EventSocketPath resolves the Hyprland event socket (socket2).
// Hyprland 0.40+ keeps it under $XDG_RUNTIME_DIR/hypr; older releases used
// /tmp/hypr. The runtime location is preferred unless only the legacy one exists.
func EventSocketPath(getenv Env) (string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	sig, err := Signature(getenv)
	if err != nil {
		return "", err
	}

	legacy := filepath.Join(legacyHyprDir, sig, eventSocketName)

	runtime := getenv(runtimeEnv)
	if runtime == "" {
		return legacy, nil
	}

	current := filepath.Join(runtime, "hypr", sig, eventSocketName)
	if exists(current) || !exists(legacy) {
		return current, nil
	}
	return legacy, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
