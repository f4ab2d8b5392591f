package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) Env {
	return func(key string) string { return m[key] }
}

func TestIsWayland(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected bool
	}{
		{"wayland session", map[string]string{"XDG_SESSION_TYPE": "wayland"}, true},
		{"wayland session uppercase", map[string]string{"XDG_SESSION_TYPE": "Wayland"}, true},
		{"x11 with display", map[string]string{"XDG_SESSION_TYPE": "x11", "DISPLAY": ":0"}, false},
		{"x11 with stray wayland display", map[string]string{"XDG_SESSION_TYPE": "x11", "WAYLAND_DISPLAY": "wayland-1"}, false},
		{"both empty", map[string]string{}, false},
		{"only wayland display", map[string]string{"WAYLAND_DISPLAY": "wayland-1"}, true},
		{"tty", map[string]string{"XDG_SESSION_TYPE": "tty"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsWayland(envMap(tt.env)))
		})
	}
}

func TestIsWayland_ProcessEnv(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "wayland")
	assert.True(t, IsWayland(nil))

	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("DISPLAY", ":0")
	assert.False(t, IsWayland(nil))
}

func TestSignature_Missing(t *testing.T) {
	_, err := Signature(envMap(map[string]string{}))
	assert.ErrorIs(t, err, ErrMissingSignature)

	_, err = EventSocketPath(envMap(map[string]string{"XDG_RUNTIME_DIR": "/run/user/1000"}))
	assert.ErrorIs(t, err, ErrMissingSignature)
}

func TestEventSocketPath_RuntimeDir(t *testing.T) {
	runtime := t.TempDir()
	sig := "abc123_1700000000_42"

	sockDir := filepath.Join(runtime, "hypr", sig)
	require.NoError(t, os.MkdirAll(sockDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sockDir, ".socket2.sock"), nil, 0600))

	path, err := EventSocketPath(envMap(map[string]string{
		"XDG_RUNTIME_DIR":             runtime,
		"HYPRLAND_INSTANCE_SIGNATURE": sig,
	}))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(sockDir, ".socket2.sock"), path)
}

func TestEventSocketPath_RuntimeDirPreferredWhenNeitherExists(t *testing.T) {
	runtime := t.TempDir()

	path, err := EventSocketPath(envMap(map[string]string{
		"XDG_RUNTIME_DIR":             runtime,
		"HYPRLAND_INSTANCE_SIGNATURE": "no-such-instance-for-tests",
	}))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(runtime, "hypr", "no-such-instance-for-tests", ".socket2.sock"), path)
}

func TestEventSocketPath_LegacyWithoutRuntimeDir(t *testing.T) {
	path, err := EventSocketPath(envMap(map[string]string{
		"HYPRLAND_INSTANCE_SIGNATURE": "sig",
	}))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/hypr/sig/.socket2.sock", path)
}
