package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/hyprclock/internal/config"
	"github.com/jmylchreest/hyprclock/internal/dbus"
	"github.com/jmylchreest/hyprclock/internal/theme"
)

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "visible", statusClass(dbus.Status{Visible: true}))
	assert.Equal(t, "hidden", statusClass(dbus.Status{UserHidden: true}))
	assert.Equal(t, "hidden", statusClass(dbus.Status{UserHidden: true, Fullscreen: true}))
	assert.Equal(t, "fullscreen", statusClass(dbus.Status{Fullscreen: true}))
}

func TestGenerateWaybarStatus(t *testing.T) {
	st := dbus.Status{Fullscreen: true, StartedAt: time.Now().Add(-3 * time.Minute)}

	var buf bytes.Buffer
	require.NoError(t, outputStatus(&buf, generateWaybarStatus(st)))

	var decoded WaybarStatus
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "fullscreen", decoded.Class)
	assert.Equal(t, "fullscreen", decoded.Alt)
	assert.Contains(t, decoded.Tooltip, "Clock hidden")
	assert.Contains(t, decoded.Tooltip, "3 minutes ago")
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	printStatus(&buf, dbus.Status{Visible: true, StartedAt: time.Now().Add(-2 * time.Hour)})

	out := buf.String()
	assert.Regexp(t, `visible\s+yes`, out)
	assert.Regexp(t, `fullscreen\s+no`, out)
	assert.Contains(t, out, "2 hours ago")
}

func TestPrintThemes(t *testing.T) {
	var buf bytes.Buffer
	printThemes(&buf, []theme.ThemeInfo{
		{Name: "default", IsDefault: true, IsBundled: true},
		{Name: "minimal", IsBundled: true, Overrides: true, Path: "/home/u/.config/hyprclock/themes/minimal.css"},
		{Name: "neon", Path: "/home/u/.config/hyprclock/themes/neon.css"},
	})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "default, bundled")
	assert.Contains(t, string(lines[1]), "overridden by /home/u/.config/hyprclock/themes/minimal.css")
	assert.Contains(t, string(lines[2]), "neon.css")
}

func TestConfigInitAndPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hyprclock.toml")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "init", "--config", path})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, path+"\n", out.String())

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	// A second init without --force refuses to overwrite.
	require.NoError(t, os.WriteFile(path, []byte("[clock]\nformat = \"24h\"\n"), 0644))
	rootCmd.SetArgs([]string{"config", "init", "--config", path})
	assert.Error(t, rootCmd.Execute())

	out.Reset()
	rootCmd.SetArgs([]string{"config", "path", "--config", path})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, path+"\n", out.String())
}
