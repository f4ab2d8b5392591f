package theme

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetEmbeddedTheme_Default(t *testing.T) {
	css, found := GetEmbeddedTheme("default")
	require.True(t, found, "default theme should be found")
	assert.Contains(t, css, "#clock_label")
	assert.Contains(t, css, "font-size: 42px")
	assert.Contains(t, css, "padding: 10px")
}

func TestGetEmbeddedTheme_NotFound(t *testing.T) {
	css, found := GetEmbeddedTheme("nonexistent")
	assert.False(t, found)
	assert.Empty(t, css)

	_, found = GetEmbeddedTheme("_palette")
	assert.False(t, found, "partials are not themes")
}

func TestGetEmbeddedPartial(t *testing.T) {
	for _, name := range []string{"_palette.css", "_palette", "palette"} {
		css, found := GetEmbeddedPartial(name)
		require.True(t, found, name)
		assert.Contains(t, css, "@define-color clock_fg")
	}

	_, found := GetEmbeddedPartial("_nonexistent.css")
	assert.False(t, found)
}

func TestListEmbeddedThemes(t *testing.T) {
	themes := ListEmbeddedThemes()

	assert.ElementsMatch(t, BundledThemes, themes)
	for _, name := range themes {
		assert.False(t, strings.HasPrefix(name, "_"), "partial listed as theme: %s", name)
	}
}

func TestIsEmbeddedTheme(t *testing.T) {
	assert.True(t, IsEmbeddedTheme("default"))
	assert.True(t, IsEmbeddedTheme("minimal"))
	assert.True(t, IsEmbeddedTheme("transparent"))
	assert.False(t, IsEmbeddedTheme("catppuccin"))
	assert.False(t, IsEmbeddedTheme(""))
}

func TestBundledThemes_StyleClockLabel(t *testing.T) {
	for _, name := range BundledThemes {
		t.Run(name, func(t *testing.T) {
			css, found := GetEmbeddedTheme(name)
			require.True(t, found)

			assert.Contains(t, css, "#clock_label")
			assert.Contains(t, css, "window.hyprclock")
			assert.Equal(t, strings.Count(css, "{"), strings.Count(css, "}"),
				"theme %s should have balanced braces", name)
		})
	}
}
