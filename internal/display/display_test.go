package display

import (
	"errors"
	"testing"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/hyprclock/internal/config"
)

func TestDisplayError(t *testing.T) {
	err := &DisplayError{Message: "no display available"}
	assert.Equal(t, "no display available", err.Error())
	assert.Nil(t, errors.Unwrap(err))

	cause := errors.New("connection refused")
	err = &DisplayError{Message: "failed to open display", Cause: cause}
	assert.Equal(t, "failed to open display: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	var target *DisplayError
	assert.True(t, errors.As(error(err), &target))
}

func TestLayerFor(t *testing.T) {
	assert.Equal(t, layershell.LayerShellLayerBackground, layerFor(config.LayerBackground))
	assert.Equal(t, layershell.LayerShellLayerBottom, layerFor(config.LayerBottom))
	assert.Equal(t, layershell.LayerShellLayerTop, layerFor(config.LayerTop))
	assert.Equal(t, layershell.LayerShellLayerOverlay, layerFor(config.LayerOverlay))
	assert.Equal(t, layershell.LayerShellLayerOverlay, layerFor(config.Layer("")))
}

func TestColorSchemeClass(t *testing.T) {
	assert.Equal(t, "light", colorSchemeClass(config.ColorSchemeLight, true))
	assert.Equal(t, "dark", colorSchemeClass(config.ColorSchemeDark, false))
	assert.Equal(t, "dark", colorSchemeClass(config.ColorSchemeSystem, true))
	assert.Equal(t, "light", colorSchemeClass(config.ColorSchemeSystem, false))
}

func TestAdwColorScheme(t *testing.T) {
	assert.Equal(t, adw.ColorSchemeForceLight, adwColorScheme(config.ColorSchemeLight))
	assert.Equal(t, adw.ColorSchemeForceDark, adwColorScheme(config.ColorSchemeDark))
	assert.Equal(t, adw.ColorSchemeDefault, adwColorScheme(config.ColorSchemeSystem))
}

func TestNamespace(t *testing.T) {
	assert.Equal(t, config.DefaultNamespace, namespace(config.WindowConfig{}))
	assert.Equal(t, "clock", namespace(config.WindowConfig{Namespace: "clock"}))
}
