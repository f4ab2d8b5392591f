// Package config handles configuration file loading and parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "100ms", "1s", or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '100ms', '1s' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Milliseconds returns the duration in milliseconds.
func (d Duration) Milliseconds() int {
	return int(time.Duration(d).Milliseconds())
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the configuration for hyprclock.
// Loaded from ~/.config/hyprclock/hyprclock.toml
type Config struct {
	Window        WindowConfig        `toml:"window"`
	Clock         ClockConfig         `toml:"clock"`
	Theme         ThemeConfig         `toml:"theme"`
	Fullscreen    FullscreenConfig    `toml:"fullscreen"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// WindowConfig contains window placement settings.
type WindowConfig struct {
	Position  string `toml:"position"`  // "top-right", "bottom-left", "center", etc.
	Layer     string `toml:"layer"`     // "background", "bottom", "top", "overlay"
	OffsetX   int    `toml:"offset_x"`  // Pixels from the horizontal edge
	OffsetY   int    `toml:"offset_y"`  // Pixels from the vertical edge
	Width     int    `toml:"width"`     // Default window width
	Height    int    `toml:"height"`    // Default window height
	Monitor   int    `toml:"monitor"`   // 0 = compositor choice, 1+ = specific monitor
	Namespace string `toml:"namespace"` // Layer-shell namespace for compositor rules
}

// ClockConfig contains label formatting settings.
type ClockConfig struct {
	Format          string `toml:"format"`             // "12h" or "24h"
	TimeColor       string `toml:"time_color"`         // Foreground of HH:MM
	SuffixColor     string `toml:"suffix_color"`       // Foreground of AM/PM
	ShowDateOnStart bool   `toml:"show_date_on_start"` // Show weekday/date until the first tick
}

// ThemeConfig contains theme settings.
type ThemeConfig struct {
	Name        string `toml:"name"`         // Theme name without .css extension
	ColorScheme string `toml:"color_scheme"` // "system", "light", or "dark"
}

// FullscreenConfig controls auto-hiding while a window is fullscreen.
type FullscreenConfig struct {
	AutoHide     bool     `toml:"auto_hide"`
	PollInterval Duration `toml:"poll_interval"`
}

// NotificationsConfig controls desktop notifications about reload failures.
type NotificationsConfig struct {
	Enabled bool `toml:"enabled"`
}

// ColorScheme represents the color scheme preference.
type ColorScheme string

const (
	ColorSchemeSystem ColorScheme = "system"
	ColorSchemeLight  ColorScheme = "light"
	ColorSchemeDark   ColorScheme = "dark"
)

// ValidColorSchemes returns all valid color scheme values.
func ValidColorSchemes() []ColorScheme {
	return []ColorScheme{ColorSchemeSystem, ColorSchemeLight, ColorSchemeDark}
}

// TimeFormat selects 12 or 24 hour rendering.
type TimeFormat string

const (
	TimeFormat12h TimeFormat = "12h"
	TimeFormat24h TimeFormat = "24h"
)

// Layer is the layer-shell layer the window is placed on.
type Layer string

const (
	LayerBackground Layer = "background"
	LayerBottom     Layer = "bottom"
	LayerTop        Layer = "top"
	LayerOverlay    Layer = "overlay"
)

// ValidLayers returns all valid layer values.
func ValidLayers() []Layer {
	return []Layer{LayerBackground, LayerBottom, LayerTop, LayerOverlay}
}

const (
	// DefaultTimeColor is the foreground of the HH:MM span.
	DefaultTimeColor = "#FFFFFF"
	// DefaultSuffixColor is the foreground of the AM/PM span.
	DefaultSuffixColor = "#FF0110"
	// DefaultNamespace is the layer-shell namespace.
	DefaultNamespace = "hyprclock"
)

var colorRegex = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})$`)

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Position:  string(PositionTopRight),
			Layer:     string(LayerOverlay),
			OffsetX:   20,
			OffsetY:   20,
			Width:     230,
			Height:    90,
			Monitor:   0,
			Namespace: DefaultNamespace,
		},
		Clock: ClockConfig{
			Format:          string(TimeFormat12h),
			TimeColor:       DefaultTimeColor,
			SuffixColor:     DefaultSuffixColor,
			ShowDateOnStart: false,
		},
		Theme: ThemeConfig{
			Name:        "default",
			ColorScheme: string(ColorSchemeSystem),
		},
		Fullscreen: FullscreenConfig{
			AutoHide:     true,
			PollInterval: Duration(100 * time.Millisecond),
		},
		Notifications: NotificationsConfig{
			Enabled: true,
		},
	}
}

// ConfigDir returns the hyprclock configuration directory.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "hyprclock"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hyprclock.toml"), nil
}

// LoadConfig loads the configuration from path, or from ConfigPath when path is empty.
// If the file doesn't exist, returns the default configuration.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to path, creating the directory if needed.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(ValidPositions(), Position(c.Window.Position)) {
		return fmt.Errorf("invalid position %q, must be one of: %v", c.Window.Position, ValidPositions())
	}
	if !slices.Contains(ValidLayers(), Layer(c.Window.Layer)) {
		return fmt.Errorf("invalid layer %q, must be one of: %v", c.Window.Layer, ValidLayers())
	}

	if c.Window.Width < 1 || c.Window.Width > 4000 {
		return fmt.Errorf("width must be between 1 and 4000, got %d", c.Window.Width)
	}
	if c.Window.Height < 1 || c.Window.Height > 4000 {
		return fmt.Errorf("height must be between 1 and 4000, got %d", c.Window.Height)
	}
	if c.Window.Monitor < 0 {
		return fmt.Errorf("monitor must be 0 or greater, got %d", c.Window.Monitor)
	}

	switch TimeFormat(c.Clock.Format) {
	case TimeFormat12h, TimeFormat24h:
	default:
		return fmt.Errorf("invalid clock format %q, must be %q or %q", c.Clock.Format, TimeFormat12h, TimeFormat24h)
	}
	if !colorRegex.MatchString(c.Clock.TimeColor) {
		return fmt.Errorf("invalid time_color %q, must be #RGB, #RRGGBB or #RRGGBBAA", c.Clock.TimeColor)
	}
	if !colorRegex.MatchString(c.Clock.SuffixColor) {
		return fmt.Errorf("invalid suffix_color %q, must be #RGB, #RRGGBB or #RRGGBBAA", c.Clock.SuffixColor)
	}

	if !slices.Contains(ValidColorSchemes(), ColorScheme(c.Theme.ColorScheme)) {
		return fmt.Errorf("invalid color_scheme %q, must be one of: %v", c.Theme.ColorScheme, ValidColorSchemes())
	}

	if c.Fullscreen.PollInterval.Duration() < 10*time.Millisecond {
		return fmt.Errorf("poll_interval must be at least 10ms, got %s", c.Fullscreen.PollInterval.Duration())
	}

	return nil
}
