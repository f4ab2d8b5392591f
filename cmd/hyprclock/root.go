package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/hyprclock/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

var (
	globalOpts struct {
		verbose    bool
		configPath string
	}
	logger *slog.Logger
)

// rootCmd runs the widget when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hyprclock",
	Short: "Desktop clock widget for Hyprland",
	Long: `hyprclock shows a small always-on-top clock on Wayland compositors
that support layer-shell, and hides it while a window is fullscreen on Hyprland.

Running hyprclock without a subcommand starts the widget. The show, hide,
toggle and status subcommands control a running widget over D-Bus.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger(slog.LevelInfo)
	},
	RunE: runWidget,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/hyprclock/hyprclock.toml)")
}

// setupLogger configures the global slog logger.
func setupLogger(level slog.Level) {
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// resolveConfigPath returns the --config path or the default location.
func resolveConfigPath() (string, error) {
	if globalOpts.configPath != "" {
		return globalOpts.configPath, nil
	}
	return config.ConfigPath()
}
