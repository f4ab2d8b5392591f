package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/hyprclock/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Long: `List bundled themes and user themes from ~/.config/hyprclock/themes.

A user theme named like a bundled one replaces it. Files starting with an
underscore are partials for @import and are not listed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := theme.ThemesDir()
		if err != nil {
			return fmt.Errorf("failed to get themes directory: %w", err)
		}

		themes, err := theme.ListAvailableThemes(dir)
		if err != nil {
			return fmt.Errorf("failed to list themes: %w", err)
		}

		printThemes(cmd.OutOrStdout(), themes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func printThemes(w io.Writer, themes []theme.ThemeInfo) {
	styles := newOutputStyles(w)
	for _, t := range themes {
		var tags []string
		if t.IsDefault {
			tags = append(tags, "default")
		}
		switch {
		case t.Overrides:
			tags = append(tags, "overridden by "+t.Path)
		case t.IsBundled:
			tags = append(tags, "bundled")
		default:
			tags = append(tags, t.Path)
		}

		fmt.Fprintln(w, styles.name.Render(t.Name)+styles.dim.Render(strings.Join(tags, ", ")))
	}
}
