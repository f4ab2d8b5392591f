package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/hyprclock/internal/dbus"
)

const controlTimeout = 5 * time.Second

var statusOpts struct {
	json bool
}

// WaybarStatus represents the Waybar custom module JSON format.
type WaybarStatus struct {
	Text    string `json:"text"`
	Alt     string `json:"alt,omitempty"`
	Tooltip string `json:"tooltip,omitempty"`
	Class   string `json:"class,omitempty"`
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the clock of a running widget",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *dbus.Client) error {
			return c.Show(ctx)
		})
	},
}

var hideCmd = &cobra.Command{
	Use:   "hide",
	Short: "Hide the clock until shown again",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *dbus.Client) error {
			return c.Hide(ctx)
		})
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle the clock between shown and hidden",
	Long: `Toggle the clock between shown and hidden.

While a window is fullscreen the clock stays hidden; toggling then only
clears an earlier hide so the clock returns when fullscreen ends.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *dbus.Client) error {
			visible, err := c.Toggle(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), visibilityWord(visible))
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of a running widget",
	Long: `Show whether the clock is visible, whether a window is fullscreen
and how long the widget has been running.

With --json the output is in Waybar's custom module format:

  "custom/hyprclock": {
    "exec": "hyprclock status --json",
    "interval": 5,
    "return-type": "json",
    "on-click": "hyprclock toggle"
  }`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *dbus.Client) error {
			st, err := c.Status(ctx)
			if err != nil {
				if statusOpts.json && errors.Is(err, dbus.ErrNotRunning) {
					return outputStatus(cmd.OutOrStdout(), WaybarStatus{Alt: "stopped", Class: "stopped", Tooltip: "hyprclock is not running"})
				}
				return err
			}
			if statusOpts.json {
				return outputStatus(cmd.OutOrStdout(), generateWaybarStatus(st))
			}
			printStatus(cmd.OutOrStdout(), st)
			return nil
		})
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusOpts.json, "json", false,
		"Output Waybar-compatible JSON")

	rootCmd.AddCommand(showCmd, hideCmd, toggleCmd, statusCmd)
}

func withClient(fn func(ctx context.Context, c *dbus.Client) error) error {
	client, err := dbus.NewClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), controlTimeout)
	defer cancel()
	return fn(ctx, client)
}

func visibilityWord(visible bool) string {
	if visible {
		return "visible"
	}
	return "hidden"
}

// statusClass names why the clock is or isn't on screen.
func statusClass(st dbus.Status) string {
	switch {
	case st.Visible:
		return "visible"
	case st.UserHidden:
		return "hidden"
	default:
		return "fullscreen"
	}
}

func printStatus(w io.Writer, st dbus.Status) {
	styles := newOutputStyles(w)
	fmt.Fprintln(w, styles.label.Render("visible")+styles.bool(st.Visible))
	fmt.Fprintln(w, styles.label.Render("fullscreen")+styles.bool(st.Fullscreen))
	fmt.Fprintln(w, styles.label.Render("user hidden")+styles.bool(st.UserHidden))
	fmt.Fprintln(w, styles.label.Render("started")+humanize.Time(st.StartedAt))
}

func generateWaybarStatus(st dbus.Status) WaybarStatus {
	class := statusClass(st)
	return WaybarStatus{
		Text:    "",
		Alt:     class,
		Class:   class,
		Tooltip: fmt.Sprintf("Clock %s\nStarted %s", visibilityWord(st.Visible), humanize.Time(st.StartedAt)),
	}
}

// outputStatus writes the status as JSON.
func outputStatus(w io.Writer, status WaybarStatus) error {
	return json.NewEncoder(w).Encode(status)
}
