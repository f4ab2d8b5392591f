package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/hyprclock/internal/config"
	"github.com/jmylchreest/hyprclock/internal/daemon"
	"github.com/jmylchreest/hyprclock/internal/dbus"
	"github.com/jmylchreest/hyprclock/internal/display"
	"github.com/jmylchreest/hyprclock/internal/hypr"
	"github.com/jmylchreest/hyprclock/internal/session"
	"github.com/jmylchreest/hyprclock/internal/theme"
	"github.com/jmylchreest/hyprclock/internal/visibility"
)

const appID = "io.github.jmylchreest.hyprclock"

// runWidget starts the clock window and runs the GTK main loop until the
// window closes or a termination signal arrives.
func runWidget(cmd *cobra.Command, args []string) error {
	logger.Info("starting hyprclock", "version", version)

	configPath, err := resolveConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	wayland := session.IsWayland(os.Getenv)
	autoHide := wayland && cfg.Fullscreen.AutoHide

	if cfg.Fullscreen.AutoHide && !wayland {
		logger.Info("fullscreen auto-hide disabled", "reason", session.ErrNotWayland)
	}

	var socketPath string
	if autoHide {
		socketPath, err = session.EventSocketPath(os.Getenv)
		if err != nil {
			return fmt.Errorf("cannot watch fullscreen state: %w", err)
		}
	}

	logger.Debug("session detected", "wayland", wayland, "auto_hide", autoHide, "socket", socketPath)

	app := adw.NewApplication(appID, 0)

	var (
		displayManager   *display.Manager
		themeLoader      *theme.Loader
		controlServer    *dbus.ControlServer
		configWatcher    *daemon.ConfigWatcher
		internalNotifier *daemon.InternalNotifier
		running          atomic.Bool
		startErr         error
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var signals <-chan bool
	if autoHide {
		watcher := hypr.NewFullscreenWatcher(socketPath, logger)
		watcher.Start(ctx)
		signals = watcher.Signals()
	}

	stopAll := func() {
		if themeLoader != nil {
			themeLoader.StopHotReload()
		}
		if configWatcher != nil {
			configWatcher.Stop()
		}
		if controlServer != nil {
			_ = controlServer.Stop()
		}
		if displayManager != nil {
			displayManager.Stop()
		}
	}

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
		case <-ctx.Done():
			return
		}
		cancel()

		// Stop components in GTK main loop context
		glib.IdleAdd(func() {
			if running.Load() {
				stopAll()
			}
			app.Quit()
		})
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		internalNotifier = daemon.NewInternalNotifier(logger)
		internalNotifier.SetEnabled(cfg.Notifications.Enabled)
		if notifier, err := dbus.NewDesktopNotifier(); err != nil {
			logger.Debug("desktop notifications unavailable", "error", err)
		} else {
			internalNotifier.SetSender(notifier.Send)
		}

		themeLoader = theme.NewLoader(logger)
		if err := themeLoader.LoadTheme(cfg.Theme.Name); err != nil {
			logger.Warn("failed to load theme, using default", "error", err)
			internalNotifier.NotifyThemeError(err)
		}
		themeLoader.Apply(nil)
		themeLoader.StartHotReload(ctx)

		displayManager = display.NewManager(&app.Application, cfg, logger)
		if err := displayManager.Start(wayland, signals); err != nil {
			logger.Error("failed to start display manager", "error", err)
			startErr = err
			app.Quit()
			return
		}
		handle := displayManager.Handle()

		controlServer = dbus.NewControlServer(handleController{handle}, logger)
		controlServer.SetDispatcher(func(fn func()) { glib.IdleAdd(fn) })
		if err := controlServer.Start(); err != nil {
			if errors.Is(err, dbus.ErrNameTaken) {
				logger.Warn("another instance owns the control interface, running without it", "name", dbus.DBusBusName)
			} else {
				logger.Warn("failed to start D-Bus control server", "error", err)
			}
			controlServer = nil
		} else {
			handle.SetChangeCallback(func(visible bool) {
				if err := controlServer.EmitVisibilityChanged(visible); err != nil {
					logger.Debug("failed to emit visibility signal", "error", err)
				}
			})
		}

		configWatcher = daemon.NewConfigWatcher(configPath, logger)
		configWatcher.SetReloadCallback(func(newConfig *config.Config) {
			glib.IdleAdd(func() {
				displayManager.UpdateConfig(newConfig)
				internalNotifier.SetEnabled(newConfig.Notifications.Enabled)

				if newConfig.Theme.Name != cfg.Theme.Name {
					if err := themeLoader.LoadTheme(newConfig.Theme.Name); err != nil {
						logger.Warn("failed to load new theme", "theme", newConfig.Theme.Name, "error", err)
						internalNotifier.NotifyThemeError(err)
					}
					themeLoader.StartHotReload(ctx)
				}

				cfg = newConfig
			})
		})
		configWatcher.SetErrorCallback(func(err error) {
			internalNotifier.NotifyConfigError(err)
		})
		if err := configWatcher.Start(ctx, cfg); err != nil {
			logger.Warn("failed to start config watcher", "error", err)
			configWatcher = nil
		}

		logger.Info("hyprclock ready", "wayland", wayland, "auto_hide", autoHide)
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		cancel()
		stopAll()
		running.Store(false)
	})

	// cobra owns the command line; GTK only gets the program name.
	status := app.Run(os.Args[:1])
	cancel()
	if internalNotifier != nil {
		internalNotifier.Wait()
	}

	if startErr != nil {
		return startErr
	}
	if status != 0 {
		return fmt.Errorf("application exited with status %d", status)
	}

	logger.Info("hyprclock stopped")
	return nil
}

// handleController exposes a visibility handle as a D-Bus controller.
type handleController struct {
	handle *visibility.Handle
}

func (c handleController) Show() { c.handle.SetUserHidden(false) }

func (c handleController) Hide() { c.handle.SetUserHidden(true) }

func (c handleController) Toggle() bool { return c.handle.Toggle() }

func (c handleController) Status() dbus.Status {
	st := c.handle.State()
	return dbus.Status{
		Visible:    st.Visible,
		Fullscreen: st.Fullscreen,
		UserHidden: st.UserHidden,
		StartedAt:  st.StartedAt,
	}
}
