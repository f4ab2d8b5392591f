package hypr

import (
	"context"
	"log/slog"
)

// FullscreenWatcher emits true/false on a channel whenever the compositor
// reports a window entering or leaving fullscreen.
//
// Failures are never surfaced: a socket that cannot be reached leaves the
// watcher inactive and a read error ends it. It does not reconnect.
type FullscreenWatcher struct {
	socketPath string
	logger     *slog.Logger
	signals    chan bool
}

// DefaultSignalBuffer is the capacity of the signal channel.
const DefaultSignalBuffer = 16

// NewFullscreenWatcher creates a watcher for the event socket at socketPath.
func NewFullscreenWatcher(socketPath string, logger *slog.Logger) *FullscreenWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &FullscreenWatcher{
		socketPath: socketPath,
		logger:     logger,
		signals:    make(chan bool, DefaultSignalBuffer),
	}
}

// Signals returns the receive side of the signal channel.
func (w *FullscreenWatcher) Signals() <-chan bool {
	return w.signals
}

// Start runs the watcher on a detached goroutine.
func (w *FullscreenWatcher) Start(ctx context.Context) {
	go w.Run(ctx)
}

// Run connects, subscribes and forwards fullscreen transitions until the
// socket closes or ctx is cancelled. It blocks.
func (w *FullscreenWatcher) Run(ctx context.Context) {
	conn, err := Dial(w.socketPath)
	if err != nil {
		w.logger.Debug("fullscreen watcher inactive", "path", w.socketPath, "error", err)
		return
	}

	// Closing the socket is the only way to unblock a pending read.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer func() {
		if stop() {
			_ = conn.Close()
		}
	}()

	if err := conn.Subscribe(); err != nil {
		w.logger.Debug("fullscreen watcher stopped", "error", err)
		return
	}

	w.logger.Debug("fullscreen watcher started", "path", w.socketPath)

	err = conn.ReadLines(ctx, func(line string) error {
		fullscreen, ok := ParseFullscreen(line)
		if !ok {
			return nil
		}

		w.logger.Debug("fullscreen transition", "fullscreen", fullscreen)
		select {
		case w.signals <- fullscreen:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if err != nil && ctx.Err() == nil {
		w.logger.Debug("fullscreen watcher stopped", "error", err)
		return
	}

	w.logger.Debug("fullscreen watcher finished")
}
