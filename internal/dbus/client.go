package dbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

var (
	// ErrNotRunning is returned when no widget owns the bus name.
	ErrNotRunning = errors.New("hyprclock is not running")
	// ErrNameTaken is returned when another process already owns the bus name.
	ErrNameTaken = errors.New("bus name already taken")
)

const serviceUnknown = "org.freedesktop.DBus.Error.ServiceUnknown"

// Client calls the control interface of a running widget.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// NewClient connects to the session bus.
func NewClient() (*Client, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Client{
		conn: conn,
		obj:  conn.Object(DBusBusName, DBusPath),
	}, nil
}

func (c *Client) call(ctx context.Context, method string, out ...any) error {
	call := c.obj.CallWithContext(ctx, DBusInterface+"."+method, 0)
	if call.Err != nil {
		return wrapCallError(method, call.Err)
	}
	if len(out) == 0 {
		return nil
	}
	if err := call.Store(out...); err != nil {
		return fmt.Errorf("failed to decode %s reply: %w", method, err)
	}
	return nil
}

func wrapCallError(method string, err error) error {
	if isServiceUnknown(err) {
		return ErrNotRunning
	}
	return fmt.Errorf("%s failed: %w", method, err)
}

func isServiceUnknown(err error) bool {
	var ptr *dbus.Error
	if errors.As(err, &ptr) {
		return ptr.Name == serviceUnknown
	}
	var val dbus.Error
	if errors.As(err, &val) {
		return val.Name == serviceUnknown
	}
	return false
}

// Show asks the widget to show the clock.
func (c *Client) Show(ctx context.Context) error {
	return c.call(ctx, "Show")
}

// Hide asks the widget to hide the clock.
func (c *Client) Hide(ctx context.Context) error {
	return c.call(ctx, "Hide")
}

// Toggle flips the manual hide and returns the resulting visibility.
func (c *Client) Toggle(ctx context.Context) (bool, error) {
	var visible bool
	err := c.call(ctx, "Toggle", &visible)
	return visible, err
}

// Status returns the widget state.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var (
		st        Status
		startedAt int64
	)
	if err := c.call(ctx, "Status", &st.Visible, &st.Fullscreen, &st.UserHidden, &startedAt); err != nil {
		return Status{}, err
	}
	st.StartedAt = time.Unix(startedAt, 0)
	return st, nil
}
