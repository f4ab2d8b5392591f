package dbus

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsBusName = "org.freedesktop.Notifications"
	notificationsPath    = "/org/freedesktop/Notifications"
)

// Notification is a desktop notification sent through org.freedesktop.Notifications.
type Notification struct {
	AppName       string
	AppIcon       string
	Summary       string
	Body          string
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // Milliseconds, -1 for the server default
}

// DesktopNotifier sends notifications to whichever notification daemon owns
// org.freedesktop.Notifications.
type DesktopNotifier struct {
	obj dbus.BusObject
}

// NewDesktopNotifier connects to the session bus.
func NewDesktopNotifier() (*DesktopNotifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &DesktopNotifier{obj: conn.Object(notificationsBusName, notificationsPath)}, nil
}

// Send delivers n and returns the id assigned by the notification daemon.
func (d *DesktopNotifier) Send(ctx context.Context, n *Notification) (uint32, error) {
	hints := n.Hints
	if hints == nil {
		hints = map[string]dbus.Variant{}
	}

	var id uint32
	err := d.obj.CallWithContext(ctx, notificationsBusName+".Notify", 0,
		n.AppName,
		uint32(0),
		n.AppIcon,
		n.Summary,
		n.Body,
		[]string{},
		hints,
		n.ExpireTimeout,
	).Store(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to send notification: %w", err)
	}
	return id, nil
}
