package daemon

import (
	"context"
	"log/slog"
	"sync"
	"time"

	godbus "github.com/godbus/dbus/v5"

	"github.com/jmylchreest/hyprclock/internal/dbus"
)

// NotificationLevel indicates the urgency/severity of an internal notification.
type NotificationLevel int

const (
	// NotificationLevelInfo is for informational messages (low urgency).
	NotificationLevelInfo NotificationLevel = iota
	// NotificationLevelWarning is for warning messages (normal urgency).
	NotificationLevelWarning
	// NotificationLevelError is for error messages (critical urgency).
	NotificationLevelError
)

// DefaultMinInterval is how long the same notification is suppressed after
// being sent.
const DefaultMinInterval = 5 * time.Second

// SendTimeout bounds a single delivery to the notification daemon.
const SendTimeout = 2 * time.Second

// SendFunc delivers a notification.
type SendFunc func(ctx context.Context, n *dbus.Notification) (uint32, error)

// InternalNotifier raises desktop notifications about the widget's own
// events, rate-limited per key.
type InternalNotifier struct {
	mu     sync.Mutex
	logger *slog.Logger
	send   SendFunc

	lastNotifyTime map[string]time.Time
	minInterval    time.Duration
	enabled        bool
	now            func() time.Time

	inflight sync.WaitGroup
}

// NewInternalNotifier creates a new InternalNotifier.
func NewInternalNotifier(logger *slog.Logger) *InternalNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &InternalNotifier{
		logger:         logger,
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    DefaultMinInterval,
		enabled:        true,
		now:            time.Now,
	}
}

// SetSender sets the function notifications are delivered through.
func (n *InternalNotifier) SetSender(send SendFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.send = send
}

// SetEnabled enables or disables internal notifications.
func (n *InternalNotifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// SetMinInterval sets the minimum interval between duplicate notifications.
func (n *InternalNotifier) SetMinInterval(interval time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.minInterval = interval
}

// Notify sends an internal notification if not rate-limited.
// Notifications with the same key are not repeated within the minimum interval.
// Delivery happens on its own goroutine so callers on the UI thread never wait
// on the notification daemon.
func (n *InternalNotifier) Notify(key, summary, body string, level NotificationLevel) {
	n.mu.Lock()
	if !n.enabled {
		n.mu.Unlock()
		return
	}
	if n.send == nil {
		n.mu.Unlock()
		n.logger.Debug("internal notification skipped: no sender", "summary", summary)
		return
	}

	now := n.now()
	if last, ok := n.lastNotifyTime[key]; ok && now.Sub(last) < n.minInterval {
		n.mu.Unlock()
		n.logger.Debug("internal notification rate-limited", "key", key, "summary", summary)
		return
	}
	n.lastNotifyTime[key] = now
	send := n.send
	n.mu.Unlock()

	notification := buildNotification(summary, body, level)

	n.logger.Debug("sending internal notification", "key", key, "summary", summary, "level", level)

	n.inflight.Add(1)
	go func() {
		defer n.inflight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), SendTimeout)
		defer cancel()
		if _, err := send(ctx, notification); err != nil {
			n.logger.Debug("failed to send internal notification", "key", key, "error", err)
		}
	}()
}

// Wait blocks until notifications already handed to the sender finish.
func (n *InternalNotifier) Wait() {
	n.inflight.Wait()
}

func buildNotification(summary, body string, level NotificationLevel) *dbus.Notification {
	urgency := byte(1)
	icon := "dialog-warning"
	switch level {
	case NotificationLevelInfo:
		urgency = 0
		icon = "dialog-information"
	case NotificationLevelError:
		urgency = 2
		icon = "dialog-error"
	}

	return &dbus.Notification{
		AppName: "hyprclock",
		AppIcon: icon,
		Summary: summary,
		Body:    body,
		Hints: map[string]godbus.Variant{
			"urgency":   godbus.MakeVariant(urgency),
			"transient": godbus.MakeVariant(true),
		},
		ExpireTimeout: 5000,
	}
}

// NotifyConfigError reports a config file that failed to reload.
func (n *InternalNotifier) NotifyConfigError(err error) {
	n.Notify(
		"config-error",
		"hyprclock: configuration error",
		"Keeping the previous configuration. "+err.Error(),
		NotificationLevelWarning,
	)
}

// NotifyThemeError reports a theme that failed to load.
func (n *InternalNotifier) NotifyThemeError(err error) {
	n.Notify(
		"theme-error",
		"hyprclock: theme error",
		"Failed to load theme: "+err.Error(),
		NotificationLevelWarning,
	)
}
