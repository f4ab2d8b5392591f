package dbus

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	// DBusInterface is the control interface name.
	DBusInterface = "io.github.jmylchreest.HyprClock"
	// DBusPath is the control object path.
	DBusPath = "/io/github/jmylchreest/HyprClock"
	// DBusBusName is the bus name to claim.
	DBusBusName = "io.github.jmylchreest.HyprClock"

	// DispatchTimeout bounds how long a method call waits for the UI thread.
	DispatchTimeout = 5 * time.Second
)

// Status is the widget state reported by the Status method.
type Status struct {
	Visible    bool
	Fullscreen bool
	UserHidden bool
	StartedAt  time.Time
}

// Controller is the widget being controlled.
type Controller interface {
	Show()
	Hide()
	Toggle() bool
	Status() Status
}

// Dispatcher runs fn on the thread that owns the controller.
type Dispatcher func(fn func())

// ControlServer exports the control interface.
type ControlServer struct {
	conn       *dbus.Conn
	logger     *slog.Logger
	controller Controller
	dispatch   Dispatcher
	timeout    time.Duration

	mu      sync.RWMutex
	running bool
}

// NewControlServer creates a ControlServer for controller. Calls run inline
// until a Dispatcher is set.
func NewControlServer(controller Controller, logger *slog.Logger) *ControlServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ControlServer{
		logger:     logger,
		controller: controller,
		dispatch:   func(fn func()) { fn() },
		timeout:    DispatchTimeout,
	}
}

// SetDispatcher sets how controller calls are scheduled.
func (s *ControlServer) SetDispatcher(d Dispatcher) {
	s.dispatch = d
}

// Start connects to the session bus and exports the control interface.
func (s *ControlServer) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.mu.Unlock()

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.conn = conn

	if err := conn.Export(s, DBusPath, DBusInterface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: DBusPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    DBusInterface,
				Methods: controlMethods(),
				Signals: controlSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), DBusPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(DBusBusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		s.unexport()
		return fmt.Errorf("%w: %s", ErrNameTaken, DBusBusName)
	}

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	s.logger.Info("D-Bus control server started", "interface", DBusInterface, "path", DBusPath)
	return nil
}

func (s *ControlServer) unexport() {
	_ = s.conn.Export(nil, DBusPath, DBusInterface)
	_ = s.conn.Export(nil, DBusPath, "org.freedesktop.DBus.Introspectable")
}

// Stop releases the bus name.
func (s *ControlServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(DBusBusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
		s.unexport()
		// Don't close the connection as it's shared (SessionBus)
	}

	s.logger.Info("D-Bus control server stopped")
	return nil
}

// Call states shared between a waiting method and its dispatched closure.
const (
	callPending = iota
	callStarted
	callAbandoned
)

// call dispatches fn and returns its result. A call still queued when the
// timeout expires is abandoned and never runs. One that already started is
// waited for so the caller never reports failure for an applied change.
func call[T any](s *ControlServer, method string, fn func() T) (T, *dbus.Error) {
	var (
		mu    sync.Mutex
		state = callPending
	)
	result := make(chan T, 1)

	s.dispatch(func() {
		mu.Lock()
		if state == callAbandoned {
			mu.Unlock()
			s.logger.Debug("dropping control call after timeout", "method", method)
			return
		}
		state = callStarted
		mu.Unlock()

		result <- fn()
	})

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case v := <-result:
		return v, nil
	case <-timer.C:
	}

	mu.Lock()
	if state == callStarted {
		mu.Unlock()
		return <-result, nil
	}
	state = callAbandoned
	mu.Unlock()

	s.logger.Warn("control call timed out", "method", method)
	var zero T
	return zero, dbus.MakeFailedError(fmt.Errorf("%s timed out waiting for the UI", method))
}

// Show clears a manual hide.
// D-Bus method: Show() -> nothing
func (s *ControlServer) Show() *dbus.Error {
	s.logger.Debug("Show called")
	_, err := call(s, "Show", func() struct{} {
		s.controller.Show()
		return struct{}{}
	})
	return err
}

// Hide hides the clock until Show or Toggle is called.
// D-Bus method: Hide() -> nothing
func (s *ControlServer) Hide() *dbus.Error {
	s.logger.Debug("Hide called")
	_, err := call(s, "Hide", func() struct{} {
		s.controller.Hide()
		return struct{}{}
	})
	return err
}

// Toggle flips the manual hide and returns the resulting visibility.
// D-Bus method: Toggle() -> b
func (s *ControlServer) Toggle() (bool, *dbus.Error) {
	s.logger.Debug("Toggle called")
	return call(s, "Toggle", s.controller.Toggle)
}

// Status reports the widget state. started_at is Unix seconds.
// D-Bus method: Status() -> (bbbx)
func (s *ControlServer) Status() (bool, bool, bool, int64, *dbus.Error) {
	s.logger.Debug("Status called")
	st, err := call(s, "Status", s.controller.Status)
	if err != nil {
		return false, false, false, 0, err
	}
	return st.Visible, st.Fullscreen, st.UserHidden, st.StartedAt.Unix(), nil
}

// EmitVisibilityChanged emits the VisibilityChanged signal.
func (s *ControlServer) EmitVisibilityChanged(visible bool) error {
	if s.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	if err := s.conn.Emit(DBusPath, DBusInterface+".VisibilityChanged", visible); err != nil {
		return fmt.Errorf("failed to emit VisibilityChanged signal: %w", err)
	}

	s.logger.Debug("emitted VisibilityChanged signal", "visible", visible)
	return nil
}

// controlMethods returns the D-Bus method introspection data.
func controlMethods() []introspect.Method {
	return []introspect.Method{
		{Name: "Show"},
		{Name: "Hide"},
		{
			Name: "Toggle",
			Args: []introspect.Arg{
				{Name: "visible", Type: "b", Direction: "out"},
			},
		},
		{
			Name: "Status",
			Args: []introspect.Arg{
				{Name: "visible", Type: "b", Direction: "out"},
				{Name: "fullscreen", Type: "b", Direction: "out"},
				{Name: "user_hidden", Type: "b", Direction: "out"},
				{Name: "started_at", Type: "x", Direction: "out"},
			},
		},
	}
}

// controlSignals returns the D-Bus signal introspection data.
func controlSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "VisibilityChanged",
			Args: []introspect.Arg{
				{Name: "visible", Type: "b"},
			},
		},
	}
}
