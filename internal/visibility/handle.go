// Package visibility decides whether the clock window should be shown and
// applies fullscreen signals to it from the UI thread.
package visibility

import (
	"sync"
	"time"
)

// Target is the window being shown or hidden.
type Target interface {
	SetVisible(visible bool)
}

// State is a snapshot of the visibility inputs.
type State struct {
	Visible    bool
	Fullscreen bool
	UserHidden bool
	StartedAt  time.Time
}

// ChangeFunc is called after the effective visibility changes.
type ChangeFunc func(visible bool)

// Handle combines the fullscreen signal with the user's show/hide choice and
// applies the result to a Target. The window is visible only when no window
// is fullscreen and the user has not hidden it.
//
// Apply methods must be called from the UI thread; State may be called from anywhere.
type Handle struct {
	mu         sync.Mutex
	target     Target
	fullscreen bool
	userHidden bool
	visible    bool
	startedAt  time.Time
	onChange   ChangeFunc
}

// NewHandle creates a Handle for target, which starts visible.
func NewHandle(target Target) *Handle {
	return &Handle{
		target:    target,
		visible:   true,
		startedAt: time.Now(),
	}
}

// SetChangeCallback sets the callback invoked when visibility changes.
func (h *Handle) SetChangeCallback(cb ChangeFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = cb
}

// Detach drops the target. Later updates only change state.
func (h *Handle) Detach() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.target = nil
}

// Attached reports whether the handle still has a target.
func (h *Handle) Attached() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.target != nil
}

// ApplyFullscreen records a fullscreen transition.
func (h *Handle) ApplyFullscreen(fullscreen bool) {
	h.update(func() { h.fullscreen = fullscreen })
}

// SetUserHidden records an explicit show (false) or hide (true).
func (h *Handle) SetUserHidden(hidden bool) {
	h.update(func() { h.userHidden = hidden })
}

// Toggle flips the user's show/hide choice and returns the new visibility.
func (h *Handle) Toggle() bool {
	h.update(func() {
		// Toggling while hidden by fullscreen only clears a manual hide.
		h.userHidden = !h.userHidden && h.visible
	})
	return h.State().Visible
}

// State returns a snapshot of the current state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return State{
		Visible:    h.visible,
		Fullscreen: h.fullscreen,
		UserHidden: h.userHidden,
		StartedAt:  h.startedAt,
	}
}

func (h *Handle) update(mutate func()) {
	h.mu.Lock()
	mutate()
	visible := !h.fullscreen && !h.userHidden
	changed := visible != h.visible
	h.visible = visible
	target := h.target
	onChange := h.onChange
	h.mu.Unlock()

	if target != nil {
		target.SetVisible(visible)
	}
	if changed && onChange != nil {
		onChange(visible)
	}
}
