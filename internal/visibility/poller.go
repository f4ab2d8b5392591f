package visibility

import "weak"

// Poller drains fullscreen signals on the UI thread. Each Tick performs at
// most one non-blocking receive; queued signals wait for later ticks, so
// they are applied in emission order.
//
// The poller only holds a weak reference to the handle. Once the handle is
// gone, or detached from its window, ticks do nothing.
type Poller struct {
	signals <-chan bool
	handle  weak.Pointer[Handle]
}

// NewPoller creates a Poller that applies signals to h.
func NewPoller(signals <-chan bool, h *Handle) *Poller {
	return &Poller{
		signals: signals,
		handle:  weak.Make(h),
	}
}

// Tick receives at most one pending signal and applies it.
// It reports whether a signal was consumed.
func (p *Poller) Tick() bool {
	var fullscreen bool
	select {
	case v, ok := <-p.signals:
		if !ok {
			return false
		}
		fullscreen = v
	default:
		return false
	}

	h := p.handle.Value()
	if h == nil {
		return true
	}
	h.ApplyFullscreen(fullscreen)
	return true
}

// Alive reports whether the handle is still reachable.
func (p *Poller) Alive() bool {
	return p.handle.Value() != nil
}
