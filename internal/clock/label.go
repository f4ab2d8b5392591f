package clock

import (
	"sync"
	"time"
)

// Label tracks what the clock label shows from one tick to the next.
// With the date intro enabled the first render is the weekday/date and every
// later render is the time.
type Label struct {
	mu        sync.Mutex
	style     Style
	dateIntro bool
	rendered  bool
}

// NewLabel creates a Label. dateIntro enables the one-shot date display.
func NewLabel(style Style, dateIntro bool) *Label {
	return &Label{style: style, dateIntro: dateIntro}
}

// Render returns the markup for now and advances the label state.
func (l *Label) Render(now time.Time) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	first := !l.rendered
	l.rendered = true

	if first && l.dateIntro {
		return FormatDate(now, l.style)
	}
	return FormatTime(now, l.style)
}

// SetStyle replaces the style used by subsequent renders.
func (l *Label) SetStyle(style Style) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.style = style
}
