package hypr

import "strings"

const (
	// SubscribeCommand is written once after connecting.
	SubscribeCommand = "subscribewindow\n"

	// FullscreenEnterMarker appears in event lines when a window enters fullscreen.
	FullscreenEnterMarker = "fullscreen>>1"
	// FullscreenExitMarker appears in event lines when a window leaves fullscreen.
	FullscreenExitMarker = "fullscreen>>0"
)

// Event is a single line from the event socket split at the first ">>".
type Event struct {
	Name    string
	Payload string
}

// ParseEvent splits a raw line into name and payload.
// Lines without a separator yield the whole line as the name.
func ParseEvent(line string) Event {
	name, payload, _ := strings.Cut(line, ">>")
	return Event{Name: name, Payload: payload}
}

// ParseFullscreen reports whether line is a fullscreen transition and,
// if so, whether fullscreen was entered.
func ParseFullscreen(line string) (fullscreen bool, ok bool) {
	switch {
	case strings.Contains(line, FullscreenEnterMarker):
		return true, true
	case strings.Contains(line, FullscreenExitMarker):
		return false, true
	default:
		return false, false
	}
}
