package viewport

import (
	"fmt"
	"strings"
)

// Mode is the interaction currently driving the viewport.
type Mode int

const (
	// ModeNone means no gesture is in progress.
	ModeNone Mode = iota
	// ModePan translates the scene.
	ModePan
	// ModeRotate rotates the scene with the arcball.
	ModeRotate
	// ModeZoom scales the scene uniformly.
	ModeZoom
	// ModeDolly moves the scene along the view axis.
	ModeDolly
)

// String returns the lower-case name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModePan:
		return "pan"
	case ModeRotate:
		return "rotate"
	case ModeZoom:
		return "zoom"
	case ModeDolly:
		return "dolly"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name (as returned by Mode.String) into a Mode.
//
// Parameters:
//   - s: the mode name, case-insensitive
//
// Returns:
//   - Mode: the parsed mode
//   - error: ErrUnknownMode if s names no mode
func ParseMode(s string) (Mode, error) {
	for m := ModeNone; m <= ModeDolly; m++ {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return ModeNone, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Event is the kind of a pointer event.
type Event int

const (
	// EventUnknown is any pointer event that is neither a press nor a release. It is
	// handled like EventDrag.
	EventUnknown Event = iota
	// EventPush is a button press.
	EventPush
	// EventRelease is a button release.
	EventRelease
	// EventDrag is pointer motion with a button held.
	EventDrag
)

// String returns the lower-case name of the event.
func (e Event) String() string {
	switch e {
	case EventUnknown:
		return "unknown"
	case EventPush:
		return "push"
	case EventRelease:
		return "release"
	case EventDrag:
		return "drag"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// ParseEvent converts an event name into an Event.
//
// Parameters:
//   - s: the event name, case-insensitive
//
// Returns:
//   - Event: the parsed event
//   - error: ErrUnknownEvent if s names no event
func ParseEvent(s string) (Event, error) {
	for e := EventUnknown; e <= EventDrag; e++ {
		if strings.EqualFold(s, e.String()) {
			return e, nil
		}
	}
	return EventUnknown, fmt.Errorf("%w: %q", ErrUnknownEvent, s)
}

// View is one of the canonical camera presets. The orthographic names describe where the
// eye is: Front looks from the front, Right from the right, and so on.
type View int

const (
	ViewPerspective View = iota
	ViewFront
	ViewRight
	ViewTop
	ViewBack
	ViewLeft
	ViewBottom
)

var viewNames = [...]string{"perspective", "front", "right", "top", "back", "left", "bottom"}

// String returns the lower-case name of the view.
func (v View) String() string {
	if v.Valid() {
		return viewNames[v]
	}
	return fmt.Sprintf("View(%d)", int(v))
}

// Valid reports whether v is one of the seven canonical views.
func (v View) Valid() bool {
	return v >= ViewPerspective && v <= ViewBottom
}

// Orthographic reports whether v uses an orthographic projection.
func (v View) Orthographic() bool {
	return v.Valid() && v != ViewPerspective
}

// ParseView converts a view name into a View.
//
// Parameters:
//   - s: the view name, case-insensitive ("persp" is accepted for perspective)
//
// Returns:
//   - View: the parsed view
//   - error: ErrUnknownView if s names no view
func ParseView(s string) (View, error) {
	if strings.EqualFold(s, "persp") {
		return ViewPerspective, nil
	}
	for i, name := range viewNames {
		if strings.EqualFold(s, name) {
			return View(i), nil
		}
	}
	return ViewPerspective, fmt.Errorf("%w: %q", ErrUnknownView, s)
}
