// Package input maps raw pointer and keyboard events onto viewport gestures and view
// selections. It has no platform dependencies; the window layer feeds it GLFW-numbered
// button, key and modifier codes.
package input

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/viewport"
)

// ErrUnknownButton is returned when a button chord cannot be parsed.
var ErrUnknownButton = errors.New("input: unknown button")

// Binding ties a pointer button held with a set of modifiers to a gesture.
type Binding struct {
	Button int
	Mods   int
	Mode   viewport.Mode
}

// Bindings is the table consulted by the Router.
type Bindings struct {
	buttons []Binding
	views   map[int]viewport.View
	reset   int
}

// NewBindings creates an empty binding table.
//
// Returns:
//   - *Bindings: table with no button or key bindings
func NewBindings() *Bindings {
	return &Bindings{views: make(map[int]viewport.View), reset: common.KeyR}
}

// DefaultBindings returns the standard table: left rotates, middle pans, right zooms and
// shift+right dollies. Number keys 0 to 6 select Perspective, Front, Right, Top, Back, Left
// and Bottom; R resets the current view.
//
// Returns:
//   - *Bindings: the default table
func DefaultBindings() *Bindings {
	b := NewBindings()
	b.Bind(common.MouseButtonLeft, 0, viewport.ModeRotate)
	b.Bind(common.MouseButtonMiddle, 0, viewport.ModePan)
	b.Bind(common.MouseButtonRight, 0, viewport.ModeZoom)
	b.Bind(common.MouseButtonRight, common.ModShift, viewport.ModeDolly)

	keys := []int{common.Key0, common.Key1, common.Key2, common.Key3, common.Key4, common.Key5, common.Key6}
	for i, k := range keys {
		b.BindView(k, viewport.View(i))
	}
	return b
}

// Bind maps button+mods to mode, replacing an existing binding for the same chord.
// Binding ModeNone removes the chord.
//
// Parameters:
//   - button: GLFW mouse button number
//   - mods: modifier bits that must be held
//   - mode: the gesture to start
func (b *Bindings) Bind(button, mods int, mode viewport.Mode) {
	for i, bd := range b.buttons {
		if bd.Button == button && bd.Mods == mods {
			if mode == viewport.ModeNone {
				b.buttons = append(b.buttons[:i], b.buttons[i+1:]...)
			} else {
				b.buttons[i].Mode = mode
			}
			return
		}
	}
	if mode != viewport.ModeNone {
		b.buttons = append(b.buttons, Binding{Button: button, Mods: mods, Mode: mode})
	}
}

// BindView maps a key to a canonical view.
//
// Parameters:
//   - key: GLFW key code
//   - view: the view to select
func (b *Bindings) BindView(key int, view viewport.View) {
	b.views[key] = view
}

// ModeFor returns the gesture for a button pressed with the given modifiers. Among the
// bindings whose modifiers are all held, the one requiring the most modifiers wins, so
// shift+right reaches dolly while plain right still zooms.
//
// Parameters:
//   - button: GLFW mouse button number
//   - mods: modifier bits currently held
//
// Returns:
//   - viewport.Mode: the bound gesture, ModeNone if nothing matches
func (b *Bindings) ModeFor(button, mods int) viewport.Mode {
	best, bestBits := viewport.ModeNone, -1
	for _, bd := range b.buttons {
		if bd.Button != button || bd.Mods&mods != bd.Mods {
			continue
		}
		if n := bits.OnesCount(uint(bd.Mods)); n > bestBits {
			best, bestBits = bd.Mode, n
		}
	}
	return best
}

// ViewFor returns the view bound to key.
//
// Parameters:
//   - key: GLFW key code
//
// Returns:
//   - viewport.View: the bound view
//   - bool: false if key selects no view
func (b *Bindings) ViewFor(key int) (viewport.View, bool) {
	v, ok := b.views[key]
	return v, ok
}

// Buttons returns a copy of the button bindings.
//
// Returns:
//   - []Binding: the button bindings in insertion order
func (b *Bindings) Buttons() []Binding {
	out := make([]Binding, len(b.buttons))
	copy(out, b.buttons)
	return out
}

// ParseChord parses a button chord such as "left", "middle" or "shift+right".
// Modifier names are shift, ctrl (or control) and alt.
//
// Parameters:
//   - s: the chord text, case-insensitive
//
// Returns:
//   - button: GLFW mouse button number
//   - mods: modifier bits
//   - error: ErrUnknownButton if the chord is malformed
func ParseChord(s string) (button, mods int, err error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	for _, p := range parts[:len(parts)-1] {
		switch strings.TrimSpace(p) {
		case "shift":
			mods |= common.ModShift
		case "ctrl", "control":
			mods |= common.ModControl
		case "alt":
			mods |= common.ModAlt
		default:
			return 0, 0, fmt.Errorf("%w: modifier %q in %q", ErrUnknownButton, p, s)
		}
	}
	switch strings.TrimSpace(parts[len(parts)-1]) {
	case "left":
		button = common.MouseButtonLeft
	case "right":
		button = common.MouseButtonRight
	case "middle":
		button = common.MouseButtonMiddle
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownButton, s)
	}
	return button, mods, nil
}

// FromMap builds a table from chord → mode-name pairs, starting from the defaults. Config
// files use this form for their bindings section.
//
// Parameters:
//   - m: chord to mode name, e.g. {"shift+left": "pan"}
//
// Returns:
//   - *Bindings: defaults overridden by m
//   - error: error if a chord or mode name is invalid
func FromMap(m map[string]string) (*Bindings, error) {
	b := DefaultBindings()
	for chord, name := range m {
		button, mods, err := ParseChord(chord)
		if err != nil {
			return nil, err
		}
		mode, err := viewport.ParseMode(name)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", chord, err)
		}
		b.Bind(button, mods, mode)
	}
	return b, nil
}
