package input

import (
	"log"
	"math"

	"github.com/Carmen-Shannon/oxy-viewport/engine/viewport"
)

// noButton marks that no pointer button owns the active gesture.
const noButton = -1

// DefaultWheelStep is the pixel distance a single scroll notch is turned into for the
// zoom gesture synthesized from wheel input.
const DefaultWheelStep = 40.0

// Router turns raw window events into viewport gesture calls. Only the button that started a
// gesture can finish it; other presses while it is held are dropped.
//
// A Router must be driven from the viewport's goroutine.
type Router struct {
	vp       *viewport.Viewport
	bindings *Bindings
	logger   *log.Logger

	active    int
	x, y      float64
	wheelStep float64
}

// RouterOption is a functional option for configuring a Router.
type RouterOption func(*Router)

// WithBindings replaces the default binding table.
//
// Parameters:
//   - b: the binding table
//
// Returns:
//   - RouterOption: option function to apply
func WithBindings(b *Bindings) RouterOption {
	return func(r *Router) {
		r.bindings = b
	}
}

// WithLogger sets the logger used to report rejected view switches.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - RouterOption: option function to apply
func WithLogger(l *log.Logger) RouterOption {
	return func(r *Router) {
		r.logger = l
	}
}

// WithWheelStep sets the pixel distance of a single scroll notch. Zero disables wheel zoom.
//
// Parameters:
//   - step: pixels per notch
//
// Returns:
//   - RouterOption: option function to apply
func WithWheelStep(step float64) RouterOption {
	return func(r *Router) {
		r.wheelStep = step
	}
}

// NewRouter creates a router driving vp.
//
// Parameters:
//   - vp: the viewport to drive
//   - options: functional options to configure the router
//
// Returns:
//   - *Router: the new router
func NewRouter(vp *viewport.Viewport, options ...RouterOption) *Router {
	r := &Router{
		vp:        vp,
		active:    noButton,
		wheelStep: DefaultWheelStep,
	}
	for _, opt := range options {
		opt(r)
	}
	if r.bindings == nil {
		r.bindings = DefaultBindings()
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	return r
}

// MouseButton handles a button press or release at the last cursor position.
//
// Parameters:
//   - button: GLFW mouse button number
//   - mods: modifier bits held
//   - pressed: true for press, false for release
func (r *Router) MouseButton(button, mods int, pressed bool) {
	x, y := r.pixel()
	if !pressed {
		if button == r.active {
			r.vp.SendToCurrent(viewport.EventRelease, x, y)
			r.active = noButton
		}
		return
	}
	if r.active != noButton {
		return
	}
	mode := r.bindings.ModeFor(button, mods)
	if mode == viewport.ModeNone {
		return
	}
	if r.vp.Handle(mode, viewport.EventPush, x, y) {
		r.active = button
	}
}

// CursorMoved records the pointer position and drags the active gesture.
//
// Parameters:
//   - x, y: cursor position in pixels
func (r *Router) CursorMoved(x, y float64) {
	r.x, r.y = x, y
	if r.active == noButton {
		return
	}
	px, py := r.pixel()
	r.vp.SendToCurrent(viewport.EventDrag, px, py)
}

// Key handles a key press. Bound number keys switch views and the reset key restores the
// current view preset and clears the dolly offset.
//
// Parameters:
//   - key: GLFW key code
//
// Returns:
//   - bool: true if the key was consumed
func (r *Router) Key(key int) bool {
	if view, ok := r.bindings.ViewFor(key); ok {
		r.active = noButton
		if err := r.vp.SwitchTo(view); err != nil {
			r.logger.Printf("[Input] switch to %s failed: %v", view, err)
		}
		return true
	}
	if key == r.bindings.reset {
		r.active = noButton
		if err := r.vp.ResetView(); err != nil {
			r.logger.Printf("[Input] reset view failed: %v", err)
		}
		r.vp.ResetDolly()
		return true
	}
	return false
}

// Scroll turns a wheel notch into a complete zoom gesture centred on the cursor. Ignored
// while a button gesture is active.
//
// Parameters:
//   - delta: scroll offset, positive away from the user
func (r *Router) Scroll(delta float64) {
	if r.active != noButton || r.wheelStep == 0 || delta == 0 {
		return
	}
	x, y := r.pixel()
	dx := int(math.Round(delta * r.wheelStep))
	if !r.vp.HandleZoom(viewport.EventPush, x, y) {
		return
	}
	r.vp.HandleZoom(viewport.EventDrag, x+dx, y)
	r.vp.HandleZoom(viewport.EventRelease, x+dx, y)
}

// Active reports whether a button currently owns a gesture.
//
// Returns:
//   - bool: true while a bound button is held
func (r *Router) Active() bool {
	return r.active != noButton
}

func (r *Router) pixel() (int, int) {
	return int(math.Round(r.x)), int(math.Round(r.y))
}
