package control

import "github.com/go-gl/mathgl/mgl64"

// DefaultDollyScale is the depth travelled per unit of normalized drag.
const DefaultDollyScale = 10.0

// Dolly converts horizontal drags into a depth offset along the view axis. Unlike the other
// controllers its value accumulates across drags: each drag continues from the offset left by
// the previous one.
type Dolly struct {
	scale float64

	now    float64
	origin float64
	base   float64
	offset float64

	dragging bool
}

var _ Controller = &Dolly{}

// NewDolly creates a dolly controller.
//
// Parameters:
//   - scale: depth per unit of normalized drag (non-positive selects DefaultDollyScale)
//   - options: functional options to configure the controller
//
// Returns:
//   - *Dolly: the new controller
func NewDolly(scale float64, options ...DollyOption) *Dolly {
	if scale <= 0 {
		scale = DefaultDollyScale
	}
	d := &Dolly{scale: scale}
	for _, opt := range options {
		opt(d)
	}
	return d
}

// Mouse sets the current 1-D pointer sample.
//
// Parameters:
//   - v: normalized pointer coordinate
func (d *Dolly) Mouse(v float64) {
	d.now = v
}

func (d *Dolly) Kind() Kind { return KindDolly }

func (d *Dolly) Feed(s Sample) { d.Mouse(s.X) }

func (d *Dolly) Update() {
	if !d.dragging {
		return
	}
	d.offset = d.base + (d.now-d.origin)*d.scale
}

func (d *Dolly) BeginDrag() {
	d.dragging = true
	d.origin = d.now
	d.base = d.offset
}

func (d *Dolly) EndDrag() { d.dragging = false }

func (d *Dolly) Reset() {
	d.base = 0
	d.offset = 0
}

func (d *Dolly) Dragging() bool { return d.dragging }

func (d *Dolly) Value() mgl64.Mat4 {
	return mgl64.Translate3D(0, 0, d.offset)
}

// DollyValue returns the current depth offset.
//
// Returns:
//   - float64: the offset along the view axis
func (d *Dolly) DollyValue() float64 {
	return d.offset
}

// Scale returns the depth travelled per unit of normalized drag.
//
// Returns:
//   - float64: the dolly scale
func (d *Dolly) Scale() float64 {
	return d.scale
}
