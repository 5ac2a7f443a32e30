package control

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Zoom converts horizontal drags into a uniform scale factor. The factor is exponential in
// the drag distance, so it is always positive and equals 1 at the drag origin.
type Zoom struct {
	scale float64

	now    float64
	origin float64
	factor float64

	dragging bool
}

var _ Controller = &Zoom{}

// NewZoom creates a zoom controller with unit sensitivity.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - *Zoom: the new controller
func NewZoom(options ...ZoomOption) *Zoom {
	z := &Zoom{scale: 1.0, factor: 1.0}
	for _, opt := range options {
		opt(z)
	}
	return z
}

// Mouse sets the current 1-D pointer sample.
//
// Parameters:
//   - v: normalized pointer coordinate
func (z *Zoom) Mouse(v float64) {
	z.now = v
}

func (z *Zoom) Kind() Kind { return KindZoom }

func (z *Zoom) Feed(s Sample) { z.Mouse(s.X) }

func (z *Zoom) Update() {
	if !z.dragging {
		return
	}
	z.factor = math.Exp((z.now - z.origin) * z.scale)
}

func (z *Zoom) BeginDrag() {
	z.dragging = true
	z.origin = z.now
}

func (z *Zoom) EndDrag() { z.dragging = false }

func (z *Zoom) Reset() { z.factor = 1.0 }

func (z *Zoom) Dragging() bool { return z.dragging }

func (z *Zoom) Value() mgl64.Mat4 {
	return mgl64.Scale3D(z.factor, z.factor, z.factor)
}

// ZoomValue returns the current scale factor.
//
// Returns:
//   - float64: the scale factor (> 0)
func (z *Zoom) ZoomValue() float64 {
	return z.factor
}
