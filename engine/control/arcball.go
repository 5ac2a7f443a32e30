package control

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Arcball maps 2D drags onto rotations of an imaginary sphere centred in the viewport.
type Arcball struct {
	radius float64

	now   mgl64.Vec2
	from  mgl64.Vec3
	qDown mgl64.Quat
	qNow  mgl64.Quat

	dragging bool
}

var _ Controller = &Arcball{}

// NewArcball creates an arcball with a unit sphere and identity rotation.
//
// Parameters:
//   - options: functional options to configure the arcball
//
// Returns:
//   - *Arcball: the new arcball
func NewArcball(options ...ArcballOption) *Arcball {
	a := &Arcball{
		radius: 1.0,
		qDown:  mgl64.QuatIdent(),
		qNow:   mgl64.QuatIdent(),
	}
	for _, opt := range options {
		opt(a)
	}
	if a.radius <= 0 {
		a.radius = 1.0
	}
	return a
}

// Mouse sets the current pointer position in normalized device coordinates.
//
// Parameters:
//   - x, y: normalized pointer position
func (a *Arcball) Mouse(x, y float64) {
	a.now = mgl64.Vec2{x, y}
}

func (a *Arcball) Kind() Kind { return KindArcball }

func (a *Arcball) Feed(s Sample) { a.Mouse(s.X, s.Y) }

func (a *Arcball) Update() {
	if !a.dragging {
		return
	}
	to := a.toSphere(a.now)
	a.qNow = mgl64.QuatBetweenVectors(a.from, to).Mul(a.qDown).Normalize()
}

func (a *Arcball) BeginDrag() {
	a.dragging = true
	a.from = a.toSphere(a.now)
	a.qDown = a.qNow
}

func (a *Arcball) EndDrag() {
	a.dragging = false
	a.qDown = a.qNow
}

func (a *Arcball) Reset() {
	a.qDown = mgl64.QuatIdent()
	a.qNow = mgl64.QuatIdent()
}

func (a *Arcball) Dragging() bool { return a.dragging }

func (a *Arcball) Value() mgl64.Mat4 {
	return a.qNow.Mat4()
}

// QuatValue returns the current rotation.
//
// Returns:
//   - mgl64.Quat: the unit rotation quaternion
func (a *Arcball) QuatValue() mgl64.Quat {
	return a.qNow
}

// toSphere projects a 2D point onto the arcball sphere. Points outside the silhouette are
// pulled onto its rim.
func (a *Arcball) toSphere(p mgl64.Vec2) mgl64.Vec3 {
	x := p[0] / a.radius
	y := p[1] / a.radius
	mag := x*x + y*y
	if mag > 1.0 {
		s := 1.0 / math.Sqrt(mag)
		return mgl64.Vec3{x * s, y * s, 0}
	}
	return mgl64.Vec3{x, y, math.Sqrt(1.0 - mag)}
}
