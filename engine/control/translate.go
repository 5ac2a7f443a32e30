package control

import "github.com/go-gl/mathgl/mgl64"

// Translate converts pointer drags into a translation vector.
type Translate struct {
	scale float64

	now    mgl64.Vec3
	origin mgl64.Vec3
	trans  mgl64.Vec3

	dragging bool
}

var _ Controller = &Translate{}

// NewTranslate creates a translation controller with unit scale.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - *Translate: the new controller
func NewTranslate(options ...TranslateOption) *Translate {
	t := &Translate{scale: 1.0}
	for _, opt := range options {
		opt(t)
	}
	return t
}

// Mouse sets the current pointer position. x and y are usually already adjusted into
// view-volume units so the point under the cursor tracks the cursor.
//
// Parameters:
//   - x, y, z: pointer position
func (t *Translate) Mouse(x, y, z float64) {
	t.now = mgl64.Vec3{x, y, z}
}

func (t *Translate) Kind() Kind { return KindTranslate }

func (t *Translate) Feed(s Sample) { t.Mouse(s.X, s.Y, s.Z) }

func (t *Translate) Update() {
	if !t.dragging {
		return
	}
	t.trans = t.now.Sub(t.origin).Mul(t.scale)
}

func (t *Translate) BeginDrag() {
	t.dragging = true
	t.origin = t.now
}

func (t *Translate) EndDrag() { t.dragging = false }

func (t *Translate) Reset() { t.trans = mgl64.Vec3{} }

func (t *Translate) Dragging() bool { return t.dragging }

func (t *Translate) Value() mgl64.Mat4 {
	return mgl64.Translate3D(t.trans[0], t.trans[1], t.trans[2])
}

// TransValue returns the current translation.
//
// Returns:
//   - mgl64.Vec3: the translation vector
func (t *Translate) TransValue() mgl64.Vec3 {
	return t.trans
}
