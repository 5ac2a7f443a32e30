package viewport

import (
	"github.com/Carmen-Shannon/oxy-viewport/engine/control"
	"github.com/go-gl/mathgl/mgl64"
)

// ApplyTransform composes the frame into the renderer. Starting from the camera's view
// matrix it multiplies, in order: the dolly offset (always, it outlives its gesture), the
// live value of the active gesture, and the persistent transform. The camera then loads the
// projection.
func (v *Viewport) ApplyTransform() {
	r := v.renderer
	r.LoadModelView(v.camera.ViewMatrix())
	r.TranslateModelView(0, 0, v.dollycontrol.DollyValue())
	if c := v.live(); c != nil {
		r.MultModelView(c.Value())
	}
	v.transform.Apply(r)
	v.camera.ApplyTransform(r)
}

// Render composes the frame and flushes it to the renderer's backend.
//
// Returns:
//   - error: error from the renderer backend
func (v *Viewport) Render() error {
	v.ApplyTransform()
	return v.renderer.Flush()
}

// Composed returns the model matrix ApplyTransform multiplies onto the camera view:
// dolly * live gesture * persistent transform.
//
// Returns:
//   - mgl64.Mat4: the composed model matrix
func (v *Viewport) Composed() mgl64.Mat4 {
	m := v.dollycontrol.Value()
	if c := v.live(); c != nil {
		m = m.Mul4(c.Value())
	}
	return m.Mul4(v.transform.Matrix())
}

// live returns the controller of the active gesture whose value is previewed on top of the
// persistent transform. Dolly is excluded since its offset is applied separately.
func (v *Viewport) live() control.Controller {
	switch v.mode {
	case ModePan:
		return v.trcontrol
	case ModeZoom:
		return v.zoomcontrol
	case ModeRotate:
		return v.arcball
	default:
		return nil
	}
}
