package control

import "github.com/go-gl/mathgl/mgl64"

// ArcballOption is a functional option for configuring an Arcball.
type ArcballOption func(*Arcball)

// WithRadius sets the arcball sphere radius in normalized device units.
//
// Parameters:
//   - radius: sphere radius (non-positive selects 1)
//
// Returns:
//   - ArcballOption: functional option to set the radius
func WithRadius(radius float64) ArcballOption {
	return func(a *Arcball) {
		a.radius = radius
	}
}

// WithOrientation starts the arcball from q instead of identity.
//
// Parameters:
//   - q: initial rotation
//
// Returns:
//   - ArcballOption: functional option to set the orientation
func WithOrientation(q mgl64.Quat) ArcballOption {
	return func(a *Arcball) {
		a.qDown = q.Normalize()
		a.qNow = a.qDown
	}
}

// TranslateOption is a functional option for configuring a Translate controller.
type TranslateOption func(*Translate)

// WithTranslateScale sets the multiplier applied to drag distance.
//
// Parameters:
//   - scale: drag multiplier
//
// Returns:
//   - TranslateOption: functional option to set the scale
func WithTranslateScale(scale float64) TranslateOption {
	return func(t *Translate) {
		t.scale = scale
	}
}

// ZoomOption is a functional option for configuring a Zoom controller.
type ZoomOption func(*Zoom)

// WithZoomScale sets the zoom sensitivity: dragging by d yields factor exp(d * scale).
//
// Parameters:
//   - scale: zoom sensitivity
//
// Returns:
//   - ZoomOption: functional option to set the sensitivity
func WithZoomScale(scale float64) ZoomOption {
	return func(z *Zoom) {
		z.scale = scale
	}
}

// DollyOption is a functional option for configuring a Dolly controller.
type DollyOption func(*Dolly)

// WithOffset starts the dolly at a non-zero depth offset.
//
// Parameters:
//   - offset: initial depth offset
//
// Returns:
//   - DollyOption: functional option to set the offset
func WithOffset(offset float64) DollyOption {
	return func(d *Dolly) {
		d.offset = offset
		d.base = offset
	}
}
