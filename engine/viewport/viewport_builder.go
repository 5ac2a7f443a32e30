package viewport

import (
	"log"

	"github.com/Carmen-Shannon/oxy-viewport/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer"
	"github.com/go-gl/mathgl/mgl64"
)

// ViewportBuilderOption is a functional option for configuring a Viewport.
type ViewportBuilderOption func(*Viewport)

// WithCamera attaches a caller-owned camera instead of a default one.
//
// Parameters:
//   - c: the camera to use
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithCamera(c camera.Camera) ViewportBuilderOption {
	return func(v *Viewport) {
		v.camera = c
	}
}

// WithRenderer sets the renderer frames are composed into.
//
// Parameters:
//   - r: the renderer to use
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) ViewportBuilderOption {
	return func(v *Viewport) {
		v.renderer = r
	}
}

// WithLogger sets the logger used for view switches and degenerate input.
//
// Parameters:
//   - l: the logger to use
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithLogger(l *log.Logger) ViewportBuilderOption {
	return func(v *Viewport) {
		v.logger = l
	}
}

// WithView sets the view selected at construction.
//
// Parameters:
//   - view: the initial view
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithView(view View) ViewportBuilderOption {
	return func(v *Viewport) {
		v.settings.initialView = view
	}
}

// WithFieldOfView sets the vertical field of view of the perspective view.
//
// Parameters:
//   - degrees: field of view in degrees
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithFieldOfView(degrees float64) ViewportBuilderOption {
	return func(v *Viewport) {
		v.settings.fov = degrees
	}
}

// WithNearFar sets the clipping distances applied on every view switch.
//
// Parameters:
//   - near, far: clipping distances
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithNearFar(near, far float64) ViewportBuilderOption {
	return func(v *Viewport) {
		v.settings.near = near
		v.settings.far = far
	}
}

// WithDollyScale sets the depth travelled per unit of normalized drag.
//
// Parameters:
//   - scale: dolly scale
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithDollyScale(scale float64) ViewportBuilderOption {
	return func(v *Viewport) {
		v.settings.dollyScale = scale
	}
}

// WithPanScale sets the multiplier applied to pan drags.
//
// Parameters:
//   - scale: pan multiplier
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithPanScale(scale float64) ViewportBuilderOption {
	return func(v *Viewport) {
		v.settings.panScale = scale
	}
}

// WithZoomScale sets the zoom sensitivity.
//
// Parameters:
//   - scale: zoom sensitivity
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithZoomScale(scale float64) ViewportBuilderOption {
	return func(v *Viewport) {
		v.settings.zoomScale = scale
	}
}

// WithHistoryLimit sets how many committed operations the transform log retains.
//
// Parameters:
//   - limit: log length
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithHistoryLimit(limit int) ViewportBuilderOption {
	return func(v *Viewport) {
		v.settings.historyLimit = limit
	}
}

// WithPerspectiveEye sets the eye, center and up vector used by the perspective view.
//
// Parameters:
//   - eye: eye position
//   - center: point to look at
//   - up: up direction
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithPerspectiveEye(eye, center, up mgl64.Vec3) ViewportBuilderOption {
	return func(v *Viewport) {
		v.settings.perspEye = eye
		v.settings.perspCenter = center
		v.settings.perspUp = up
	}
}
