package viewport

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultFieldOfView is the vertical field of view of the perspective view, in degrees.
	DefaultFieldOfView = 60.0
	// DefaultNear is the near clipping distance applied on every view switch.
	DefaultNear = 1.0
	// DefaultFar is the far clipping distance applied on every view switch.
	DefaultFar = 1000.0
	// OrthographicVolume is the width and height of the orthographic view volume before
	// aspect correction.
	OrthographicVolume = 2.0
	// OrthographicEyeDistance is how far the orthographic eyes sit from the origin.
	OrthographicEyeDistance = 100.0
)

// DefaultPerspectiveEye is the eye position of the perspective view.
var DefaultPerspectiveEye = mgl64.Vec3{50, 50, 50}

type orthoPreset struct {
	eye mgl64.Vec3
	up  mgl64.Vec3
}

var orthoPresets = map[View]orthoPreset{
	ViewFront:  {eye: mgl64.Vec3{0, 0, OrthographicEyeDistance}, up: mgl64.Vec3{0, 1, 0}},
	ViewRight:  {eye: mgl64.Vec3{OrthographicEyeDistance, 0, 0}, up: mgl64.Vec3{0, 1, 0}},
	ViewTop:    {eye: mgl64.Vec3{0, OrthographicEyeDistance, 0}, up: mgl64.Vec3{0, 0, -1}},
	ViewBack:   {eye: mgl64.Vec3{0, 0, -OrthographicEyeDistance}, up: mgl64.Vec3{0, 1, 0}},
	ViewLeft:   {eye: mgl64.Vec3{-OrthographicEyeDistance, 0, 0}, up: mgl64.Vec3{0, 1, 0}},
	ViewBottom: {eye: mgl64.Vec3{0, -OrthographicEyeDistance, 0}, up: mgl64.Vec3{0, 0, 1}},
}

// SwitchTo changes the camera to one of the canonical views. Any gesture in progress is
// cancelled. Orthographic views reset the persistent transform to identity; the perspective
// view rebuilds it from the configured perspective eye.
//
// Parameters:
//   - view: the view to switch to
//
// Returns:
//   - error: ErrUnknownView for a view outside the canonical set
func (v *Viewport) SwitchTo(view View) error {
	if !view.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownView, int(view))
	}
	v.CancelGesture()

	v.view = view
	v.camera.SetCenter(0, 0, 0)
	v.camera.SetNearFar(v.settings.near, v.settings.far)

	if view == ViewPerspective {
		v.camera.MakePerspective()
		v.camera.SetPerspectiveViewVolume(v.settings.fov, v.aspect())
		v.camera.SetUpVector(0, 1, 0)
		if err := v.SetPerspView(v.settings.perspEye, v.settings.perspCenter, v.settings.perspUp); err != nil {
			return err
		}
	} else {
		v.camera.MakeOrthographic()
		v.camera.SetOrthographicViewVolume(OrthographicVolume, OrthographicVolume, true)
		v.camera.SetAspect(v.aspect())
		v.transform.Reset()

		p := orthoPresets[view]
		v.camera.SetEye(p.eye[0], p.eye[1], p.eye[2])
		v.camera.SetUpVector(p.up[0], p.up[1], p.up[2])
	}

	v.logger.Printf("[Viewport] switched to %s view", view)
	return nil
}

// SetPerspView places the eye for the perspective view. The direction from center to eye is
// absorbed into the persistent transform (an orientation followed by a translation moving
// center to the origin), and the camera is left looking down its local Z axis from the
// eye-to-center distance. Later arcball rotations then reorient the scene without touching
// the camera. Ignored outside the perspective view.
//
// Parameters:
//   - eye: eye position
//   - center: point to look at
//   - up: up direction
//
// Returns:
//   - error: ErrDegenerateEye if eye equals center or up is parallel to the view direction
func (v *Viewport) SetPerspView(eye, center, up mgl64.Vec3) error {
	if v.view != ViewPerspective {
		return nil
	}

	neweye := eye.Sub(center)
	eyedist := neweye.Len()
	if eyedist < 1e-9 || neweye.Cross(up).Len() < 1e-9*eyedist {
		return fmt.Errorf("%w: eye %v center %v up %v", ErrDegenerateEye, eye, center, up)
	}

	lmat := common.LookAtRotation(neweye, mgl64.Vec3{}, up)
	v.transform.Load(lmat)
	// Operations compose in eye space, so the world-space shift by -center is expressed
	// through the orientation to land after it: T(L*-c) * L == L * T(-c).
	v.transform.Translate(lmat.Mul4x1(center.Mul(-1).Vec4(0)).Vec3())
	v.camera.SetEye(0, 0, eyedist)
	return nil
}
