package viewport

import (
	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/go-gl/mathgl/mgl64"
)

// MouseToViewport converts a pointer position into world coordinates: pixels to normalized
// device coordinates, camera adjustment into view-volume units, then the inverse of the
// persistent transform with a homogeneous divide. The dolly offset and any live gesture are
// not part of the persistent transform and are not inverted.
//
// A singular persistent transform is inverted as identity.
//
// Parameters:
//   - x, y: pointer position in pixels
//   - z: depth in view-volume units
//
// Returns:
//   - wx, wy, wz: world-space position
func (v *Viewport) MouseToViewport(x, y, z float64) (wx, wy, wz float64) {
	nx, ny := common.ScreenToNDC(x, y, v.width, v.height)
	ax, ay, az := v.camera.Adjust(nx, ny, z)

	inv, ok := common.Invert(v.transform.Matrix())
	if !ok {
		v.logger.Printf("[Viewport] persistent transform is singular, unprojecting with identity")
	}
	return homogeneous(inv.Mul4x1(mgl64.Vec4{ax, ay, az, 1}))
}

// ViewportToMouse is the forward mapping matching MouseToViewport: the persistent transform,
// the homogeneous divide, the inverse camera adjustment and the conversion to pixels.
//
// Parameters:
//   - wx, wy, wz: world-space position
//
// Returns:
//   - x, y: pointer position in pixels
//   - z: depth in view-volume units
func (v *Viewport) ViewportToMouse(wx, wy, wz float64) (x, y, z float64) {
	ex, ey, ez := homogeneous(v.transform.Matrix().Mul4x1(mgl64.Vec4{wx, wy, wz, 1}))
	nx, ny, nz := v.camera.Unadjust(ex, ey, ez)
	x, y = common.NDCToScreen(nx, ny, v.width, v.height)
	return x, y, nz
}

// homogeneous performs the divide by w. A zero w leaves the coordinates undivided.
func homogeneous(p mgl64.Vec4) (float64, float64, float64) {
	w := p[3]
	if w == 0 {
		return p[0], p[1], p[2]
	}
	return p[0] / w, p[1] / w, p[2] / w
}
