package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// inverseTolerance is the largest element error of m * inv(m) against identity accepted
// as a valid inverse.
const inverseTolerance = 1e-9

// ScreenToNDC converts a pointer position in pixels (origin top-left, Y down) into
// normalized device coordinates in [-1, 1] x [-1, 1] (origin center, Y up).
//
// Parameters:
//   - px, py: pointer position in pixels
//   - width, height: viewport size in pixels (must be > 0)
//
// Returns:
//   - x, y: normalized device coordinates
func ScreenToNDC(px, py float64, width, height int) (x, y float64) {
	x = 2.0*px/float64(width) - 1.0
	y = -2.0*py/float64(height) + 1.0
	return x, y
}

// NDCToScreen is the inverse of ScreenToNDC.
//
// Parameters:
//   - x, y: normalized device coordinates
//   - width, height: viewport size in pixels
//
// Returns:
//   - px, py: pointer position in pixels
func NDCToScreen(x, y float64, width, height int) (px, py float64) {
	px = (x + 1.0) * float64(width) / 2.0
	py = (1.0 - y) * float64(height) / 2.0
	return px, py
}

// Invert returns the inverse of m. A singular matrix yields the identity and false
// so callers always receive a usable matrix. Singularity is judged by whether the computed
// inverse is finite and actually inverts m, so uniformly scaled matrices with tiny
// determinants still invert.
//
// Parameters:
//   - m: the matrix to invert
//
// Returns:
//   - mgl64.Mat4: the inverse, or identity when m is singular
//   - bool: false if m was singular
func Invert(m mgl64.Mat4) (mgl64.Mat4, bool) {
	det := m.Det()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return mgl64.Ident4(), false
	}
	inv := m.Inv()
	for _, v := range inv {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return mgl64.Ident4(), false
		}
	}
	if MaxAbsDiff(m.Mul4(inv), mgl64.Ident4()) > inverseTolerance {
		return mgl64.Ident4(), false
	}
	return inv, true
}

// LookAtRotation builds the orientation part of a look-at matrix: the rotation that turns
// the direction from eye to center into -Z with up mapped onto +Y. The translation column
// is left at zero so distance can be handled separately.
//
// Parameters:
//   - eye: viewer position
//   - center: point being looked at
//   - up: approximate up direction
//
// Returns:
//   - mgl64.Mat4: the rotation-only look-at matrix
func LookAtRotation(eye, center, up mgl64.Vec3) mgl64.Mat4 {
	m := mgl64.LookAtV(eye, center, up)
	m[12], m[13], m[14] = 0, 0, 0
	return m
}

// ColumnMajor32 converts a matrix into 16 float32 values in column-major order,
// the layout expected by GPU uniform buffers.
//
// Parameters:
//   - m: the matrix to convert
//
// Returns:
//   - [16]float32: column-major single precision copy
func ColumnMajor32(m mgl64.Mat4) [16]float32 {
	var out [16]float32
	for i := range 16 {
		out[i] = float32(m[i])
	}
	return out
}

// MaxAbsDiff returns the largest absolute element-wise difference between two matrices.
//
// Parameters:
//   - a, b: matrices to compare
//
// Returns:
//   - float64: max |a[i] - b[i]|
func MaxAbsDiff(a, b mgl64.Mat4) float64 {
	var d float64
	for i := range 16 {
		if v := math.Abs(a[i] - b[i]); v > d {
			d = v
		}
	}
	return d
}
