package camera

import (
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer"
	"github.com/go-gl/mathgl/mgl64"
)

// Projection selects the shape of the camera's view volume.
type Projection int

const (
	// ProjectionPerspective is a symmetric perspective frustum.
	ProjectionPerspective Projection = iota
	// ProjectionOrthographic is a box-shaped parallel projection.
	ProjectionOrthographic
)

// String returns the lower-case name of the projection.
func (p Projection) String() string {
	switch p {
	case ProjectionPerspective:
		return "perspective"
	case ProjectionOrthographic:
		return "orthographic"
	default:
		return fmt.Sprintf("Projection(%d)", int(p))
	}
}

type cameraImpl struct {
	mu *sync.Mutex

	eye    mgl64.Vec3
	center mgl64.Vec3
	up     mgl64.Vec3

	near float64
	far  float64

	projection Projection
	fov        float64 // vertical, degrees
	aspect     float64

	orthoWidth  float64
	orthoHeight float64
	keepAspect  bool
}

// Camera defines the interface for the camera system.
// The camera owns the eye/center/up bookkeeping and the view volume, and converts between
// normalized device coordinates and view-volume units for the viewport.
type Camera interface {
	// Eye returns the eye position.
	//
	// Returns:
	//   - mgl64.Vec3: eye position
	Eye() mgl64.Vec3

	// Center returns the look-at point.
	//
	// Returns:
	//   - mgl64.Vec3: center position
	Center() mgl64.Vec3

	// Up returns the up vector.
	//
	// Returns:
	//   - mgl64.Vec3: up vector
	Up() mgl64.Vec3

	// NearFar returns the clipping plane distances.
	//
	// Returns:
	//   - near, far: clipping distances
	NearFar() (near, far float64)

	// Projection returns the current projection kind.
	//
	// Returns:
	//   - Projection: perspective or orthographic
	Projection() Projection

	// Fov returns the vertical field of view in degrees.
	//
	// Returns:
	//   - float64: field of view in degrees
	Fov() float64

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float64: the aspect ratio
	Aspect() float64

	// OrthographicViewVolume returns the orthographic view volume settings.
	//
	// Returns:
	//   - width, height: volume size before aspect correction
	//   - keepAspect: whether the volume is widened to match the aspect ratio
	OrthographicViewVolume() (width, height float64, keepAspect bool)

	// SetEye sets the eye position.
	//
	// Parameters:
	//   - x, y, z: eye position
	SetEye(x, y, z float64)

	// SetCenter sets the look-at point.
	//
	// Parameters:
	//   - x, y, z: center position
	SetCenter(x, y, z float64)

	// SetUpVector sets the up vector.
	//
	// Parameters:
	//   - x, y, z: up vector
	SetUpVector(x, y, z float64)

	// SetNearFar sets the clipping plane distances.
	//
	// Parameters:
	//   - near, far: clipping distances
	SetNearFar(near, far float64)

	// MakePerspective switches to a perspective projection.
	MakePerspective()

	// MakeOrthographic switches to an orthographic projection.
	MakeOrthographic()

	// SetPerspectiveViewVolume sets the perspective frustum.
	//
	// Parameters:
	//   - fov: vertical field of view in degrees
	//   - aspect: aspect ratio (width / height)
	SetPerspectiveViewVolume(fov, aspect float64)

	// SetOrthographicViewVolume sets the orthographic view volume.
	//
	// Parameters:
	//   - width, height: volume size
	//   - keepAspect: widen the volume to match the aspect ratio
	SetOrthographicViewVolume(width, height float64, keepAspect bool)

	// SetAspect sets the aspect ratio (width / height).
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float64)

	// Adjust converts normalized device x and y into view-volume units at the center plane,
	// so that a pointer moved by one pixel moves a point on that plane by one pixel.
	// z is returned unchanged.
	//
	// Parameters:
	//   - x, y, z: normalized coordinates and depth
	//
	// Returns:
	//   - ax, ay, az: adjusted coordinates
	Adjust(x, y, z float64) (ax, ay, az float64)

	// Unadjust is the inverse of Adjust.
	//
	// Parameters:
	//   - x, y, z: view-volume coordinates
	//
	// Returns:
	//   - nx, ny, nz: normalized coordinates and depth
	Unadjust(x, y, z float64) (nx, ny, nz float64)

	// ViewMatrix returns the look-at matrix from eye to center.
	//
	// Returns:
	//   - mgl64.Mat4: the view matrix
	ViewMatrix() mgl64.Mat4

	// ProjectionMatrix returns the projection matrix for the current view volume.
	//
	// Returns:
	//   - mgl64.Mat4: the projection matrix
	ProjectionMatrix() mgl64.Mat4

	// ApplyTransform loads the projection matrix into the renderer.
	//
	// Parameters:
	//   - r: the renderer to push the projection to
	ApplyTransform(r renderer.Renderer)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a perspective camera at (0, 0, 1) looking at the origin.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:          &sync.Mutex{},
		eye:         mgl64.Vec3{0, 0, 1},
		up:          mgl64.Vec3{0, 1, 0},
		near:        1,
		far:         1000,
		projection:  ProjectionPerspective,
		fov:         60,
		aspect:      1,
		orthoWidth:  2,
		orthoHeight: 2,
		keepAspect:  true,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) Eye() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eye
}

func (c *cameraImpl) Center() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.center
}

func (c *cameraImpl) Up() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) NearFar() (near, far float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near, c.far
}

func (c *cameraImpl) Projection() Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *cameraImpl) Fov() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) OrthographicViewVolume() (width, height float64, keepAspect bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orthoWidth, c.orthoHeight, c.keepAspect
}

func (c *cameraImpl) SetEye(x, y, z float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eye = mgl64.Vec3{x, y, z}
}

func (c *cameraImpl) SetCenter(x, y, z float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.center = mgl64.Vec3{x, y, z}
}

func (c *cameraImpl) SetUpVector(x, y, z float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = mgl64.Vec3{x, y, z}
}

func (c *cameraImpl) SetNearFar(near, far float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.far = far
}

func (c *cameraImpl) MakePerspective() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projection = ProjectionPerspective
}

func (c *cameraImpl) MakeOrthographic() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projection = ProjectionOrthographic
}

func (c *cameraImpl) SetPerspectiveViewVolume(fov, aspect float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.aspect = aspect
}

func (c *cameraImpl) SetOrthographicViewVolume(width, height float64, keepAspect bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orthoWidth = width
	c.orthoHeight = height
	c.keepAspect = keepAspect
}

func (c *cameraImpl) SetAspect(aspect float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
}

func (c *cameraImpl) Adjust(x, y, z float64) (ax, ay, az float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hw, hh := c.halfExtents()
	return x * hw, y * hh, z
}

func (c *cameraImpl) Unadjust(x, y, z float64) (nx, ny, nz float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hw, hh := c.halfExtents()
	return x / hw, y / hh, z
}

func (c *cameraImpl) ViewMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return mgl64.LookAtV(c.eye, c.center, c.up)
}

func (c *cameraImpl) ProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.projection == ProjectionOrthographic {
		hw, hh := c.orthoHalfExtents()
		return mgl64.Ortho(-hw, hw, -hh, hh, c.near, c.far)
	}
	return mgl64.Perspective(mgl64.DegToRad(c.fov), c.aspect, c.near, c.far)
}

func (c *cameraImpl) ApplyTransform(r renderer.Renderer) {
	r.LoadProjection(c.ProjectionMatrix())
}

// halfExtents returns the half width and height of the view volume at the center plane.
// Caller must hold the mutex.
func (c *cameraImpl) halfExtents() (hw, hh float64) {
	if c.projection == ProjectionOrthographic {
		return c.orthoHalfExtents()
	}
	d := c.eye.Sub(c.center).Len()
	if d == 0 {
		d = 1
	}
	hh = d * math.Tan(mgl64.DegToRad(c.fov)/2)
	return hh * c.aspect, hh
}

// orthoHalfExtents returns the orthographic half extents after aspect correction.
// Caller must hold the mutex.
func (c *cameraImpl) orthoHalfExtents() (hw, hh float64) {
	hw, hh = c.orthoWidth/2, c.orthoHeight/2
	if c.keepAspect && c.aspect > 0 {
		if c.aspect >= 1 {
			hw *= c.aspect
		} else {
			hh /= c.aspect
		}
	}
	return hw, hh
}
