// Package viewport implements the interaction state machine of a 3D view: pointer gestures
// rotate, pan, zoom and dolly the scene, completed gestures are committed into a persistent
// transformation, and each frame the live gesture preview and the committed history are
// composed for the renderer.
//
// A Viewport is single-threaded. Every method must be called from the goroutine that owns
// the viewport (normally the UI/render thread). Resize in particular must not run while a
// pointer event is being handled.
package viewport

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewport/engine/control"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewport/engine/transform"
	"github.com/go-gl/mathgl/mgl64"
)

// Viewport is the interaction controller for one view of a scene.
type Viewport struct {
	width, height int

	arcball      *control.Arcball
	trcontrol    *control.Translate
	zoomcontrol  *control.Zoom
	dollycontrol *control.Dolly

	transform *transform.Transformation

	mode Mode
	view View

	camera   camera.Camera
	renderer renderer.Renderer
	logger   *log.Logger

	settings settings
}

// settings collects the builder options that shape construction.
type settings struct {
	initialView  View
	fov          float64
	near, far    float64
	dollyScale   float64
	panScale     float64
	zoomScale    float64
	historyLimit int

	perspEye    mgl64.Vec3
	perspCenter mgl64.Vec3
	perspUp     mgl64.Vec3
}

// New creates a viewport of the given pixel size and switches it to its initial view
// (Perspective unless WithView says otherwise).
//
// Parameters:
//   - width, height: viewport size in pixels (must be > 0)
//   - options: functional options to configure the viewport
//
// Returns:
//   - *Viewport: the new viewport
//   - error: ErrInvalidDimensions for a non-positive size, ErrUnknownView for a bad initial view
func New(width, height int, options ...ViewportBuilderOption) (*Viewport, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	v := &Viewport{
		width:  width,
		height: height,
		mode:   ModeNone,
		settings: settings{
			initialView: ViewPerspective,
			fov:         DefaultFieldOfView,
			near:        DefaultNear,
			far:         DefaultFar,
			dollyScale:  control.DefaultDollyScale,
			panScale:    1.0,
			zoomScale:   1.0,
			perspEye:    DefaultPerspectiveEye,
			perspCenter: mgl64.Vec3{},
			perspUp:     mgl64.Vec3{0, 1, 0},
		},
	}
	for _, opt := range options {
		opt(v)
	}

	if v.camera == nil {
		v.camera = camera.NewCamera()
	}
	if v.renderer == nil {
		v.renderer = renderer.NewRenderer()
	}
	if v.logger == nil {
		v.logger = log.Default()
	}

	v.arcball = control.NewArcball()
	v.trcontrol = control.NewTranslate(control.WithTranslateScale(v.settings.panScale))
	v.zoomcontrol = control.NewZoom(control.WithZoomScale(v.settings.zoomScale))
	v.dollycontrol = control.NewDolly(v.settings.dollyScale)
	v.transform = transform.New(transform.WithHistoryLimit(v.settings.historyLimit))

	v.camera.SetAspect(v.aspect())
	if err := v.SwitchTo(v.settings.initialView); err != nil {
		return nil, err
	}
	return v, nil
}

// Current returns the active interaction mode.
//
// Returns:
//   - Mode: the active mode, ModeNone between gestures
func (v *Viewport) Current() Mode {
	return v.mode
}

// View returns the current canonical view.
//
// Returns:
//   - View: the current view
func (v *Viewport) View() View {
	return v.view
}

// Size returns the viewport size in pixels.
//
// Returns:
//   - width, height: size in pixels
func (v *Viewport) Size() (width, height int) {
	return v.width, v.height
}

// Camera returns the camera attached to this viewport, for adjusting camera settings
// such as the view volume or clipping planes.
//
// Returns:
//   - camera.Camera: the camera
func (v *Viewport) Camera() camera.Camera {
	return v.camera
}

// Renderer returns the renderer frames are composed into.
//
// Returns:
//   - renderer.Renderer: the renderer
func (v *Viewport) Renderer() renderer.Renderer {
	return v.renderer
}

// PersistentMatrix returns the committed transformation.
//
// Returns:
//   - mgl64.Mat4: the accumulated matrix
func (v *Viewport) PersistentMatrix() mgl64.Mat4 {
	return v.transform.Matrix()
}

// Operations returns the retained log of committed operations, oldest first.
//
// Returns:
//   - []transform.Operation: the operation log
func (v *Viewport) Operations() []transform.Operation {
	return v.transform.Operations()
}

// OperationCount returns the number of operations committed since the last reset.
//
// Returns:
//   - int: committed operation count
func (v *Viewport) OperationCount() int {
	return v.transform.Count()
}

// Drift returns the numerical drift between the incrementally accumulated matrix and the one
// recomputed from the operation log.
//
// Returns:
//   - float64: max absolute element difference
func (v *Viewport) Drift() float64 {
	return v.transform.Drift()
}

// DollyValue returns the live dolly offset applied every frame.
//
// Returns:
//   - float64: the dolly offset
func (v *Viewport) DollyValue() float64 {
	return v.dollycontrol.DollyValue()
}

// ResetDolly clears the dolly offset. Ignored while a dolly gesture is in progress.
func (v *Viewport) ResetDolly() {
	if v.mode == ModeDolly {
		return
	}
	v.dollycontrol.Reset()
}

// ResetView re-applies the current view preset, discarding committed interaction history.
//
// Returns:
//   - error: error from SwitchTo
func (v *Viewport) ResetView() error {
	return v.SwitchTo(v.view)
}

// Reshape pushes the viewport rectangle and the camera projection to the renderer.
// Call it whenever the view needs to be set up again.
func (v *Viewport) Reshape() {
	v.renderer.SetViewport(0, 0, v.width, v.height)
	v.camera.ApplyTransform(v.renderer)
}

// Resize changes the viewport size, updates the camera aspect ratio and reshapes.
// A non-positive size is rejected and leaves the viewport unchanged.
//
// Parameters:
//   - width, height: new size in pixels
//
// Returns:
//   - error: ErrInvalidDimensions for a non-positive size
func (v *Viewport) Resize(width, height int) error {
	if err := checkDimensions(width, height); err != nil {
		v.logger.Printf("[Viewport] ignoring resize to %dx%d", width, height)
		return err
	}
	v.width, v.height = width, height
	v.camera.SetAspect(v.aspect())
	v.Reshape()
	return nil
}

// HandleRotate feeds a pointer event to the arcball. Rotation is only computed in the
// perspective view; orthographic views track the gesture without changing the scene.
//
// Parameters:
//   - event: the pointer event kind
//   - x, y: pointer position in pixels
//
// Returns:
//   - bool: false if another gesture is active and the event was ignored
func (v *Viewport) HandleRotate(event Event, x, y int) bool {
	if v.mode != ModeNone && v.mode != ModeRotate {
		return false
	}
	v.mode = ModeRotate

	if v.view == ViewPerspective {
		nx, ny := v.ndc(x, y)
		v.arcball.Mouse(nx, ny)
		v.arcball.Update()

		switch event {
		case EventPush:
			v.arcball.BeginDrag()
		case EventRelease:
			v.arcball.EndDrag()
			v.transform.Rotate(v.arcball.QuatValue())
			v.arcball.Reset()
		}
	}
	if event == EventRelease {
		v.mode = ModeNone
	}
	return true
}

// HandlePan feeds a pointer event to the translation controller. Samples are adjusted by
// the camera so the point under the pointer follows it.
//
// Parameters:
//   - event: the pointer event kind
//   - x, y: pointer position in pixels
//
// Returns:
//   - bool: false if another gesture is active and the event was ignored
func (v *Viewport) HandlePan(event Event, x, y int) bool {
	if v.mode != ModeNone && v.mode != ModePan {
		return false
	}
	v.mode = ModePan

	nx, ny := v.ndc(x, y)
	ax, ay, az := v.camera.Adjust(nx, ny, 0)
	v.trcontrol.Mouse(ax, ay, az)
	v.trcontrol.Update()

	switch event {
	case EventPush:
		v.trcontrol.BeginDrag()
	case EventRelease:
		v.trcontrol.EndDrag()
		v.transform.Translate(v.trcontrol.TransValue())
		v.trcontrol.Reset()
		v.mode = ModeNone
	}
	return true
}

// HandleZoom feeds a pointer event to the zoom controller. Only horizontal motion is used.
//
// Parameters:
//   - event: the pointer event kind
//   - x: pointer x position in pixels
//   - y: ignored
//
// Returns:
//   - bool: false if another gesture is active and the event was ignored
func (v *Viewport) HandleZoom(event Event, x, y int) bool {
	if v.mode != ModeNone && v.mode != ModeZoom {
		return false
	}
	v.mode = ModeZoom

	z, _ := v.ndc(x, y)
	v.zoomcontrol.Mouse(z)
	v.zoomcontrol.Update()

	switch event {
	case EventPush:
		v.zoomcontrol.BeginDrag()
	case EventRelease:
		v.zoomcontrol.EndDrag()
		v.transform.Scale(v.zoomcontrol.ZoomValue())
		v.zoomcontrol.Reset()
		v.mode = ModeNone
	}
	return true
}

// HandleDolly feeds a pointer event to the dolly controller. Only horizontal motion is used.
// The dolly offset is never committed into the persistent transform; it survives the
// release and is re-applied every frame. In orthographic views the whole gesture is handled
// as a zoom, which looks the same under parallel projection.
//
// Parameters:
//   - event: the pointer event kind
//   - x: pointer x position in pixels
//   - y: ignored
//
// Returns:
//   - bool: false if another gesture is active and the event was ignored
func (v *Viewport) HandleDolly(event Event, x, y int) bool {
	if v.view != ViewPerspective {
		return v.HandleZoom(event, x, y)
	}
	if v.mode != ModeNone && v.mode != ModeDolly {
		return false
	}
	v.mode = ModeDolly

	z, _ := v.ndc(x, y)
	v.dollycontrol.Mouse(z)
	v.dollycontrol.Update()

	switch event {
	case EventPush:
		v.dollycontrol.BeginDrag()
	case EventRelease:
		v.dollycontrol.EndDrag()
		v.mode = ModeNone
	}
	return true
}

// Handle routes an event to the handler for mode. ModeNone is not a gesture and is ignored.
//
// Parameters:
//   - mode: the gesture to drive
//   - event: the pointer event kind
//   - x, y: pointer position in pixels
//
// Returns:
//   - bool: true if the handler accepted the event
func (v *Viewport) Handle(mode Mode, event Event, x, y int) bool {
	switch mode {
	case ModePan:
		return v.HandlePan(event, x, y)
	case ModeRotate:
		return v.HandleRotate(event, x, y)
	case ModeZoom:
		return v.HandleZoom(event, x, y)
	case ModeDolly:
		return v.HandleDolly(event, x, y)
	default:
		return false
	}
}

// SendToCurrent routes an event to the handler of the active gesture, so the event source
// does not need to know which gesture is in progress.
//
// Parameters:
//   - event: the pointer event kind
//   - x, y: pointer position in pixels
//
// Returns:
//   - bool: false if no gesture is active
func (v *Viewport) SendToCurrent(event Event, x, y int) bool {
	if v.mode == ModeNone {
		return false
	}
	v.Handle(v.mode, event, x, y)
	return true
}

// CancelGesture abandons the active gesture without committing it. The dolly offset reached
// so far is kept.
func (v *Viewport) CancelGesture() {
	switch v.mode {
	case ModeRotate:
		v.arcball.EndDrag()
		v.arcball.Reset()
	case ModePan:
		v.trcontrol.EndDrag()
		v.trcontrol.Reset()
	case ModeZoom:
		v.zoomcontrol.EndDrag()
		v.zoomcontrol.Reset()
	case ModeDolly:
		v.dollycontrol.EndDrag()
	}
	v.mode = ModeNone
}

// ndc converts a pixel position into normalized device coordinates.
func (v *Viewport) ndc(x, y int) (float64, float64) {
	return common.ScreenToNDC(float64(x), float64(y), v.width, v.height)
}

func (v *Viewport) aspect() float64 {
	return float64(v.width) / float64(v.height)
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	return nil
}
