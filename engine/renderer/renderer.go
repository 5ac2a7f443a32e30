package renderer

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	viewport   [4]int
	projection mgl64.Mat4
	modelView  mgl64.Mat4
	sequence   uint64

	backend RendererBackend
}

// Frame is an immutable snapshot of the renderer's matrix state.
type Frame struct {
	// Sequence is the 1-based number of the flush that produced this frame (0 for unflushed snapshots).
	Sequence uint64
	// Viewport is the pixel rectangle as (x, y, width, height).
	Viewport [4]int
	// Projection is the projection matrix loaded by the camera.
	Projection mgl64.Mat4
	// ModelView is the composed model-view matrix.
	ModelView mgl64.Mat4
}

// MVP returns the combined projection * model-view matrix.
//
// Returns:
//   - mgl64.Mat4: the combined matrix
func (f Frame) MVP() mgl64.Mat4 {
	return f.Projection.Mul4(f.ModelView)
}

// Renderer defines the render API binding used by the viewport.
//
// It mirrors a fixed-function matrix pipeline: a projection matrix, a model-view matrix that
// callers post-multiply into, and a viewport rectangle. Flush hands the current state to the
// configured backend, which pushes it to the actual graphics API (or records it).
type Renderer interface {
	// SetViewport sets the pixel rectangle the frame is drawn into.
	//
	// Parameters:
	//   - x, y: lower-left corner in pixels
	//   - width, height: size in pixels
	SetViewport(x, y, width, height int)

	// LoadProjection replaces the projection matrix.
	//
	// Parameters:
	//   - m: the projection matrix
	LoadProjection(m mgl64.Mat4)

	// LoadModelView replaces the model-view matrix.
	//
	// Parameters:
	//   - m: the model-view matrix
	LoadModelView(m mgl64.Mat4)

	// MultModelView post-multiplies the model-view matrix: MV = MV * m.
	//
	// Parameters:
	//   - m: the matrix to multiply in
	MultModelView(m mgl64.Mat4)

	// TranslateModelView post-multiplies a translation into the model-view matrix.
	//
	// Parameters:
	//   - x, y, z: translation components
	TranslateModelView(x, y, z float64)

	// Frame returns a snapshot of the current state without flushing it.
	//
	// Returns:
	//   - Frame: the current matrix state
	Frame() Frame

	// Flush submits the current state to the backend.
	//
	// Returns:
	//   - error: error if the backend rejects the frame
	Flush() error

	// Backend returns the backend frames are flushed to.
	//
	// Returns:
	//   - RendererBackend: the configured backend
	Backend() RendererBackend

	// Release frees the backend's resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a renderer with identity matrices. When no backend is supplied
// through WithBackend a MemoryBackend keeping the most recent frames is used.
//
// Parameters:
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
func NewRenderer(options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:         &sync.Mutex{},
		projection: mgl64.Ident4(),
		modelView:  mgl64.Ident4(),
	}
	for _, opt := range options {
		opt(r)
	}
	if r.backend == nil {
		r.backend = NewMemoryBackend(DefaultMemoryCapacity)
	}
	return r
}

func (r *renderer) SetViewport(x, y, width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewport = [4]int{x, y, width, height}
}

func (r *renderer) LoadProjection(m mgl64.Mat4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projection = m
}

func (r *renderer) LoadModelView(m mgl64.Mat4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modelView = m
}

func (r *renderer) MultModelView(m mgl64.Mat4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modelView = r.modelView.Mul4(m)
}

func (r *renderer) TranslateModelView(x, y, z float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modelView = r.modelView.Mul4(mgl64.Translate3D(x, y, z))
}

func (r *renderer) Frame() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := r.snapshot()
	f.Sequence = 0
	return f
}

func (r *renderer) Flush() error {
	r.mu.Lock()
	r.sequence++
	f := r.snapshot()
	backend := r.backend
	r.mu.Unlock()

	if err := backend.Submit(f); err != nil {
		return fmt.Errorf("renderer: submit frame %d: %w", f.Sequence, err)
	}
	return nil
}

func (r *renderer) Backend() RendererBackend {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend != nil {
		r.backend.Release()
	}
}

// snapshot copies the current state into a Frame. Caller must hold the mutex.
func (r *renderer) snapshot() Frame {
	return Frame{
		Sequence:   r.sequence,
		Viewport:   r.viewport,
		Projection: r.projection,
		ModelView:  r.modelView,
	}
}
