package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-viewport/engine/input"
	"github.com/Carmen-Shannon/oxy-viewport/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewport/engine/viewport"
	"github.com/Carmen-Shannon/oxy-viewport/engine/window"
)

// engine implements the Engine interface.
// Everything runs on the window's thread: GLFW delivers input through callbacks between
// frames and the update callback composes one frame per loop iteration, so the viewport is
// never touched concurrently.
type engine struct {
	window   window.Window
	viewport *viewport.Viewport
	router   *input.Router
	logger   *log.Logger

	vpOptions     []viewport.ViewportBuilderOption
	routerOptions []input.RouterOption

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderCallback   func(deltaTime float32)
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	maxFrames        uint64        // 0 = run until the window closes

	lastRender time.Time
	frames     uint64

	quitOnce sync.Once
}

// Engine is the main entry point for the viewer.
// It wires the window's input events to the viewport and renders a frame every loop iteration.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Viewport returns the viewport driven by the window's input.
	//
	// Returns:
	//   - *viewport.Viewport: the viewport instance
	Viewport() *viewport.Viewport

	// Router returns the input router translating window events into gestures.
	//
	// Returns:
	//   - *input.Router: the router instance
	Router() *input.Router

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderCallback registers the function called each frame before the viewport renders.
	//
	// Parameters:
	//   - callback: function to call each frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Frames returns the number of frames rendered so far.
	//
	// Returns:
	//   - uint64: frame count
	Frames() uint64

	// Run starts the main loop (blocks until the window closes or Quit is called).
	Run()

	// Quit closes the window, which ends Run. Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine. A window is required; the viewport is created at the
// window's size unless one is supplied with WithViewport.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: error if no window is configured or the viewport cannot be created
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		profilingEnabled: false,
	}
	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		return nil, fmt.Errorf("engine: a window is required")
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}
	if e.viewport == nil {
		opts := append([]viewport.ViewportBuilderOption{viewport.WithLogger(e.logger)}, e.vpOptions...)
		vp, err := viewport.New(e.window.Width(), e.window.Height(), opts...)
		if err != nil {
			return nil, fmt.Errorf("engine: create viewport: %w", err)
		}
		e.viewport = vp
	}
	opts := append([]input.RouterOption{input.WithLogger(e.logger)}, e.routerOptions...)
	e.router = input.NewRouter(e.viewport, opts...)

	e.window.SetResizeCallback(e.resize)
	e.window.SetMouseButtonCallback(e.router.MouseButton)
	e.window.SetMouseMoveCallback(e.router.CursorMoved)
	e.window.SetKeyDownCallback(func(keyCode uint32) {
		e.router.Key(int(keyCode))
	})
	e.window.SetScrollCallback(func(delta float32) {
		e.router.Scroll(float64(delta))
	})
	e.window.SetUpdateCallback(e.frame)

	e.viewport.Reshape()
	return e, nil
}

// resize forwards framebuffer size changes to the viewport. Minimized windows report a zero
// framebuffer; that is skipped so the viewport keeps its last size until the window returns.
func (e *engine) resize(width, height int) {
	if width == 0 || height == 0 {
		return
	}
	if err := e.viewport.Resize(width, height); err != nil {
		e.logger.Printf("[Engine] resize: %v", err)
	}
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Viewport() *viewport.Viewport {
	return e.viewport
}

func (e *engine) Router() *input.Router {
	return e.router
}

func (e *engine) Run() {
	e.lastRender = time.Now()
	e.window.ProcessMessages()
	e.viewport.Renderer().Release()
}

// Quit closes the window so the message loop exits.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		if err := e.window.Close(); err != nil {
			e.logger.Printf("[Engine] close window: %v", err)
		}
	})
}

// frame runs once per message loop iteration: user callback, viewport composition and
// flush, profiling and frame rate limiting.
func (e *engine) frame() {
	now := time.Now()
	dt := float32(now.Sub(e.lastRender).Seconds())
	e.lastRender = now

	if e.renderCallback != nil {
		e.renderCallback(dt)
	}

	if err := e.viewport.Render(); err != nil {
		e.logger.Printf("[Engine] render frame %d: %v", e.frames, err)
	}
	e.frames++

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.maxFrames > 0 && e.frames >= e.maxFrames {
		e.Quit()
		return
	}

	// Frame rate limiting
	if e.renderFrameLimit > 0 {
		elapsed := time.Since(now)
		if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderCallback registers the function called each frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
