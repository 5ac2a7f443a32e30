package engine

import (
	"log"

	"github.com/Carmen-Shannon/oxy-viewport/engine/input"
	"github.com/Carmen-Shannon/oxy-viewport/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewport/engine/viewport"
	"github.com/Carmen-Shannon/oxy-viewport/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler sets a custom profiler.
//
// Parameters:
//   - p: the profiler to tick each frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window the engine runs in.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithViewport sets a pre-built viewport instead of creating one at the window's size.
//
// Parameters:
//   - vp: the viewport to drive
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithViewport(vp *viewport.Viewport) EngineBuilderOption {
	return func(e *engine) {
		e.viewport = vp
	}
}

// WithViewportOptions sets the options used when the engine creates its viewport.
// Ignored when WithViewport is given.
//
// Parameters:
//   - options: viewport options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithViewportOptions(options ...viewport.ViewportBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.vpOptions = append(e.vpOptions, options...)
	}
}

// WithRouterOptions sets the options of the input router, such as custom bindings.
//
// Parameters:
//   - options: router options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRouterOptions(options ...input.RouterOption) EngineBuilderOption {
	return func(e *engine) {
		e.routerOptions = append(e.routerOptions, options...)
	}
}

// WithLogger sets the logger shared by the engine, viewport, router and profiler.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(l *log.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = l
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}

// WithMaxFrames stops the engine after n frames. Zero runs until the window closes.
//
// Parameters:
//   - n: frame count
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaxFrames(n uint64) EngineBuilderOption {
	return func(e *engine) {
		e.maxFrames = n
	}
}
