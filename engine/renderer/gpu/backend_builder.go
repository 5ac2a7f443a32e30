package gpu

import (
	"log"

	"github.com/Carmen-Shannon/oxy-viewport/engine/light"
	"github.com/cogentcore/webgpu/wgpu"
)

// BackendBuilderOption is a functional option for configuring a Backend.
type BackendBuilderOption func(*Backend)

// WithVSync selects FIFO presentation when enabled and immediate presentation otherwise.
//
// Parameters:
//   - enabled: whether to wait for vertical blank
//
// Returns:
//   - BackendBuilderOption: a function that applies the present mode
func WithVSync(enabled bool) BackendBuilderOption {
	return func(b *Backend) {
		if enabled {
			b.presentMode = wgpu.PresentModeFifo
		} else {
			b.presentMode = wgpu.PresentModeImmediate
		}
	}
}

// WithLights replaces the default headlight with the given lights.
//
// Parameters:
//   - lights: lights marshaled into the light uniform each frame
//
// Returns:
//   - BackendBuilderOption: a function that applies the lights
func WithLights(lights ...light.Light) BackendBuilderOption {
	return func(b *Backend) {
		b.lights = lights
	}
}

// WithClearColor sets the colour the surface is cleared to.
func WithClearColor(r, g, bl, a float64) BackendBuilderOption {
	return func(b *Backend) {
		b.clearColor = wgpu.Color{R: r, G: g, B: bl, A: a}
	}
}

// WithFallbackAdapter forces the software fallback adapter.
func WithFallbackAdapter(force bool) BackendBuilderOption {
	return func(b *Backend) {
		b.forceFallbackAdapter = force
	}
}

// WithLogger sets the logger used for backend messages.
func WithLogger(logger *log.Logger) BackendBuilderOption {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithGrid sets the reference grid size. A non-positive extent or step disables the grid.
//
// Parameters:
//   - halfExtent: distance from the origin to the grid edge
//   - step: spacing between grid lines
//
// Returns:
//   - BackendBuilderOption: a function that applies the grid size
func WithGrid(halfExtent, step float32) BackendBuilderOption {
	return func(b *Backend) {
		b.gridExtent = halfExtent
		b.gridStep = step
	}
}
