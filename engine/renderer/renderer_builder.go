package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithBackend sets the backend frames are flushed to.
//
// Parameters:
//   - backend: the RendererBackend to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the backend option to a renderer
func WithBackend(backend RendererBackend) RendererBuilderOption {
	return func(r *renderer) {
		r.backend = backend
	}
}

// WithViewport sets the initial viewport rectangle.
//
// Parameters:
//   - x, y: lower-left corner in pixels
//   - width, height: size in pixels
//
// Returns:
//   - RendererBuilderOption: a function that applies the viewport option to a renderer
func WithViewport(x, y, width, height int) RendererBuilderOption {
	return func(r *renderer) {
		r.viewport = [4]int{x, y, width, height}
	}
}
