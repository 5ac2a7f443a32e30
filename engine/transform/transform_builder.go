package transform

import "github.com/go-gl/mathgl/mgl64"

// TransformationOption is a functional option for configuring a Transformation.
type TransformationOption func(*Transformation)

// WithHistoryLimit sets how many operations are kept in the log.
//
// Parameters:
//   - limit: maximum log length (non-positive selects DefaultHistoryLimit)
//
// Returns:
//   - TransformationOption: functional option to set the history limit
func WithHistoryLimit(limit int) TransformationOption {
	return func(t *Transformation) {
		t.historyLimit = limit
	}
}

// WithMatrix starts the transformation from m instead of identity.
//
// Parameters:
//   - m: the initial matrix
//
// Returns:
//   - TransformationOption: functional option to set the initial matrix
func WithMatrix(m mgl64.Mat4) TransformationOption {
	return func(t *Transformation) {
		t.matrix = m
		t.base = m
	}
}
