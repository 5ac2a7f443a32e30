// Package control implements the incremental-transform controllers driven by pointer drags:
// an arcball for rotation, a planar translation controller, a uniform zoom controller and a
// depth dolly controller.
//
// Every controller follows the same cycle: samples arrive through Mouse, BeginDrag anchors the
// drag at the latest sample, Update recomputes the incremental value while dragging, EndDrag
// stops tracking and Reset returns the value to neutral. Controllers are not safe for
// concurrent use.
package control

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind enumerates the controller variants. The set is closed.
type Kind int

const (
	// KindArcball produces a rotation quaternion.
	KindArcball Kind = iota
	// KindTranslate produces a translation vector.
	KindTranslate
	// KindZoom produces a uniform scale factor.
	KindZoom
	// KindDolly produces a depth offset along the view axis.
	KindDolly
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindArcball:
		return "arcball"
	case KindTranslate:
		return "translate"
	case KindZoom:
		return "zoom"
	case KindDolly:
		return "dolly"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sample is a normalized pointer sample. Controllers read only the components they use:
// the arcball reads X and Y, translation reads all three, zoom and dolly read X.
type Sample struct {
	X, Y, Z float64
}

// Controller is the capability set shared by all controller kinds.
type Controller interface {
	// Kind returns which variant this controller is.
	//
	// Returns:
	//   - Kind: the controller kind
	Kind() Kind

	// Feed stores a sample as the controller's current pointer position.
	//
	// Parameters:
	//   - s: the normalized sample
	Feed(s Sample)

	// Update recomputes the incremental value from the current sample. No-op unless dragging.
	Update()

	// BeginDrag anchors a drag at the current sample.
	BeginDrag()

	// EndDrag stops tracking the drag. The value is kept until Reset.
	EndDrag()

	// Reset returns the incremental value to neutral.
	Reset()

	// Dragging reports whether a drag is in progress.
	//
	// Returns:
	//   - bool: true between BeginDrag and EndDrag
	Dragging() bool

	// Value returns the incremental value as a matrix.
	//
	// Returns:
	//   - mgl64.Mat4: the controller's current contribution
	Value() mgl64.Mat4
}
