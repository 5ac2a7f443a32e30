// Package transform accumulates committed rotate/translate/scale operations into a single
// persistent matrix and keeps the operation log used to diagnose numerical drift.
package transform

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultHistoryLimit is the number of operations kept in the log before the oldest are
// folded into the base matrix.
const DefaultHistoryLimit = 256

// OperationKind identifies the kind of a logged operation.
type OperationKind int

const (
	// OperationRotate is a rotation by a unit quaternion.
	OperationRotate OperationKind = iota
	// OperationTranslate is a translation by a vector.
	OperationTranslate
	// OperationScale is a uniform scale.
	OperationScale
	// OperationLoad replaced the whole matrix.
	OperationLoad
)

// String returns the lower-case name of the operation kind.
func (k OperationKind) String() string {
	switch k {
	case OperationRotate:
		return "rotate"
	case OperationTranslate:
		return "translate"
	case OperationScale:
		return "scale"
	case OperationLoad:
		return "load"
	default:
		return fmt.Sprintf("OperationKind(%d)", int(k))
	}
}

// Operation is one entry of the transformation log. Only the field matching Kind is set.
type Operation struct {
	Kind   OperationKind
	Quat   mgl64.Quat
	Vector mgl64.Vec3
	Factor float64
	Matrix mgl64.Mat4
}

// Mat4 returns the matrix form of the operation.
//
// Returns:
//   - mgl64.Mat4: the operation matrix
func (o Operation) Mat4() mgl64.Mat4 {
	switch o.Kind {
	case OperationRotate:
		return o.Quat.Mat4()
	case OperationTranslate:
		return mgl64.Translate3D(o.Vector[0], o.Vector[1], o.Vector[2])
	case OperationScale:
		return mgl64.Scale3D(o.Factor, o.Factor, o.Factor)
	default:
		return o.Matrix
	}
}

// Transformation is the persistent accumulated transform.
//
// Every operation left-multiplies the current matrix (M' = Op * M): it acts in eye space on
// top of the existing history, so committing a previewed value reproduces the preview exactly.
//
// Transformation is not safe for concurrent use; it is owned by a single viewport.
type Transformation struct {
	matrix mgl64.Mat4

	// base holds the product of operations evicted from the log.
	base         mgl64.Mat4
	log          []Operation
	historyLimit int
	total        int
}

// New creates an identity Transformation.
//
// Parameters:
//   - options: functional options to configure the transformation
//
// Returns:
//   - *Transformation: the new transformation
func New(options ...TransformationOption) *Transformation {
	t := &Transformation{
		matrix:       mgl64.Ident4(),
		base:         mgl64.Ident4(),
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range options {
		opt(t)
	}
	if t.historyLimit <= 0 {
		t.historyLimit = DefaultHistoryLimit
	}
	return t
}

// Reset returns the transformation to identity and clears the log.
func (t *Transformation) Reset() {
	t.matrix = mgl64.Ident4()
	t.base = mgl64.Ident4()
	t.log = t.log[:0]
	t.total = 0
}

// Rotate applies a rotation. The quaternion is normalized before use.
//
// Parameters:
//   - q: the rotation
func (t *Transformation) Rotate(q mgl64.Quat) {
	if q.Len() != 0 {
		q = q.Normalize()
	} else {
		q = mgl64.QuatIdent()
	}
	t.push(Operation{Kind: OperationRotate, Quat: q})
}

// Translate applies a translation.
//
// Parameters:
//   - v: the translation vector
func (t *Transformation) Translate(v mgl64.Vec3) {
	t.push(Operation{Kind: OperationTranslate, Vector: v})
}

// Scale applies a uniform scale.
//
// Parameters:
//   - factor: the scale factor
func (t *Transformation) Scale(factor float64) {
	t.push(Operation{Kind: OperationScale, Factor: factor})
}

// Load replaces the accumulated matrix. The log restarts from m.
//
// Parameters:
//   - m: the new matrix
func (t *Transformation) Load(m mgl64.Mat4) {
	t.base = mgl64.Ident4()
	t.log = t.log[:0]
	t.push(Operation{Kind: OperationLoad, Matrix: m})
}

// Matrix returns the accumulated matrix.
//
// Returns:
//   - mgl64.Mat4: the composed matrix
func (t *Transformation) Matrix() mgl64.Mat4 {
	return t.matrix
}

// ColumnMajor returns the matrix as 16 values in column-major order.
//
// Returns:
//   - [16]float64: column-major elements
func (t *Transformation) ColumnMajor() [16]float64 {
	return [16]float64(t.matrix)
}

// ColumnMajor32 returns the matrix as 16 single precision values in column-major order.
//
// Returns:
//   - [16]float32: column-major elements
func (t *Transformation) ColumnMajor32() [16]float32 {
	return common.ColumnMajor32(t.matrix)
}

// Apply multiplies the matrix into the renderer's model-view stack.
//
// Parameters:
//   - r: the renderer to push the matrix to
func (t *Transformation) Apply(r renderer.Renderer) {
	r.MultModelView(t.matrix)
}

// Operations returns a copy of the retained log, oldest first.
//
// Returns:
//   - []Operation: logged operations
func (t *Transformation) Operations() []Operation {
	out := make([]Operation, len(t.log))
	copy(out, t.log)
	return out
}

// Count returns the number of operations applied since the last Reset, including
// operations already folded out of the log.
//
// Returns:
//   - int: operation count
func (t *Transformation) Count() int {
	return t.total
}

// IsIdentity reports whether the matrix equals identity within eps.
//
// Parameters:
//   - eps: element tolerance
//
// Returns:
//   - bool: true if the matrix is identity
func (t *Transformation) IsIdentity(eps float64) bool {
	return t.matrix.ApproxEqualThreshold(mgl64.Ident4(), eps)
}

// Replay recomputes the matrix from the folded base and the log.
//
// Returns:
//   - mgl64.Mat4: the recomputed matrix
func (t *Transformation) Replay() mgl64.Mat4 {
	m := t.base
	for _, op := range t.log {
		m = compose(m, op)
	}
	return m
}

// Drift returns the largest element difference between the incrementally accumulated
// matrix and the one recomputed by Replay.
//
// Returns:
//   - float64: max absolute element difference
func (t *Transformation) Drift() float64 {
	return common.MaxAbsDiff(t.matrix, t.Replay())
}

// push applies op to the matrix and appends it to the log, folding the oldest entry into
// the base once the history limit is reached.
func (t *Transformation) push(op Operation) {
	t.matrix = compose(t.matrix, op)
	if len(t.log) == t.historyLimit {
		t.base = compose(t.base, t.log[0])
		copy(t.log, t.log[1:])
		t.log = t.log[:len(t.log)-1]
	}
	t.log = append(t.log, op)
	t.total++
}

func compose(m mgl64.Mat4, op Operation) mgl64.Mat4 {
	if op.Kind == OperationLoad {
		return op.Matrix
	}
	return op.Mat4().Mul4(m)
}
