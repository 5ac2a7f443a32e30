package viewport

import (
	"errors"
	"io"
	"log"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewport/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewport/engine/transform"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const eps = 1e-9

var approx = cmpopts.EquateApprox(0, 1e-9)

func newTestViewport(t *testing.T, options ...ViewportBuilderOption) *Viewport {
	t.Helper()
	options = append([]ViewportBuilderOption{WithLogger(log.New(io.Discard, "", 0))}, options...)
	v, err := New(800, 600, options...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v
}

func drag(v *Viewport, mode Mode, x0, y0, x1, y1 int) {
	v.Handle(mode, EventPush, x0, y0)
	v.Handle(mode, EventDrag, x1, y1)
	v.Handle(mode, EventRelease, x1, y1)
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	for _, tc := range []struct{ w, h int }{{0, 600}, {800, 0}, {-1, 600}, {800, -5}} {
		_, err := New(tc.w, tc.h)
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("New(%d, %d) error = %v, want ErrInvalidDimensions", tc.w, tc.h, err)
		}
	}
}

func TestNewStartsInPerspective(t *testing.T) {
	v := newTestViewport(t)
	if v.View() != ViewPerspective {
		t.Fatalf("View() = %s, want perspective", v.View())
	}
	if v.Current() != ModeNone {
		t.Fatalf("Current() = %s, want none", v.Current())
	}
	if got := v.Camera().Projection(); got != camera.ProjectionPerspective {
		t.Fatalf("Projection() = %s, want perspective", got)
	}
	want := mgl64.Vec3{0, 0, math.Sqrt(3 * 50 * 50)}
	if diff := cmp.Diff(want, v.Camera().Eye(), approx); diff != "" {
		t.Errorf("Eye() mismatch (-want +got):\n%s", diff)
	}
}

func TestRotateCommitsSingleRotation(t *testing.T) {
	v := newTestViewport(t)
	before := v.OperationCount()

	drag(v, ModeRotate, 400, 300, 450, 300)

	if got := v.OperationCount(); got != before+1 {
		t.Fatalf("OperationCount() = %d, want %d", got, before+1)
	}
	ops := v.Operations()
	last := ops[len(ops)-1]
	if last.Kind != transform.OperationRotate {
		t.Fatalf("last op kind = %s, want rotate", last.Kind)
	}
	// A horizontal drag to the right spins the sphere about +Y.
	q := last.Quat
	if math.Abs(q.V[0]) > eps || math.Abs(q.V[2]) > eps || q.V[1] <= 0 {
		t.Errorf("rotation = %v, want positive rotation about Y", q)
	}
	if v.Current() != ModeNone {
		t.Errorf("Current() = %s after release, want none", v.Current())
	}
}

func TestLivePreviewMatchesCommit(t *testing.T) {
	for _, mode := range []Mode{ModeRotate, ModePan, ModeZoom} {
		t.Run(mode.String(), func(t *testing.T) {
			v := newTestViewport(t)
			v.Handle(mode, EventPush, 400, 300)
			v.Handle(mode, EventDrag, 470, 260)
			preview := v.Composed()
			v.Handle(mode, EventRelease, 470, 260)

			if !preview.ApproxEqualThreshold(v.Composed(), 1e-9) {
				t.Errorf("committed %v differs from preview %v", v.Composed(), preview)
			}
		})
	}
}

func TestPanFollowsPointer(t *testing.T) {
	v := newTestViewport(t, WithView(ViewFront))
	drag(v, ModePan, 400, 300, 600, 300)

	// Front view at 800x600 spans 4/3 half-width; a quarter-width drag is 2/3 units.
	want := mgl64.Vec3{2.0 / 3.0, 0, 0}
	got := v.PersistentMatrix().Col(3).Vec3()
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("translation mismatch (-want +got):\n%s", diff)
	}
}

func TestZoomCommitsScale(t *testing.T) {
	v := newTestViewport(t, WithView(ViewFront))
	drag(v, ModeZoom, 400, 300, 480, 100)

	ops := v.Operations()
	if len(ops) != 1 || ops[0].Kind != transform.OperationScale {
		t.Fatalf("Operations() = %v, want one scale", ops)
	}
	if want := math.Exp(0.2); math.Abs(ops[0].Factor-want) > eps {
		t.Errorf("factor = %v, want %v", ops[0].Factor, want)
	}
}

func TestResizeUpdatesAspectOnly(t *testing.T) {
	v := newTestViewport(t)
	drag(v, ModeRotate, 400, 300, 450, 320)
	before := v.PersistentMatrix()

	if err := v.Resize(1600, 600); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if got, want := v.Camera().Aspect(), 1600.0/600.0; math.Abs(got-want) > eps {
		t.Errorf("Aspect() = %v, want %v", got, want)
	}
	if w, h := v.Size(); w != 1600 || h != 600 {
		t.Errorf("Size() = %dx%d, want 1600x600", w, h)
	}
	if diff := cmp.Diff(before, v.PersistentMatrix()); diff != "" {
		t.Errorf("persistent matrix changed on resize (-before +after):\n%s", diff)
	}
}

func TestResizeRejectsInvalidDimensions(t *testing.T) {
	v := newTestViewport(t)
	if err := v.Resize(0, 600); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("Resize(0, 600) error = %v, want ErrInvalidDimensions", err)
	}
	if w, h := v.Size(); w != 800 || h != 600 {
		t.Errorf("Size() = %dx%d after rejected resize, want 800x600", w, h)
	}
}

func TestOrthographicViewsLockRotation(t *testing.T) {
	v := newTestViewport(t)
	if err := v.SwitchTo(ViewTop); err != nil {
		t.Fatalf("SwitchTo: %v", err)
	}
	if !v.HandleRotate(EventPush, 400, 300) {
		t.Fatal("HandleRotate(push) rejected")
	}
	if v.Current() != ModeRotate {
		t.Fatalf("Current() = %s, want rotate", v.Current())
	}
	v.HandleRotate(EventDrag, 700, 100)
	v.HandleRotate(EventRelease, 700, 100)

	if !v.PersistentMatrix().ApproxEqualThreshold(mgl64.Ident4(), eps) {
		t.Errorf("PersistentMatrix() = %v, want identity", v.PersistentMatrix())
	}
	if v.OperationCount() != 0 {
		t.Errorf("OperationCount() = %d, want 0", v.OperationCount())
	}
	if v.Current() != ModeNone {
		t.Errorf("Current() = %s, want none", v.Current())
	}
}

func TestGesturesAreMutuallyExclusive(t *testing.T) {
	v := newTestViewport(t)
	if !v.HandlePan(EventPush, 400, 300) {
		t.Fatal("HandlePan(push) rejected")
	}
	for _, mode := range []Mode{ModeRotate, ModeZoom, ModeDolly} {
		if v.Handle(mode, EventPush, 410, 300) {
			t.Errorf("Handle(%s) accepted during pan", mode)
		}
	}
	if v.Current() != ModePan {
		t.Fatalf("Current() = %s, want pan", v.Current())
	}
	v.HandlePan(EventRelease, 420, 300)
	if !v.HandleZoom(EventPush, 400, 300) {
		t.Error("HandleZoom(push) rejected after pan released")
	}
}

func TestDollyPersistsWithoutCommit(t *testing.T) {
	v := newTestViewport(t)
	before := v.OperationCount()
	m := v.PersistentMatrix()

	drag(v, ModeDolly, 400, 300, 480, 300)
	if got := v.DollyValue(); math.Abs(got-2.0) > eps {
		t.Fatalf("DollyValue() = %v, want 2", got)
	}
	drag(v, ModeDolly, 400, 300, 440, 300)
	if got := v.DollyValue(); math.Abs(got-3.0) > eps {
		t.Fatalf("DollyValue() = %v after second drag, want 3", got)
	}
	if v.OperationCount() != before || v.PersistentMatrix() != m {
		t.Error("dolly changed the persistent transform")
	}

	v.ResetDolly()
	if v.DollyValue() != 0 {
		t.Errorf("DollyValue() = %v after ResetDolly, want 0", v.DollyValue())
	}
}

func TestDollyZoomsInOrthographicViews(t *testing.T) {
	v := newTestViewport(t, WithView(ViewFront))
	v.HandleDolly(EventPush, 400, 300)
	if v.Current() != ModeZoom {
		t.Fatalf("Current() = %s, want zoom", v.Current())
	}
	v.HandleDolly(EventRelease, 480, 300)

	ops := v.Operations()
	if len(ops) != 1 || ops[0].Kind != transform.OperationScale {
		t.Fatalf("Operations() = %v, want one scale", ops)
	}
	if v.DollyValue() != 0 {
		t.Errorf("DollyValue() = %v, want 0", v.DollyValue())
	}
}

func TestReleaseWithoutPushCommitsIdentity(t *testing.T) {
	v := newTestViewport(t, WithView(ViewFront))
	if !v.HandlePan(EventRelease, 600, 100) {
		t.Fatal("HandlePan(release) rejected")
	}
	if v.OperationCount() != 1 {
		t.Fatalf("OperationCount() = %d, want 1", v.OperationCount())
	}
	if !v.PersistentMatrix().ApproxEqualThreshold(mgl64.Ident4(), eps) {
		t.Errorf("PersistentMatrix() = %v, want identity", v.PersistentMatrix())
	}
}

func TestUnknownEventActsAsDrag(t *testing.T) {
	a := newTestViewport(t, WithView(ViewFront))
	b := newTestViewport(t, WithView(ViewFront))

	a.HandlePan(EventPush, 400, 300)
	a.HandlePan(EventDrag, 500, 250)
	b.HandlePan(EventPush, 400, 300)
	b.HandlePan(EventUnknown, 500, 250)

	if !a.Composed().ApproxEqualThreshold(b.Composed(), eps) {
		t.Errorf("unknown event preview %v, drag preview %v", b.Composed(), a.Composed())
	}
}

func TestSendToCurrent(t *testing.T) {
	v := newTestViewport(t)
	if v.SendToCurrent(EventDrag, 10, 10) {
		t.Fatal("SendToCurrent accepted with no gesture")
	}
	v.HandleZoom(EventPush, 400, 300)
	if !v.SendToCurrent(EventRelease, 440, 300) {
		t.Fatal("SendToCurrent rejected during zoom")
	}
	if v.Current() != ModeNone {
		t.Errorf("Current() = %s, want none", v.Current())
	}
}

func TestSwitchToPresets(t *testing.T) {
	tests := []struct {
		view View
		eye  mgl64.Vec3
		up   mgl64.Vec3
	}{
		{ViewFront, mgl64.Vec3{0, 0, 100}, mgl64.Vec3{0, 1, 0}},
		{ViewRight, mgl64.Vec3{100, 0, 0}, mgl64.Vec3{0, 1, 0}},
		{ViewTop, mgl64.Vec3{0, 100, 0}, mgl64.Vec3{0, 0, -1}},
		{ViewBack, mgl64.Vec3{0, 0, -100}, mgl64.Vec3{0, 1, 0}},
		{ViewLeft, mgl64.Vec3{-100, 0, 0}, mgl64.Vec3{0, 1, 0}},
		{ViewBottom, mgl64.Vec3{0, -100, 0}, mgl64.Vec3{0, 0, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.view.String(), func(t *testing.T) {
			v := newTestViewport(t)
			drag(v, ModeRotate, 400, 300, 500, 200)
			if err := v.SwitchTo(tc.view); err != nil {
				t.Fatalf("SwitchTo: %v", err)
			}
			c := v.Camera()
			if c.Projection() != camera.ProjectionOrthographic {
				t.Errorf("Projection() = %s, want orthographic", c.Projection())
			}
			if diff := cmp.Diff(tc.eye, c.Eye(), approx); diff != "" {
				t.Errorf("Eye() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.up, c.Up(), approx); diff != "" {
				t.Errorf("Up() mismatch (-want +got):\n%s", diff)
			}
			if !v.PersistentMatrix().ApproxEqualThreshold(mgl64.Ident4(), eps) {
				t.Errorf("PersistentMatrix() = %v, want identity", v.PersistentMatrix())
			}
			w, h, keep := c.OrthographicViewVolume()
			if w != 2 || h != 2 || !keep {
				t.Errorf("OrthographicViewVolume() = %v, %v, %v, want 2, 2, true", w, h, keep)
			}
		})
	}
}

func TestSwitchToPerspectiveRestoresUp(t *testing.T) {
	v := newTestViewport(t, WithView(ViewTop))
	if err := v.SwitchTo(ViewPerspective); err != nil {
		t.Fatalf("SwitchTo: %v", err)
	}
	if diff := cmp.Diff(mgl64.Vec3{0, 1, 0}, v.Camera().Up(), approx); diff != "" {
		t.Errorf("Up() mismatch (-want +got):\n%s", diff)
	}
}

func TestSwitchToUnknownView(t *testing.T) {
	v := newTestViewport(t)
	if err := v.SwitchTo(View(42)); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("SwitchTo(42) error = %v, want ErrUnknownView", err)
	}
	if v.View() != ViewPerspective {
		t.Errorf("View() = %s, want perspective", v.View())
	}
}

func TestSwitchToCancelsGesture(t *testing.T) {
	v := newTestViewport(t)
	v.HandleRotate(EventPush, 400, 300)
	v.HandleRotate(EventDrag, 500, 300)
	if err := v.SwitchTo(ViewPerspective); err != nil {
		t.Fatalf("SwitchTo: %v", err)
	}
	if v.Current() != ModeNone {
		t.Fatalf("Current() = %s, want none", v.Current())
	}
	fresh := newTestViewport(t)
	if !v.Composed().ApproxEqualThreshold(fresh.Composed(), eps) {
		t.Errorf("cancelled gesture leaked into %v", v.Composed())
	}
}

func TestSetPerspViewMapsCenterToOrigin(t *testing.T) {
	v := newTestViewport(t)
	eye := mgl64.Vec3{10, 20, 30}
	center := mgl64.Vec3{1, 2, 3}
	if err := v.SetPerspView(eye, center, mgl64.Vec3{0, 1, 0}); err != nil {
		t.Fatalf("SetPerspView: %v", err)
	}
	m := v.PersistentMatrix()
	if diff := cmp.Diff(mgl64.Vec3{}, mgl64.TransformCoordinate(center, m), approx); diff != "" {
		t.Errorf("center mismatch (-want +got):\n%s", diff)
	}
	dist := eye.Sub(center).Len()
	if diff := cmp.Diff(mgl64.Vec3{0, 0, dist}, mgl64.TransformCoordinate(eye, m), approx); diff != "" {
		t.Errorf("eye mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mgl64.Vec3{0, 0, dist}, v.Camera().Eye(), approx); diff != "" {
		t.Errorf("camera eye mismatch (-want +got):\n%s", diff)
	}
}

func TestSetPerspViewRejectsDegenerateEye(t *testing.T) {
	v := newTestViewport(t)
	tests := []struct {
		name            string
		eye, center, up mgl64.Vec3
	}{
		{"eye at center", mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{0, 1, 0}},
		{"up along view", mgl64.Vec3{0, 10, 0}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}},
	}
	for _, tc := range tests {
		if err := v.SetPerspView(tc.eye, tc.center, tc.up); !errors.Is(err, ErrDegenerateEye) {
			t.Errorf("%s: error = %v, want ErrDegenerateEye", tc.name, err)
		}
	}
}

func TestMouseToViewportFrontView(t *testing.T) {
	v := newTestViewport(t, WithView(ViewFront))
	x, y, z := v.MouseToViewport(800, 0, 0.5)
	want := []float64{4.0 / 3.0, 1, 0.5}
	if diff := cmp.Diff(want, []float64{x, y, z}, approx); diff != "" {
		t.Errorf("MouseToViewport mismatch (-want +got):\n%s", diff)
	}
}

func TestMouseToViewportRoundTrip(t *testing.T) {
	v := newTestViewport(t)
	drag(v, ModeRotate, 400, 300, 480, 250)
	drag(v, ModePan, 400, 300, 350, 330)
	drag(v, ModeZoom, 400, 300, 430, 300)

	wx, wy, wz := v.MouseToViewport(200, 150, 0.25)
	x, y, z := v.ViewportToMouse(wx, wy, wz)
	if diff := cmp.Diff([]float64{200, 150, 0.25}, []float64{x, y, z}, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMouseToViewportRoundTripAfterZoomingOut(t *testing.T) {
	v := newTestViewport(t, WithView(ViewFront))
	for range 5 {
		drag(v, ModeZoom, 800, 300, 0, 300)
	}
	if s := v.PersistentMatrix()[0]; math.Abs(s-math.Exp(-10)) > 1e-12 {
		t.Fatalf("scale = %v, want %v", s, math.Exp(-10))
	}

	wx, wy, wz := v.MouseToViewport(600, 150, 0)
	x, y, z := v.ViewportToMouse(wx, wy, wz)
	if diff := cmp.Diff([]float64{600, 150, 0}, []float64{x, y, z}, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMouseToViewportSingularTransform(t *testing.T) {
	v := newTestViewport(t, WithView(ViewFront))
	drag(v, ModeZoom, 400, 300, 400, 300)
	v.transform.Scale(0)

	x, y, z := v.MouseToViewport(400, 300, 0)
	for _, c := range []float64{x, y, z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			t.Fatalf("MouseToViewport = %v, %v, %v, want finite values", x, y, z)
		}
	}
}

func TestRenderComposesFrame(t *testing.T) {
	mem := renderer.NewMemoryBackend(4)
	v := newTestViewport(t, WithRenderer(renderer.NewRenderer(renderer.WithBackend(mem))))
	drag(v, ModeDolly, 400, 300, 480, 300)
	drag(v, ModeRotate, 400, 300, 450, 300)

	v.Reshape()
	if err := v.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	f, ok := mem.Last()
	if !ok {
		t.Fatal("no frame submitted")
	}
	c := v.Camera()
	want := c.ViewMatrix().Mul4(mgl64.Translate3D(0, 0, 2)).Mul4(v.PersistentMatrix())
	if !f.ModelView.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("ModelView = %v, want %v", f.ModelView, want)
	}
	if !f.Projection.ApproxEqualThreshold(c.ProjectionMatrix(), 1e-12) {
		t.Errorf("Projection = %v, want %v", f.Projection, c.ProjectionMatrix())
	}
	if f.Viewport != [4]int{0, 0, 800, 600} {
		t.Errorf("Viewport = %v, want [0 0 800 600]", f.Viewport)
	}
}

func TestRenderIncludesLiveGesture(t *testing.T) {
	mem := renderer.NewMemoryBackend(4)
	v := newTestViewport(t, WithRenderer(renderer.NewRenderer(renderer.WithBackend(mem))))
	v.HandleRotate(EventPush, 400, 300)
	v.HandleRotate(EventDrag, 450, 300)
	if err := v.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	f, _ := mem.Last()
	want := v.Camera().ViewMatrix().Mul4(v.Composed())
	if !f.ModelView.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("ModelView = %v, want %v", f.ModelView, want)
	}
}
