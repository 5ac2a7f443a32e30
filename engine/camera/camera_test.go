package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-12)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	if c.Projection() != ProjectionPerspective || c.Fov() != 60 || c.Aspect() != 1 {
		t.Errorf("Projection() = %s, Fov() = %v, Aspect() = %v", c.Projection(), c.Fov(), c.Aspect())
	}
	if near, far := c.NearFar(); near != 1 || far != 1000 {
		t.Errorf("NearFar() = %v, %v, want 1, 1000", near, far)
	}
	if w, h, keep := c.OrthographicViewVolume(); w != 2 || h != 2 || !keep {
		t.Errorf("OrthographicViewVolume() = %v, %v, %v", w, h, keep)
	}
}

func TestBuilderOptions(t *testing.T) {
	c := NewCamera(WithEye(1, 2, 3), WithUp(0, 0, 1), WithFov(45), WithAspect(2), WithNearFar(0.5, 50), WithOrthographic())
	if c.Eye() != (mgl64.Vec3{1, 2, 3}) || c.Up() != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("Eye() = %v, Up() = %v", c.Eye(), c.Up())
	}
	if c.Fov() != 45 || c.Aspect() != 2 || c.Projection() != ProjectionOrthographic {
		t.Errorf("Fov() = %v, Aspect() = %v, Projection() = %s", c.Fov(), c.Aspect(), c.Projection())
	}
	if near, far := c.NearFar(); near != 0.5 || far != 50 {
		t.Errorf("NearFar() = %v, %v", near, far)
	}
}

func TestAdjustPerspective(t *testing.T) {
	c := NewCamera(WithEye(0, 0, 10), WithAspect(2))
	hh := 10 * math.Tan(mgl64.DegToRad(30))
	x, y, z := c.Adjust(1, -1, 0.5)
	if diff := cmp.Diff([]float64{2 * hh, -hh, 0.5}, []float64{x, y, z}, approx); diff != "" {
		t.Errorf("Adjust mismatch (-want +got):\n%s", diff)
	}
	nx, ny, nz := c.Unadjust(x, y, z)
	if diff := cmp.Diff([]float64{1, -1, 0.5}, []float64{nx, ny, nz}, approx); diff != "" {
		t.Errorf("Unadjust mismatch (-want +got):\n%s", diff)
	}
}

func TestAdjustOrthographicKeepsAspect(t *testing.T) {
	tests := []struct {
		name   string
		aspect float64
		want   []float64
	}{
		{"wide", 2, []float64{2, 1}},
		{"tall", 0.5, []float64{1, 2}},
		{"square", 1, []float64{1, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera(WithOrthographic(), WithAspect(tc.aspect))
			x, y, _ := c.Adjust(1, 1, 0)
			if diff := cmp.Diff(tc.want, []float64{x, y}, approx); diff != "" {
				t.Errorf("Adjust mismatch (-want +got):\n%s", diff)
			}
		})
	}

	c := NewCamera(WithOrthographic(), WithAspect(2))
	c.SetOrthographicViewVolume(4, 2, false)
	x, y, _ := c.Adjust(1, 1, 0)
	if x != 2 || y != 1 {
		t.Errorf("Adjust without keepAspect = %v, %v, want 2, 1", x, y)
	}
}

func TestProjectionSwitch(t *testing.T) {
	c := NewCamera()
	c.SetPerspectiveViewVolume(90, 1.5)
	want := mgl64.Perspective(mgl64.DegToRad(90), 1.5, 1, 1000)
	if !c.ProjectionMatrix().ApproxEqualThreshold(want, 1e-12) {
		t.Errorf("perspective ProjectionMatrix() = %v, want %v", c.ProjectionMatrix(), want)
	}

	c.MakeOrthographic()
	c.SetNearFar(2, 20)
	want = mgl64.Ortho(-1.5, 1.5, -1, 1, 2, 20)
	if !c.ProjectionMatrix().ApproxEqualThreshold(want, 1e-12) {
		t.Errorf("orthographic ProjectionMatrix() = %v, want %v", c.ProjectionMatrix(), want)
	}

	c.MakePerspective()
	if c.Projection() != ProjectionPerspective {
		t.Errorf("Projection() = %s, want perspective", c.Projection())
	}
}

func TestViewMatrix(t *testing.T) {
	c := NewCamera()
	c.SetEye(0, 10, 0)
	c.SetCenter(0, 0, 0)
	c.SetUpVector(0, 0, -1)
	got := mgl64.TransformCoordinate(mgl64.Vec3{0, 0, 0}, c.ViewMatrix())
	if diff := cmp.Diff(mgl64.Vec3{0, 0, -10}, got, approx); diff != "" {
		t.Errorf("center in eye space mismatch (-want +got):\n%s", diff)
	}
	if c.Center() != (mgl64.Vec3{}) {
		t.Errorf("Center() = %v", c.Center())
	}
}

func TestApplyTransformLoadsProjection(t *testing.T) {
	c := NewCamera(WithAspect(4.0 / 3.0))
	r := renderer.NewRenderer()
	c.ApplyTransform(r)
	if got := r.Frame().Projection; !got.ApproxEqualThreshold(c.ProjectionMatrix(), 0) {
		t.Errorf("Projection = %v, want %v", got, c.ProjectionMatrix())
	}
}

func TestProjectionString(t *testing.T) {
	if ProjectionOrthographic.String() != "orthographic" || Projection(5).String() != "Projection(5)" {
		t.Errorf("unexpected names %q, %q", ProjectionOrthographic.String(), Projection(5).String())
	}
}
