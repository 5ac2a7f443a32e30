package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestScreenToNDC(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		want   [2]float64
	}{
		{"top left", 0, 0, [2]float64{-1, 1}},
		{"center", 400, 300, [2]float64{0, 0}},
		{"bottom right", 800, 600, [2]float64{1, -1}},
		{"quarter", 600, 150, [2]float64{0.5, 0.5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := ScreenToNDC(tc.px, tc.py, 800, 600)
			if diff := cmp.Diff(tc.want, [2]float64{x, y}); diff != "" {
				t.Errorf("ScreenToNDC mismatch (-want +got):\n%s", diff)
			}
			px, py := NDCToScreen(x, y, 800, 600)
			if px != tc.px || py != tc.py {
				t.Errorf("NDCToScreen(%v, %v) = %v, %v, want %v, %v", x, y, px, py, tc.px, tc.py)
			}
		})
	}
}

func TestInvert(t *testing.T) {
	m := mgl64.Translate3D(1, 2, 3).Mul4(mgl64.Scale3D(2, 2, 2))
	inv, ok := Invert(m)
	if !ok {
		t.Fatal("Invert reported singular for an affine matrix")
	}
	if !inv.Mul4(m).ApproxEqualThreshold(mgl64.Ident4(), 1e-12) {
		t.Errorf("inv * m = %v, want identity", inv.Mul4(m))
	}

	inv, ok = Invert(mgl64.Scale3D(0, 1, 1))
	if ok {
		t.Fatal("Invert accepted a singular matrix")
	}
	if inv != mgl64.Ident4() {
		t.Errorf("Invert(singular) = %v, want identity", inv)
	}

	tiny := mgl64.Scale3D(4.5e-5, 4.5e-5, 4.5e-5)
	inv, ok = Invert(tiny)
	if !ok {
		t.Fatalf("Invert reported singular for a uniform scale with det %v", tiny.Det())
	}
	if !inv.Mul4(tiny).ApproxEqualThreshold(mgl64.Ident4(), 1e-9) {
		t.Errorf("inv * tiny = %v, want identity", inv.Mul4(tiny))
	}

	nan := mgl64.Ident4()
	nan[0] = math.NaN()
	if _, ok := Invert(nan); ok {
		t.Error("Invert accepted a NaN matrix")
	}
}

func TestLookAtRotation(t *testing.T) {
	eye := mgl64.Vec3{50, 50, 50}
	m := LookAtRotation(eye, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	if got := m.Col(3); got != (mgl64.Vec4{0, 0, 0, 1}) {
		t.Errorf("translation column = %v, want zero", got)
	}
	got := mgl64.TransformNormal(eye.Normalize(), m)
	if diff := cmp.Diff(mgl64.Vec3{0, 0, 1}, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("eye direction mismatch (-want +got):\n%s", diff)
	}
}

func TestColumnMajor32(t *testing.T) {
	m := mgl64.Translate3D(1, 2, 3)
	got := ColumnMajor32(m)
	if got[12] != 1 || got[13] != 2 || got[14] != 3 || got[15] != 1 {
		t.Errorf("ColumnMajor32 = %v, want translation in elements 12..14", got)
	}
}

func TestMaxAbsDiff(t *testing.T) {
	a := mgl64.Ident4()
	b := mgl64.Ident4()
	b[5] = 1.5
	b[9] = -0.25
	if got := MaxAbsDiff(a, b); got != 0.5 {
		t.Errorf("MaxAbsDiff = %v, want 0.5", got)
	}
}

func TestClampAndCoalesce(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Clamp(5, 0, 3) = %v", got)
	}
	if got := Clamp(-1.5, -1.0, 1.0); got != -1.0 {
		t.Errorf("Clamp(-1.5, -1, 1) = %v", got)
	}
	if got := Coalesce(0, 0, 7, 9); got != 7 {
		t.Errorf("Coalesce = %v, want 7", got)
	}
}
