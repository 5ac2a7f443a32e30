package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNewLightDefaults(t *testing.T) {
	l := NewLight(LightTypePoint)
	want := [3]float32{1, 1, 1}
	if l.Color() != want || l.CoolColor() != want || l.Intensity() != 1 || !l.Enabled() {
		t.Errorf("defaults: color %v cool %v intensity %v enabled %v", l.Color(), l.CoolColor(), l.Intensity(), l.Enabled())
	}
}

func TestColorIsWarmColor(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithWarmCool([3]float32{1, 0.5, 0}, [3]float32{0, 0, 1}))
	if l.Color() != l.WarmColor() {
		t.Errorf("Color() = %v, WarmColor() = %v", l.Color(), l.WarmColor())
	}
	l.SetWarmColor(0.2, 0.2, 0.2)
	if l.Color() != ([3]float32{0.2, 0.2, 0.2}) || l.CoolColor() != ([3]float32{0, 0, 1}) {
		t.Errorf("after SetWarmColor: Color() = %v, CoolColor() = %v", l.Color(), l.CoolColor())
	}
	l.SetColor(1, 0, 0)
	if l.WarmColor() != l.CoolColor() {
		t.Errorf("SetColor left warm %v and cool %v different", l.WarmColor(), l.CoolColor())
	}
}

func TestIlluminates(t *testing.T) {
	spot := NewLight(LightTypeSpot, WithPosition(0, 10, 0), WithDirection(0, -1, 0), WithRange(20), WithSpotCone(10, 30))
	tests := []struct {
		name string
		l    Light
		p    [3]float32
		want bool
	}{
		{"ambient", NewLight(LightTypeAmbient), [3]float32{1e6, 0, 0}, true},
		{"directional", NewHeadlight(), [3]float32{5, 5, 5}, true},
		{"point in range", NewLight(LightTypePoint, WithRange(5)), [3]float32{3, 4, 0}, true},
		{"point out of range", NewLight(LightTypePoint, WithRange(5)), [3]float32{3, 4, 1}, false},
		{"spot on axis", spot, [3]float32{0, 0, 0}, true},
		{"spot outside cone", spot, [3]float32{10, 5, 0}, false},
		{"spot beyond range", spot, [3]float32{0, -15, 0}, false},
		{"disabled", NewLight(LightTypeAmbient, WithEnabled(false)), [3]float32{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.l.Illuminates(tc.p); got != tc.want {
				t.Errorf("Illuminates(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestCosFactor(t *testing.T) {
	up := [3]float32{0, 1, 0}
	sun := NewLight(LightTypeDirectional, WithDirection(0, -1, 0))
	if got := sun.CosFactor([3]float32{}, up); math.Abs(float64(got-1)) > 1e-6 {
		t.Errorf("overhead sun CosFactor = %v, want 1", got)
	}
	below := NewLight(LightTypePoint, WithPosition(0, -5, 0))
	if got := below.CosFactor([3]float32{}, up); got != 0 {
		t.Errorf("light below surface CosFactor = %v, want 0", got)
	}
	if got := NewLight(LightTypeAmbient).CosFactor([3]float32{}, up); got != 1 {
		t.Errorf("ambient CosFactor = %v, want 1", got)
	}
}

func TestSetters(t *testing.T) {
	l := NewLight(LightTypeSpot)
	l.SetPosition(1, 2, 3)
	l.SetDirection(0, 0, 2)
	l.SetIntensity(4)
	l.SetRange(7)
	l.SetSpotCone(0, 60)
	l.SetEnabled(false)
	opt := cmpopts.EquateApprox(0, 1e-6)
	got := []float32{l.Position()[0], l.Direction()[2], l.Intensity(), l.Range(), l.InnerCone(), l.OuterCone()}
	if diff := cmp.Diff([]float32{1, 1, 4, 7, 1, 0.5}, got, opt); diff != "" {
		t.Errorf("setter mismatch (-want +got):\n%s", diff)
	}
	if l.Enabled() {
		t.Error("Enabled() = true after SetEnabled(false)")
	}
}

func TestMarshalLightBuffer(t *testing.T) {
	lights := []Light{
		NewLight(LightTypeAmbient, WithColor(0.1, 0.2, 0.3), WithIntensity(2)),
		NewHeadlight(),
		NewLight(LightTypePoint, WithEnabled(false)),
		NewLight(LightTypeSpot, WithIntensity(3)),
	}
	buf := MarshalLightBuffer(lights)
	if len(buf) != 16+2*64 {
		t.Fatalf("len(buf) = %d, want %d", len(buf), 16+2*64)
	}
	if n := binary.LittleEndian.Uint32(buf[12:16]); n != 2 {
		t.Errorf("LightCount = %d, want 2", n)
	}
	ambientG := math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8]))
	if math.Abs(float64(ambientG-0.4)) > 1e-6 {
		t.Errorf("ambient green = %v, want 0.4", ambientG)
	}
	if typ := binary.LittleEndian.Uint32(buf[16+12 : 16+16]); typ != uint32(LightTypeDirectional) {
		t.Errorf("first entry type = %d, want directional", typ)
	}
	spotIntensity := math.Float32frombits(binary.LittleEndian.Uint32(buf[80+28 : 80+32]))
	if spotIntensity != 3 {
		t.Errorf("second entry intensity = %v, want 3", spotIntensity)
	}
	if (&GPULight{}).Size() != 64 || (&GPULightHeader{}).Size() != 16 {
		t.Error("unexpected GPU struct sizes")
	}
}

func TestLightTypeString(t *testing.T) {
	if LightTypeSpot.String() != "spot" || LightType(9).String() != "LightType(9)" {
		t.Errorf("unexpected names %q, %q", LightTypeSpot.String(), LightType(9).String())
	}
}
