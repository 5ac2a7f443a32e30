package trace

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewport/engine/viewport"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
)

var quiet = viewport.WithLogger(log.New(io.Discard, "", 0))

const rotateScript = `{
	"name": "rotate-then-dolly",
	"width": 800,
	"height": 600,
	"steps": [
		{"action": "rotate", "event": "push", "x": 400, "y": 300},
		{"action": "current", "event": "drag", "x": 450, "y": 300},
		{"action": "pan", "event": "push", "x": 10, "y": 10},
		{"action": "current", "event": "release", "x": 450, "y": 300},
		{"action": "dolly", "event": "push", "x": 400, "y": 300},
		{"action": "dolly", "event": "release", "x": 480, "y": 300}
	]
}`

func TestLoadSingleAndArray(t *testing.T) {
	one, err := Load(strings.NewReader(rotateScript))
	if err != nil {
		t.Fatalf("Load(object): %v", err)
	}
	if len(one) != 1 || one[0].Name != "rotate-then-dolly" || len(one[0].Steps) != 6 {
		t.Fatalf("Load(object) = %+v", one)
	}

	many, err := Load(strings.NewReader("[" + rotateScript + "," + rotateScript + "]"))
	if err != nil {
		t.Fatalf("Load(array): %v", err)
	}
	if len(many) != 2 {
		t.Errorf("len(Load(array)) = %d, want 2", len(many))
	}

	if _, err := Load(strings.NewReader("{not json")); err == nil {
		t.Error("Load accepted malformed JSON")
	}
}

func TestLoadFileNamesUnnamedScripts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scripts.json")
	if err := os.WriteFile(path, []byte(`[{"width": 10, "height": 10, "steps": []}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	scripts, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if want := path + "#0"; scripts[0].Name != want {
		t.Errorf("Name = %q, want %q", scripts[0].Name, want)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile(missing) error = %v, want ErrNotExist", err)
	}
}

func TestRun(t *testing.T) {
	scripts, err := Load(strings.NewReader(rotateScript))
	if err != nil {
		t.Fatal(err)
	}
	res, err := Run(scripts[0], quiet)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	vp, err := viewport.New(800, 600, quiet)
	if err != nil {
		t.Fatal(err)
	}
	want := Result{
		Name:       "rotate-then-dolly",
		Mode:       "none",
		View:       "perspective",
		Operations: vp.OperationCount() + 1,
		Accepted:   5,
		Rejected:   1,
	}
	got := res
	got.Matrix, got.Dolly, got.Drift = [16]float64{}, 0, 0
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Run mismatch (-want +got):\n%s", diff)
	}
	if res.Dolly < 1.99 || res.Dolly > 2.01 {
		t.Errorf("Dolly = %v, want 2", res.Dolly)
	}
	if mgl64.Mat4(res.Matrix) == vp.PersistentMatrix() {
		t.Error("rotation did not change the persistent matrix")
	}
}

func TestRunViewAndResizeSteps(t *testing.T) {
	s := Script{
		Name: "ortho", Width: 800, Height: 600, View: "front",
		Steps: []Step{
			{Action: ActionResize, Width: 0, Height: 600},
			{Action: ActionResize, Width: 1600, Height: 600},
			{Action: "zoom", Event: "push", X: 800, Y: 300},
			{Action: ActionCancel},
			{Action: ActionSwitch, View: "top"},
			{Action: "pan", Event: "release", X: 100, Y: 100},
		},
	}
	res, err := Run(s, quiet)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.View != "top" || res.Operations != 1 || res.Rejected != 1 || res.Accepted != 5 {
		t.Errorf("Run = %+v", res)
	}
}

func TestRunRejectsMalformedSteps(t *testing.T) {
	tests := []struct {
		name string
		step Step
		want error
	}{
		{"unknown action", Step{Action: "spin", Event: "push"}, ErrUnknownStep},
		{"none action", Step{Action: "none", Event: "push"}, ErrUnknownStep},
		{"unknown event", Step{Action: "rotate", Event: "hover"}, viewport.ErrUnknownEvent},
		{"unknown view", Step{Action: ActionSwitch, View: "iso"}, viewport.ErrUnknownView},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Run(Script{Name: tc.name, Width: 10, Height: 10, Steps: []Step{tc.step}}, quiet)
			if !errors.Is(err, tc.want) {
				t.Errorf("Run error = %v, want %v", err, tc.want)
			}
		})
	}

	if _, err := Run(Script{Name: "bad size", Width: 0, Height: 10}, quiet); !errors.Is(err, viewport.ErrInvalidDimensions) {
		t.Errorf("Run(bad size) error = %v, want ErrInvalidDimensions", err)
	}
}

func TestRunAllPreservesOrder(t *testing.T) {
	var scripts []Script
	for i := range 12 {
		scripts = append(scripts, Script{
			Name: fmt.Sprintf("s%02d", i), Width: 800, Height: 600, View: "front",
			Steps: []Step{
				{Action: "pan", Event: "push", X: 400, Y: 300},
				{Action: "pan", Event: "release", X: 400 + 10*i, Y: 300},
			},
		})
	}
	scripts[5].Width = -1

	r := NewRunner(WithWorkers(4), WithViewportOptions(quiet))
	results := r.RunAll(scripts)
	if len(results) != len(scripts) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(scripts))
	}
	for i, res := range results {
		if res.Name != scripts[i].Name {
			t.Errorf("results[%d].Name = %q, want %q", i, res.Name, scripts[i].Name)
		}
		if i == 5 {
			if res.Error == "" {
				t.Error("results[5].Error is empty for an invalid script")
			}
			continue
		}
		// Front view at 800x600: 10 px is 1/30 of a unit along X.
		want := float64(i) / 30
		if got := res.Matrix[12]; got < want-1e-9 || got > want+1e-9 {
			t.Errorf("results[%d] translation = %v, want %v", i, got, want)
		}
	}

	again := r.RunAll(scripts[:2])
	if len(again) != 2 || again[1].Name != "s01" {
		t.Errorf("second RunAll = %+v", again)
	}
}

func mixedViewScripts(n int) []Script {
	views := []string{"perspective", "front", "right", "top", "back", "left", "bottom"}
	scripts := make([]Script, n)
	for i := range scripts {
		scripts[i] = Script{
			Name: fmt.Sprintf("view%03d", i), Width: 800, Height: 600, View: views[i%len(views)],
			Steps: []Step{
				{Action: "zoom", Event: "push", X: 400, Y: 300},
				{Action: "zoom", Event: "release", X: 420, Y: 300},
			},
		}
	}
	return scripts
}

func TestRunSharedOptionsWithSpareCapacity(t *testing.T) {
	options := make([]viewport.ViewportBuilderOption, 0, 8)
	options = append(options, quiet)
	scripts := mixedViewScripts(200)

	results := make([]Result, len(scripts))
	var wg sync.WaitGroup
	for i := range scripts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := Run(scripts[i], options...)
			if err != nil {
				t.Errorf("Run(%s): %v", scripts[i].Name, err)
			}
			results[i] = res
		}(i)
	}
	wg.Wait()

	if len(options) != 1 {
		t.Fatalf("len(options) = %d after Run, want 1", len(options))
	}
	for i, res := range results {
		if res.View != scripts[i].View {
			t.Errorf("results[%d].View = %q, want %q", i, res.View, scripts[i].View)
		}
	}
}

func TestRunAllSharedOptionsWithSpareCapacity(t *testing.T) {
	options := make([]viewport.ViewportBuilderOption, 0, 8)
	options = append(options, quiet)
	scripts := mixedViewScripts(300)

	results := NewRunner(WithWorkers(8), WithViewportOptions(options...)).RunAll(scripts)
	for i, res := range results {
		if res.Error != "" {
			t.Errorf("results[%d].Error = %q", i, res.Error)
		}
		if res.View != scripts[i].View {
			t.Errorf("results[%d].View = %q, want %q", i, res.View, scripts[i].View)
		}
	}
}
