// Package trace replays recorded gesture scripts against fresh viewports. Scripts are plain
// JSON so interaction bugs can be reproduced and regression-tested without a window.
package trace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/Carmen-Shannon/oxy-viewport/engine/viewport"
)

// ErrUnknownStep is returned when a script step names no known action.
var ErrUnknownStep = errors.New("trace: unknown step")

// Step actions beyond the four gesture modes.
const (
	ActionCurrent = "current"
	ActionResize  = "resize"
	ActionSwitch  = "switch"
	ActionCancel  = "cancel"
)

// Step is one entry of a script. Gesture steps (rotate, pan, zoom, dolly, current) use
// Event, X and Y; resize uses Width and Height; switch uses View.
type Step struct {
	Action string `json:"action"`
	Event  string `json:"event,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	View   string `json:"view,omitempty"`
}

// Script is a named sequence of steps replayed against a viewport of the given size.
type Script struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	View   string `json:"view,omitempty"`
	Steps  []Step `json:"steps"`
}

// Result is the viewport state after a script has run.
type Result struct {
	Name       string      `json:"name"`
	Mode       string      `json:"mode"`
	View       string      `json:"view"`
	Matrix     [16]float64 `json:"matrix"`
	Operations int         `json:"operations"`
	Dolly      float64     `json:"dolly"`
	Drift      float64     `json:"drift"`
	Accepted   int         `json:"accepted"`
	Rejected   int         `json:"rejected"`
	Error      string      `json:"error,omitempty"`
}

// Load decodes scripts from r. The input is either a single script object or an array of
// scripts.
//
// Parameters:
//   - r: JSON source
//
// Returns:
//   - []Script: the decoded scripts
//   - error: decoding error
func Load(r io.Reader) ([]Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scripts: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var scripts []Script
		if err := json.Unmarshal(data, &scripts); err != nil {
			return nil, fmt.Errorf("decode scripts: %w", err)
		}
		return scripts, nil
	}
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return []Script{s}, nil
}

// LoadFile reads scripts from a JSON file. Scripts without a name are named after the file.
//
// Parameters:
//   - path: file path
//
// Returns:
//   - []Script: the decoded scripts
//   - error: error opening or decoding the file
func LoadFile(path string) ([]Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scripts, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i := range scripts {
		if scripts[i].Name == "" {
			scripts[i].Name = fmt.Sprintf("%s#%d", path, i)
		}
	}
	return scripts, nil
}

// Run replays s against a new viewport built with options. Handler rejections are counted,
// not treated as errors; malformed steps abort the replay.
//
// Parameters:
//   - s: the script to replay
//   - options: viewport options applied before the script's own view
//
// Returns:
//   - Result: final viewport state
//   - error: construction error or the first malformed step
func Run(s Script, options ...viewport.ViewportBuilderOption) (Result, error) {
	res := Result{Name: s.Name}
	if s.View != "" {
		view, err := viewport.ParseView(s.View)
		if err != nil {
			return res, fmt.Errorf("script %q: %w", s.Name, err)
		}
		// Clipped so concurrent replays sharing one option slice never write its spare capacity.
		options = append(slices.Clip(options), viewport.WithView(view))
	}

	vp, err := viewport.New(s.Width, s.Height, options...)
	if err != nil {
		return res, fmt.Errorf("script %q: %w", s.Name, err)
	}

	for i, step := range s.Steps {
		accepted, err := apply(vp, step)
		if err != nil {
			return res, fmt.Errorf("script %q step %d: %w", s.Name, i, err)
		}
		if accepted {
			res.Accepted++
		} else {
			res.Rejected++
		}
	}

	res.Mode = vp.Current().String()
	res.View = vp.View().String()
	res.Matrix = [16]float64(vp.PersistentMatrix())
	res.Operations = vp.OperationCount()
	res.Dolly = vp.DollyValue()
	res.Drift = vp.Drift()
	return res, nil
}

// apply executes one step. The returned bool reports whether the viewport accepted it.
func apply(vp *viewport.Viewport, step Step) (bool, error) {
	switch step.Action {
	case ActionResize:
		if err := vp.Resize(step.Width, step.Height); err != nil {
			return false, nil
		}
		return true, nil
	case ActionSwitch:
		view, err := viewport.ParseView(step.View)
		if err != nil {
			return false, err
		}
		return true, vp.SwitchTo(view)
	case ActionCancel:
		vp.CancelGesture()
		return true, nil
	}

	event, err := viewport.ParseEvent(step.Event)
	if err != nil {
		return false, err
	}
	if step.Action == ActionCurrent {
		return vp.SendToCurrent(event, step.X, step.Y), nil
	}
	mode, err := viewport.ParseMode(step.Action)
	if err != nil || mode == viewport.ModeNone {
		return false, fmt.Errorf("%w: %q", ErrUnknownStep, step.Action)
	}
	return vp.Handle(mode, event, step.X, step.Y), nil
}
