// Package config loads viewer and replay settings from a JSON file, overlays command line
// flags and fills in defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-viewport/engine/control"
	"github.com/Carmen-Shannon/oxy-viewport/engine/input"
	"github.com/Carmen-Shannon/oxy-viewport/engine/transform"
	"github.com/Carmen-Shannon/oxy-viewport/engine/viewport"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Default window resize limits.
const (
	DefaultMinWidth  = 320
	DefaultMinHeight = 240
	DefaultMaxWidth  = 3840
	DefaultMaxHeight = 2160
)

// Config holds all configurable window, viewport and replay settings.
type Config struct {
	// Window
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`

	// Resize limits applied to the viewer window.
	MinWidth  int `json:"min_width"`
	MinHeight int `json:"min_height"`
	MaxWidth  int `json:"max_width"`
	MaxHeight int `json:"max_height"`

	// Viewport
	View         string  `json:"view"`
	Fov          float64 `json:"fov"`
	Near         float64 `json:"near"`
	Far          float64 `json:"far"`
	DollyScale   float64 `json:"dolly_scale"`
	PanScale     float64 `json:"pan_scale"`
	ZoomScale    float64 `json:"zoom_scale"`
	HistoryLimit int     `json:"history_limit"`

	// Bindings maps button chords ("left", "shift+right") to mode names.
	Bindings map[string]string `json:"bindings"`

	// Engine
	Profiling  bool `json:"profiling"`
	FrameLimit int  `json:"frame_limit"`

	// Replay
	Workers int `json:"workers"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width      int
	Height     int
	View       string
	Fov        float64
	DollyScale float64
	Profiling  bool
	FrameLimit int
	Workers    int
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies CLI flags and fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.View != "" {
		c.View = flags.View
	}
	if flags.Fov > 0 {
		c.Fov = flags.Fov
	}
	if flags.DollyScale > 0 {
		c.DollyScale = flags.DollyScale
	}
	if flags.Profiling {
		c.Profiling = true
	}
	if flags.FrameLimit > 0 {
		c.FrameLimit = flags.FrameLimit
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Defaults
	if c.Width == 0 {
		c.Width = 1280
	}
	if c.Height == 0 {
		c.Height = 720
	}
	if c.Title == "" {
		c.Title = "oxy-viewport"
	}
	if c.MinWidth == 0 {
		c.MinWidth = DefaultMinWidth
	}
	if c.MinHeight == 0 {
		c.MinHeight = DefaultMinHeight
	}
	if c.MaxWidth == 0 {
		c.MaxWidth = DefaultMaxWidth
	}
	if c.MaxHeight == 0 {
		c.MaxHeight = DefaultMaxHeight
	}
	if c.View == "" {
		c.View = viewport.ViewPerspective.String()
	}
	if c.Fov == 0 {
		c.Fov = viewport.DefaultFieldOfView
	}
	if c.Near == 0 && c.Far == 0 {
		c.Near, c.Far = viewport.DefaultNear, viewport.DefaultFar
	}
	if c.DollyScale == 0 {
		c.DollyScale = control.DefaultDollyScale
	}
	if c.PanScale == 0 {
		c.PanScale = 1
	}
	if c.ZoomScale == 0 {
		c.ZoomScale = 1
	}
	if c.HistoryLimit == 0 {
		c.HistoryLimit = transform.DefaultHistoryLimit
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate checks a resolved config.
//
// Returns:
//   - error: wraps ErrInvalid describing the first bad field
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalid, c.Width, c.Height)
	}
	if c.MinWidth <= 0 || c.MinHeight <= 0 || c.MaxWidth < c.MinWidth || c.MaxHeight < c.MinHeight {
		return fmt.Errorf("%w: size limits %dx%d..%dx%d must satisfy 0 < min <= max",
			ErrInvalid, c.MinWidth, c.MinHeight, c.MaxWidth, c.MaxHeight)
	}
	if c.Width < c.MinWidth || c.Width > c.MaxWidth || c.Height < c.MinHeight || c.Height > c.MaxHeight {
		return fmt.Errorf("%w: size %dx%d outside limits %dx%d..%dx%d",
			ErrInvalid, c.Width, c.Height, c.MinWidth, c.MinHeight, c.MaxWidth, c.MaxHeight)
	}
	if _, err := viewport.ParseView(c.View); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Fov <= 0 || c.Fov >= 180 {
		return fmt.Errorf("%w: fov %v must be in (0, 180)", ErrInvalid, c.Fov)
	}
	if c.Near <= 0 || c.Far <= c.Near {
		return fmt.Errorf("%w: near/far %v/%v must satisfy 0 < near < far", ErrInvalid, c.Near, c.Far)
	}
	if c.DollyScale <= 0 {
		return fmt.Errorf("%w: dolly_scale %v must be positive", ErrInvalid, c.DollyScale)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("%w: history_limit %d must not be negative", ErrInvalid, c.HistoryLimit)
	}
	if c.FrameLimit < 0 {
		return fmt.Errorf("%w: frame_limit %d must not be negative", ErrInvalid, c.FrameLimit)
	}
	if _, err := input.FromMap(c.Bindings); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ViewportOptions converts the viewport settings into builder options.
//
// Returns:
//   - []viewport.ViewportBuilderOption: options for viewport.New
//   - error: error if the view name is unknown
func (c *Config) ViewportOptions() ([]viewport.ViewportBuilderOption, error) {
	view, err := viewport.ParseView(c.View)
	if err != nil {
		return nil, err
	}
	return []viewport.ViewportBuilderOption{
		viewport.WithView(view),
		viewport.WithFieldOfView(c.Fov),
		viewport.WithNearFar(c.Near, c.Far),
		viewport.WithDollyScale(c.DollyScale),
		viewport.WithPanScale(c.PanScale),
		viewport.WithZoomScale(c.ZoomScale),
		viewport.WithHistoryLimit(c.HistoryLimit),
	}, nil
}

// InputBindings returns the button table with the config's overrides applied.
//
// Returns:
//   - *input.Bindings: the binding table
//   - error: error if a chord or mode name is invalid
func (c *Config) InputBindings() (*input.Bindings, error) {
	return input.FromMap(c.Bindings)
}
