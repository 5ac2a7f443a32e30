package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Carmen-Shannon/oxy-viewport/config"
	"github.com/Carmen-Shannon/oxy-viewport/engine"
	"github.com/Carmen-Shannon/oxy-viewport/engine/input"
	"github.com/Carmen-Shannon/oxy-viewport/engine/light"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-viewport/engine/viewport"
	"github.com/Carmen-Shannon/oxy-viewport/engine/window"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	width := flag.Int("width", 0, "Window width in pixels (default: 1280)")
	height := flag.Int("height", 0, "Window height in pixels (default: 720)")
	view := flag.String("view", "", "Initial view: perspective, front, back, left, right, top, bottom")
	fov := flag.Float64("fov", 0, "Perspective field of view in degrees (default: 60)")
	dollyScale := flag.Float64("dolly", 0, "Dolly scale in scene units per viewport height")
	profiling := flag.Bool("profile", false, "Log frame statistics once per second")
	frameLimit := flag.Int("fps", 0, "Frame rate cap (default: uncapped)")
	frames := flag.Uint64("frames", 0, "Exit after this many frames (default: run until closed)")
	vsync := flag.Bool("vsync", true, "Wait for vertical blank when presenting")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Width:      *width,
		Height:     *height,
		View:       *view,
		Fov:        *fov,
		DollyScale: *dollyScale,
		Profiling:  *profiling,
		FrameLimit: *frameLimit,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *frames, *vsync); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, frames uint64, vsync bool) error {
	logger := log.Default()

	bindings, err := cfg.InputBindings()
	if err != nil {
		return err
	}
	vpOptions, err := cfg.ViewportOptions()
	if err != nil {
		return err
	}

	win := window.NewWindow(
		window.WithTitle(cfg.Title),
		window.WithSize(cfg.Width, cfg.Height),
		window.WithSizeLimits(cfg.MinWidth, cfg.MinHeight, cfg.MaxWidth, cfg.MaxHeight),
	)

	backend, err := gpu.NewBackend(win.SurfaceDescriptor(),
		gpu.WithVSync(vsync),
		gpu.WithLogger(logger),
		gpu.WithLights(
			light.NewLight(light.LightTypeAmbient, light.WithIntensity(0.15)),
			light.NewHeadlight(),
		),
	)
	if err != nil {
		_ = win.Close()
		return fmt.Errorf("create gpu backend: %w", err)
	}
	r := renderer.NewRenderer(renderer.WithBackend(backend))

	e, err := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithLogger(logger),
		engine.WithProfiling(cfg.Profiling),
		engine.WithRenderFrameLimit(float64(cfg.FrameLimit)),
		engine.WithMaxFrames(frames),
		engine.WithViewportOptions(append(vpOptions, viewport.WithRenderer(r))...),
		engine.WithRouterOptions(input.WithBindings(bindings)),
	)
	if err != nil {
		r.Release()
		_ = win.Close()
		return err
	}

	logger.Printf("[Viewer] %dx%d, %s view; left rotate, middle pan, right zoom, shift+right dolly, 0-6 views, R reset",
		cfg.Width, cfg.Height, e.Viewport().View())
	e.Run()
	e.Quit()
	return nil
}
