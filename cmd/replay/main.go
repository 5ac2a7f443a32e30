package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-viewport/config"
	"github.com/Carmen-Shannon/oxy-viewport/engine/trace"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	fov := flag.Float64("fov", 0, "Perspective field of view in degrees (default: 60)")
	dollyScale := flag.Float64("dolly", 0, "Dolly scale in scene units per viewport height")
	output := flag.String("output", "", "Write results to this file (default: stdout)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: replay [flags] script.json [script.json ...]\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

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
		Fov:        *fov,
		DollyScale: *dollyScale,
		Workers:    *workers,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	vpOptions, err := cfg.ViewportOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var scripts []trace.Script
	for _, path := range flag.Args() {
		s, err := trace.LoadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading scripts: %v\n", err)
			os.Exit(1)
		}
		scripts = append(scripts, s...)
	}

	start := time.Now()
	runner := trace.NewRunner(
		trace.WithWorkers(cfg.Workers),
		trace.WithViewportOptions(vpOptions...),
	)
	results := runner.RunAll(scripts)

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %s\n", res.Name, res.Error)
		}
	}
	fmt.Fprintf(os.Stderr, "Replayed %d scripts on %d workers in %v (%d failed)\n",
		len(results), cfg.Workers, time.Since(start).Round(time.Millisecond), failed)
	if failed > 0 {
		os.Exit(1)
	}
}
