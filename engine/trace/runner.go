package trace

import (
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewport/engine/viewport"
)

// Runner replays batches of scripts in parallel on a worker pool. Each script gets its own
// viewport, so scripts never share state. The pool is reused across RunAll calls.
type Runner struct {
	pool    worker.DynamicWorkerPool
	options []viewport.ViewportBuilderOption
}

// RunnerOption is a functional option for configuring a Runner.
type RunnerOption func(*runnerConfig)

type runnerConfig struct {
	workers     int
	queue       int
	idleTimeout time.Duration
	options     []viewport.ViewportBuilderOption
}

// WithWorkers sets the maximum number of concurrent replays.
//
// Parameters:
//   - n: worker count (non-positive selects runtime.NumCPU)
//
// Returns:
//   - RunnerOption: option function to apply
func WithWorkers(n int) RunnerOption {
	return func(c *runnerConfig) {
		c.workers = n
	}
}

// WithViewportOptions sets the options every replayed viewport is built with.
//
// Parameters:
//   - options: viewport options
//
// Returns:
//   - RunnerOption: option function to apply
func WithViewportOptions(options ...viewport.ViewportBuilderOption) RunnerOption {
	return func(c *runnerConfig) {
		c.options = slices.Clone(options)
	}
}

// NewRunner creates a Runner backed by a dynamic worker pool.
//
// Parameters:
//   - options: functional options to configure the runner
//
// Returns:
//   - *Runner: the new runner
func NewRunner(options ...RunnerOption) *Runner {
	c := runnerConfig{queue: 256, idleTimeout: 1 * time.Second}
	for _, opt := range options {
		opt(&c)
	}
	if c.workers <= 0 {
		c.workers = runtime.NumCPU()
	}
	return &Runner{
		pool:    worker.NewDynamicWorkerPool(c.workers, c.queue, c.idleTimeout),
		options: c.options,
	}
}

// RunAll replays every script and returns the results in input order. A script that fails
// reports its error in Result.Error; the others still run.
//
// Parameters:
//   - scripts: the scripts to replay
//
// Returns:
//   - []Result: one result per script, same order as scripts
func (r *Runner) RunAll(scripts []Script) []Result {
	results := make([]Result, len(scripts))

	// The pool's own Wait blocks until workers idle out, so a WaitGroup is the batch barrier.
	var wg sync.WaitGroup
	for i := range scripts {
		wg.Add(1)
		idx := i
		r.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				res, err := Run(scripts[idx], r.options...)
				if err != nil {
					res.Name = scripts[idx].Name
					res.Error = err.Error()
				}
				results[idx] = res
				return nil, err
			},
		})
	}
	wg.Wait()
	return results
}
