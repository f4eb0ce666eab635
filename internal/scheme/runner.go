//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package scheme

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pgEdge/pgedge-datagen/internal/dispatch"
	"github.com/pgEdge/pgedge-datagen/internal/entity"
	"github.com/pgEdge/pgedge-datagen/internal/generator"
	"github.com/pgEdge/pgedge-datagen/internal/logging"
)

// RunnerConfig holds runner settings.
type RunnerConfig struct {
	// Parallel is the number of batches dispatched concurrently. Values
	// below 2 dispatch sequentially.
	Parallel int
}

// Runner executes a scheme definition once.
type Runner struct {
	def        *Definition
	generator  *generator.Generator
	dispatcher *dispatch.Dispatcher
	parallel   int
	state      atomic.Int32
}

// NewRunner creates a runner. Every entry of def must be known to the
// generator's registry.
func NewRunner(def *Definition, gen *generator.Generator, disp *dispatch.Dispatcher, cfg RunnerConfig) (*Runner, error) {
	if def == nil || def.Len() == 0 {
		return nil, errors.New("scheme has no entries")
	}
	for _, e := range def.entries {
		if _, err := gen.Registry().Lookup(e.Entity); err != nil {
			return nil, err
		}
	}
	return &Runner{
		def:        def,
		generator:  gen,
		dispatcher: disp,
		parallel:   cfg.Parallel,
	}, nil
}

// State returns the current state of the run.
func (r *Runner) State() State {
	return State(r.state.Load())
}

// Run generates and dispatches every entry in definition order. Failures
// are recorded in the report and never stop the run.
func (r *Runner) Run(ctx context.Context, dryRun bool) *Report {
	r.state.Store(int32(Running))
	start := time.Now()

	logging.Info().
		Int("entries", r.def.Len()).
		Int("records", r.def.Total()).
		Bool("dry_run", dryRun).
		Int("parallel", max(r.parallel, 1)).
		Msg("Starting scheme")

	report := &Report{Results: make([]dispatch.Result, r.def.Len())}
	if r.parallel > 1 {
		r.runParallel(ctx, dryRun, report.Results)
	} else {
		r.runSequential(ctx, dryRun, report.Results)
	}

	report.Duration = time.Since(start)
	report.State = Completed
	if len(report.Failures()) > 0 {
		report.State = CompletedWithFailures
	}
	r.state.Store(int32(report.State))
	return report
}

func (r *Runner) runSequential(ctx context.Context, dryRun bool, results []dispatch.Result) {
	refs := entity.NewReferences()
	for i, e := range r.def.entries {
		batch, err := r.generate(e, refs)
		if err != nil {
			results[i] = dispatch.FailedResult(e.Entity, e.Amount, err)
			continue
		}
		results[i] = r.dispatcher.Dispatch(ctx, batch, dryRun)
	}
}

// runParallel generates in order so references resolve, then dispatches on
// up to r.parallel goroutines. Each goroutine writes only its own slot.
func (r *Runner) runParallel(ctx context.Context, dryRun bool, results []dispatch.Result) {
	refs := entity.NewReferences()
	batches := make([]*generator.Batch, len(r.def.entries))
	for i, e := range r.def.entries {
		batch, err := r.generate(e, refs)
		if err != nil {
			results[i] = dispatch.FailedResult(e.Entity, e.Amount, err)
			continue
		}
		batches[i] = batch
	}

	var g errgroup.Group
	g.SetLimit(r.parallel)
	for i, batch := range batches {
		if batch == nil {
			continue
		}
		g.Go(func() error {
			results[i] = r.dispatcher.Dispatch(ctx, batch, dryRun)
			return nil
		})
	}
	_ = g.Wait()
}

func (r *Runner) generate(e Entry, refs *entity.References) (*generator.Batch, error) {
	batch, err := r.generator.GenerateWithRefs(e.Entity, e.Amount, refs)
	if err != nil {
		logging.Warn().
			Err(err).
			Str("entity", e.Entity.String()).
			Int("amount", e.Amount).
			Msg("Generation failed")
		return nil, err
	}
	refs.Observe(batch.Records)
	return batch, nil
}

// Failure describes an entity type whose dispatch had failed items.
type Failure struct {
	Entity    entity.Type
	Failed    int
	Attempted int
}

// Report is the outcome of a scheme run.
type Report struct {
	State    State
	Results  []dispatch.Result
	Duration time.Duration
}

// Failures lists the entries with failed items, in scheme order.
func (rep *Report) Failures() []Failure {
	var out []Failure
	for _, res := range rep.Results {
		if !res.OK() {
			out = append(out, Failure{Entity: res.Entity, Failed: res.Failed, Attempted: res.Attempted})
		}
	}
	return out
}

// Totals returns the attempted, succeeded and failed record counts.
func (rep *Report) Totals() (attempted, succeeded, failed int) {
	for _, res := range rep.Results {
		attempted += res.Attempted
		succeeded += res.Succeeded
		failed += res.Failed
	}
	return attempted, succeeded, failed
}

// Err returns nil when the run completed without failures.
func (rep *Report) Err() error {
	failures := rep.Failures()
	if len(failures) == 0 {
		return nil
	}
	parts := make([]string, len(failures))
	for i, f := range failures {
		parts[i] = fmt.Sprintf("%s (%d/%d failed)", f.Entity, f.Failed, f.Attempted)
	}
	return fmt.Errorf("%w: scheme completed with failures: %s",
		dispatch.ErrDispatchFailure, strings.Join(parts, ", "))
}

// Log writes the run summary followed by one line per entry.
func (rep *Report) Log() {
	attempted, succeeded, failed := rep.Totals()

	event := logging.Info()
	if failed > 0 {
		event = logging.Warn()
	}
	event.
		Str("state", rep.State.String()).
		Dur("duration", rep.Duration).
		Int("entries", len(rep.Results)).
		Int("attempted", attempted).
		Int("succeeded", succeeded).
		Int("failed", failed).
		Msg("Scheme summary")

	logging.Info().Msg("Per-entity results:")
	for _, res := range rep.Results {
		e := logging.Info().
			Str("entity", res.Entity.String()).
			Int("attempted", res.Attempted).
			Int("succeeded", res.Succeeded).
			Int("failed", res.Failed)
		if len(res.Errors) > 0 {
			e = e.Str("error", res.Errors[0])
		}
		e.Msg("")
	}
}
