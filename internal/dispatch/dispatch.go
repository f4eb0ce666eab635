//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package dispatch submits generated batches through a transport and
// accounts for per-item success and failure.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-datagen/internal/entity"
	"github.com/pgEdge/pgedge-datagen/internal/generator"
	"github.com/pgEdge/pgedge-datagen/internal/logging"
)

// ErrDispatchFailure marks errors caused by failed submissions.
var ErrDispatchFailure = errors.New("dispatch failed")

// Transport delivers one batch per call. Send returns nil when every record
// was accepted, a *PartialError when the transport can tell which records
// failed, and any other error when the whole batch failed.
type Transport interface {
	Name() string
	Send(ctx context.Context, batch *generator.Batch) error
}

// ItemError is the failure of a single record within a batch.
type ItemError struct {
	Index int
	Err   error
}

// PartialError reports the records of a batch that were rejected.
type PartialError struct {
	Items []ItemError
}

func (e *PartialError) Error() string {
	if len(e.Items) == 0 {
		return "no items failed"
	}
	return fmt.Sprintf("%d items failed, first at index %d: %v",
		len(e.Items), e.Items[0].Index, e.Items[0].Err)
}

// Result summarises the dispatch of one batch.
type Result struct {
	Entity    entity.Type
	BatchID   string
	Transport string
	Attempted int
	Succeeded int
	Failed    int
	Errors    []string
	Duration  time.Duration
}

// OK reports whether every attempted record succeeded.
func (r Result) OK() bool {
	return r.Failed == 0
}

// Err returns a summary error for a result with failures, or nil.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	msg := "no details"
	if len(r.Errors) > 0 {
		msg = r.Errors[0]
	}
	return fmt.Errorf("%w: %s: %d of %d records failed: %s",
		ErrDispatchFailure, r.Entity, r.Failed, r.Attempted, msg)
}

// FailedResult builds the result for a batch that never reached a transport.
func FailedResult(t entity.Type, attempted int, err error) Result {
	return Result{
		Entity:    t,
		Attempted: attempted,
		Failed:    attempted,
		Errors:    []string{err.Error()},
	}
}

// Dispatcher routes batches to the live transport or, in dry-run mode, to
// the dry-run transport.
type Dispatcher struct {
	live Transport
	dry  Transport
}

// New creates a dispatcher. live may be nil when only dry runs are needed.
func New(live Transport) *Dispatcher {
	return &Dispatcher{live: live, dry: DryRun{}}
}

// WithDryRun replaces the dry-run transport.
func (d *Dispatcher) WithDryRun(t Transport) *Dispatcher {
	d.dry = t
	return d
}

// Dispatch submits the batch and accounts for every record in it. It never
// returns an error; failures are recorded in the Result.
func (d *Dispatcher) Dispatch(ctx context.Context, batch *generator.Batch, dryRun bool) Result {
	transport := d.live
	if dryRun {
		transport = d.dry
	}

	res := Result{
		Entity:    batch.Entity,
		BatchID:   batch.ID,
		Attempted: batch.Count(),
	}

	if transport == nil {
		res.Failed = res.Attempted
		res.Errors = []string{"no live transport configured"}
		return res
	}
	res.Transport = transport.Name()

	start := time.Now()
	err := transport.Send(ctx, batch)
	res.Duration = time.Since(start)

	var partial *PartialError
	switch {
	case err == nil:
		res.Succeeded = res.Attempted
	case errors.As(err, &partial):
		failed := make(map[int]bool, len(partial.Items))
		for _, item := range partial.Items {
			if item.Index < 0 || item.Index >= res.Attempted || failed[item.Index] {
				continue
			}
			failed[item.Index] = true
			res.Errors = append(res.Errors, fmt.Sprintf("item %d: %v", item.Index, item.Err))
		}
		if len(failed) == 0 {
			// Send failed but named no record of this batch.
			res.Failed = res.Attempted
			res.Errors = []string{err.Error()}
			break
		}
		res.Failed = len(failed)
		res.Succeeded = res.Attempted - res.Failed
	default:
		res.Failed = res.Attempted
		res.Errors = []string{err.Error()}
	}

	event := logging.Info()
	if !res.OK() {
		event = logging.Warn()
	}
	event.
		Str("entity", res.Entity.String()).
		Str("batch_id", res.BatchID).
		Str("transport", res.Transport).
		Int("attempted", res.Attempted).
		Int("succeeded", res.Succeeded).
		Int("failed", res.Failed).
		Dur("duration", res.Duration).
		Msg("Dispatched batch")

	return res
}
