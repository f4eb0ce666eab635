//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/pgEdge/pgedge-datagen/internal/entity"
	"github.com/pgEdge/pgedge-datagen/internal/generator"
)

type fakeTransport struct {
	calls int
	err   error
}

func (f *fakeTransport) Name() string { return "fake" }

func (f *fakeTransport) Send(_ context.Context, _ *generator.Batch) error {
	f.calls++
	return f.err
}

func newBatch(t *testing.T, typ entity.Type, n int) *generator.Batch {
	t.Helper()
	batch, err := generator.New(entity.Default(), generator.Config{}).Generate(typ, n)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return batch
}

func TestDispatchDryRunNeverCallsLiveTransport(t *testing.T) {
	live := &fakeTransport{err: errors.New("should not be called")}
	d := New(live)

	for _, n := range []int{1, 10, 100} {
		res := d.Dispatch(context.Background(), newBatch(t, entity.User, n), true)
		if res.Attempted != n || res.Succeeded != n || res.Failed != 0 {
			t.Errorf("Dry run of %d: got attempted=%d succeeded=%d failed=%d",
				n, res.Attempted, res.Succeeded, res.Failed)
		}
		if res.Transport != "dry-run" {
			t.Errorf("Expected dry-run transport, got '%s'", res.Transport)
		}
	}
	if live.calls != 0 {
		t.Errorf("Live transport was called %d times during dry run", live.calls)
	}
}

func TestDispatchDryRunWithoutLiveTransport(t *testing.T) {
	res := New(nil).Dispatch(context.Background(), newBatch(t, entity.Plane, 3), true)
	if !res.OK() || res.Succeeded != 3 {
		t.Errorf("Expected dry run success, got %+v", res)
	}
}

func TestDispatchLiveSuccess(t *testing.T) {
	live := &fakeTransport{}
	batch := newBatch(t, entity.Flight, 4)
	res := New(live).Dispatch(context.Background(), batch, false)

	if live.calls != 1 {
		t.Errorf("Expected one call per batch, got %d", live.calls)
	}
	if !res.OK() || res.Succeeded != 4 {
		t.Errorf("Expected success, got %+v", res)
	}
	if res.BatchID != batch.ID {
		t.Errorf("Expected batch id '%s', got '%s'", batch.ID, res.BatchID)
	}
	if res.Err() != nil {
		t.Errorf("Expected nil Err, got %v", res.Err())
	}
}

func TestDispatchLiveWholeBatchFailure(t *testing.T) {
	live := &fakeTransport{err: errors.New("status 500")}
	res := New(live).Dispatch(context.Background(), newBatch(t, entity.User, 5), false)

	if res.Failed != 5 || res.Succeeded != 0 {
		t.Errorf("Expected all 5 failed, got %+v", res)
	}
	if len(res.Errors) != 1 {
		t.Errorf("Expected one error description, got %v", res.Errors)
	}
	if !errors.Is(res.Err(), ErrDispatchFailure) {
		t.Errorf("Expected ErrDispatchFailure, got %v", res.Err())
	}
}

func TestDispatchLivePartialFailure(t *testing.T) {
	live := &fakeTransport{err: &PartialError{Items: []ItemError{
		{Index: 1, Err: errors.New("rejected")},
		{Index: 3, Err: errors.New("rejected")},
		{Index: 3, Err: errors.New("duplicate report")},
		{Index: 99, Err: errors.New("out of range")},
	}}}
	res := New(live).Dispatch(context.Background(), newBatch(t, entity.Payment, 5), false)

	if res.Attempted != 5 || res.Succeeded != 3 || res.Failed != 2 {
		t.Errorf("Expected 3 succeeded / 2 failed, got %+v", res)
	}
	if len(res.Errors) != 2 {
		t.Errorf("Expected 2 error descriptions, got %v", res.Errors)
	}
}

func TestDispatchPartialErrorWithoutValidItems(t *testing.T) {
	tests := []struct {
		name  string
		items []ItemError
	}{
		{"empty", nil},
		{"out of range", []ItemError{{Index: 7, Err: errors.New("x")}, {Index: -1, Err: errors.New("y")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			live := &fakeTransport{err: &PartialError{Items: tt.items}}
			res := New(live).Dispatch(context.Background(), newBatch(t, entity.Bank, 3), false)
			if res.Failed != 3 || res.Succeeded != 0 {
				t.Errorf("Expected whole batch failed, got %+v", res)
			}
			if !errors.Is(res.Err(), ErrDispatchFailure) {
				t.Errorf("Expected ErrDispatchFailure, got %v", res.Err())
			}
		})
	}
}

func TestDispatchWithoutLiveTransport(t *testing.T) {
	res := New(nil).Dispatch(context.Background(), newBatch(t, entity.User, 2), false)
	if res.Failed != 2 {
		t.Errorf("Expected both records failed, got %+v", res)
	}
}

func TestWithDryRunOverride(t *testing.T) {
	dry := &fakeTransport{}
	d := New(nil).WithDryRun(dry)
	d.Dispatch(context.Background(), newBatch(t, entity.User, 1), true)
	if dry.calls != 1 {
		t.Errorf("Expected custom dry-run transport to be used, got %d calls", dry.calls)
	}
}

func TestFailedResult(t *testing.T) {
	res := FailedResult(entity.Flight, 4, errors.New("generation failed"))
	if res.Failed != 4 || res.Attempted != 4 || res.OK() {
		t.Errorf("Unexpected result %+v", res)
	}
}
