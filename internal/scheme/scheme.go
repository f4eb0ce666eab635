//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package scheme runs ordered multi-entity generation schemes.
package scheme

import (
	"errors"
	"fmt"

	"github.com/pgEdge/pgedge-datagen/internal/entity"
	"github.com/pgEdge/pgedge-datagen/internal/generator"
)

// Entry is one step of a scheme.
type Entry struct {
	Entity entity.Type
	Amount int
}

// Definition is an ordered, immutable list of scheme entries.
type Definition struct {
	entries []Entry
}

// NewDefinition validates entries against the registry and returns a
// definition holding a copy of them.
func NewDefinition(registry *entity.Registry, entries ...Entry) (*Definition, error) {
	if len(entries) == 0 {
		return nil, errors.New("scheme has no entries")
	}
	for i, e := range entries {
		if _, err := registry.Lookup(e.Entity); err != nil {
			return nil, fmt.Errorf("scheme entry %d: %w", i+1, err)
		}
		if e.Amount < 1 {
			return nil, fmt.Errorf("scheme entry %d (%s): %w: %d",
				i+1, e.Entity, generator.ErrInvalidAmount, e.Amount)
		}
	}
	return &Definition{entries: append([]Entry(nil), entries...)}, nil
}

// Standard returns the built-in scheme. Planes precede flights so flights
// reference the planes generated in the same run.
func Standard() *Definition {
	return &Definition{entries: []Entry{
		{Entity: entity.User, Amount: 5},
		{Entity: entity.Employee, Amount: 3},
		{Entity: entity.Plane, Amount: 2},
		{Entity: entity.Flight, Amount: 4},
		{Entity: entity.Passenger, Amount: 12},
	}}
}

// Entries returns a copy of the definition's entries.
func (d *Definition) Entries() []Entry {
	return append([]Entry(nil), d.entries...)
}

// Len returns the number of entries.
func (d *Definition) Len() int {
	return len(d.entries)
}

// Total returns the number of records the scheme generates.
func (d *Definition) Total() int {
	n := 0
	for _, e := range d.entries {
		n += e.Amount
	}
	return n
}

// State is the lifecycle state of a scheme run.
type State int32

const (
	// Pending means the run has not started dispatching.
	Pending State = iota
	// Running means at least one entry is still being dispatched.
	Running
	// Completed means every entry was delivered in full.
	Completed
	// CompletedWithFailures means every entry ran but at least one
	// failed in whole or in part.
	CompletedWithFailures
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case CompletedWithFailures:
		return "completed with failures"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}
