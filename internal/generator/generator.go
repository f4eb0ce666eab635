//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package generator produces batches of synthetic entity records.
package generator

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pgEdge/pgedge-datagen/internal/datagen"
	"github.com/pgEdge/pgedge-datagen/internal/entity"
	"github.com/pgEdge/pgedge-datagen/internal/logging"
)

var (
	// ErrInvalidAmount is returned when the requested amount is not positive.
	ErrInvalidAmount = errors.New("amount must be a positive integer")

	// ErrGenerationFailure matches every *GenerationError.
	ErrGenerationFailure = errors.New("generation failed")
)

// GenerationError reports a record that could not be generated.
type GenerationError struct {
	Entity entity.Type
	Index  int
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed for %s record %d: %v", e.Entity, e.Index, e.Err)
}

func (e *GenerationError) Unwrap() []error {
	return []error{ErrGenerationFailure, e.Err}
}

// Batch is the ordered set of records generated for one request.
type Batch struct {
	ID      string
	Entity  entity.Type
	Records []entity.Record
}

// Count returns the number of records in the batch.
func (b *Batch) Count() int {
	return len(b.Records)
}

// Config holds generator configuration.
type Config struct {
	// Seed makes output reproducible when non-zero.
	Seed uint64

	// ProgressInterval is how often, in records, progress is logged.
	ProgressInterval int64
}

// Generator creates records using the rules of a registry.
type Generator struct {
	registry *entity.Registry
	faker    *datagen.Faker
	interval int64
}

// New creates a generator over the given registry.
func New(registry *entity.Registry, cfg Config) *Generator {
	faker := datagen.NewFaker()
	if cfg.Seed != 0 {
		faker = datagen.NewFakerWithSeed(cfg.Seed)
	}
	interval := cfg.ProgressInterval
	if interval == 0 {
		interval = datagen.DefaultProgressInterval
	}
	return &Generator{
		registry: registry,
		faker:    faker,
		interval: interval,
	}
}

// Registry returns the registry the generator draws rules from.
func (g *Generator) Registry() *entity.Registry {
	return g.registry
}

// Generate produces exactly amount records of type t.
func (g *Generator) Generate(t entity.Type, amount int) (*Batch, error) {
	return g.GenerateWithRefs(t, amount, nil)
}

// GenerateWithRefs is Generate with access to records produced earlier in
// the same run. refs may be nil.
func (g *Generator) GenerateWithRefs(t entity.Type, amount int, refs *entity.References) (*Batch, error) {
	def, err := g.registry.Lookup(t)
	if err != nil {
		return nil, err
	}
	if amount < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAmount, amount)
	}

	batch := &Batch{
		ID:      uuid.NewString(),
		Entity:  t,
		Records: make([]entity.Record, 0, amount),
	}
	progress := datagen.NewProgressReporter(t.String(), int64(amount), g.interval)

	for i := 0; i < amount; i++ {
		rec, err := def.Rule(g.faker, refs)
		if err == nil && rec == nil {
			err = errors.New("rule returned no record")
		}
		if err == nil {
			err = rec.Validate()
		}
		if err != nil {
			return nil, &GenerationError{Entity: t, Index: i, Err: err}
		}
		batch.Records = append(batch.Records, rec)
		progress.Update(1)
	}
	progress.Done()

	logging.Debug().
		Str("entity", t.String()).
		Str("batch_id", batch.ID).
		Int("records", batch.Count()).
		Msg("Generated batch")

	return batch, nil
}
