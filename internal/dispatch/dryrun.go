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

	"github.com/pgEdge/pgedge-datagen/internal/generator"
	"github.com/pgEdge/pgedge-datagen/internal/logging"
)

// DryRun accepts every batch without any I/O.
type DryRun struct{}

// Name implements Transport.
func (DryRun) Name() string {
	return "dry-run"
}

// Send implements Transport.
func (DryRun) Send(_ context.Context, batch *generator.Batch) error {
	logging.Debug().
		Str("entity", batch.Entity.String()).
		Str("batch_id", batch.ID).
		Int("records", batch.Count()).
		Msg("Dry run, batch not sent")
	return nil
}
