//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-datagen/internal/logging"
	"github.com/pgEdge/pgedge-datagen/pkg/version"
)

const (
	recordsTable = "datagen_records"
	batchesTable = "datagen_batches"
)

// createSchemaSQL creates the sink tables if they don't exist.
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS datagen_batches (
    batch_id     TEXT PRIMARY KEY,
    entity       TEXT NOT NULL,
    record_count INTEGER NOT NULL,
    version      TEXT NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS datagen_records (
    id       BIGSERIAL PRIMARY KEY,
    batch_id TEXT NOT NULL REFERENCES datagen_batches (batch_id) ON DELETE CASCADE,
    entity   TEXT NOT NULL,
    position INTEGER NOT NULL,
    payload  JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS datagen_records_entity_idx ON datagen_records (entity)`

// CreateSchema creates the sink tables.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, createSchemaSQL); err != nil {
		return fmt.Errorf("failed to create sink schema: %w", err)
	}
	return nil
}

// DropSchema drops the sink tables.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s, %s", recordsTable, batchesTable))
	return err
}

// Batch is one generated batch in its stored form.
type Batch struct {
	ID       string
	Entity   string
	Payloads [][]byte
}

// InsertBatch stores the batch ledger row and all of its records in one
// transaction; either everything is stored or nothing is.
func InsertBatch(ctx context.Context, pool *pgxpool.Pool, b Batch) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
        INSERT INTO datagen_batches (batch_id, entity, record_count, version)
        VALUES ($1, $2, $3, $4)
    `, b.ID, b.Entity, len(b.Payloads), version.Short())
	if err != nil {
		return fmt.Errorf("failed to record batch %s: %w", b.ID, err)
	}

	rows := make([][]any, len(b.Payloads))
	for i, p := range b.Payloads {
		rows[i] = []any{b.ID, b.Entity, i, p}
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{recordsTable},
		[]string{"batch_id", "entity", "position", "payload"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to copy %s records: %w", b.Entity, err)
	}
	if int(n) != len(b.Payloads) {
		return fmt.Errorf("copied %d of %d %s records", n, len(b.Payloads), b.Entity)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit batch %s: %w", b.ID, err)
	}

	logging.Debug().
		Str("batch_id", b.ID).
		Str("entity", b.Entity).
		Int64("records", n).
		Msg("Stored batch")

	return nil
}

// CountRecords returns how many records of an entity type are stored.
func CountRecords(ctx context.Context, pool *pgxpool.Pool, entity string) (int64, error) {
	var n int64
	err := pool.QueryRow(ctx, `
        SELECT count(*) FROM datagen_records WHERE entity = $1
    `, entity).Scan(&n)
	return n, err
}

// BatchRecordCount returns the record count stored in the ledger for a batch.
func BatchRecordCount(ctx context.Context, pool *pgxpool.Pool, batchID string) (int, error) {
	var n int
	err := pool.QueryRow(ctx, `
        SELECT record_count FROM datagen_batches WHERE batch_id = $1
    `, batchID).Scan(&n)
	return n, err
}
