//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package transport

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-datagen/internal/db"
	"github.com/pgEdge/pgedge-datagen/internal/generator"
)

// PostgresConfig configures the postgres transport.
type PostgresConfig struct {
	// Connection is the PostgreSQL connection string.
	Connection string
}

// Postgres stores each batch as JSONB rows in the sink tables.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to the database and creates the sink schema.
func NewPostgres(ctx context.Context, cfg PostgresConfig) (*Postgres, error) {
	if cfg.Connection == "" {
		return nil, errors.New("postgres transport requires a connection string")
	}
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return nil, err
	}
	if err := db.CreateSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &Postgres{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool. The schema must already exist.
func NewPostgresWithPool(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Name implements dispatch.Transport.
func (p *Postgres) Name() string {
	return KindPostgres
}

// Send implements dispatch.Transport. The batch is stored atomically so a
// failure always applies to every record.
func (p *Postgres) Send(ctx context.Context, batch *generator.Batch) error {
	payloads, err := encodeRecords(batch)
	if err != nil {
		return err
	}
	return db.InsertBatch(ctx, p.pool, db.Batch{
		ID:       batch.ID,
		Entity:   batch.Entity.String(),
		Payloads: payloads,
	})
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
