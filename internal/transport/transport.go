//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package transport implements the live destinations batches are sent to.
package transport

import (
	"context"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/pgEdge/pgedge-datagen/internal/dispatch"
	"github.com/pgEdge/pgedge-datagen/internal/entity"
	"github.com/pgEdge/pgedge-datagen/internal/generator"
)

// Supported transport kinds.
const (
	KindHTTP     = "http"
	KindPostgres = "postgres"
	KindKafka    = "kafka"
)

// Kinds lists the supported transport kinds.
var Kinds = []string{KindHTTP, KindPostgres, KindKafka}

// Live is a transport that holds resources until closed.
type Live interface {
	dispatch.Transport
	io.Closer
}

// Options selects and configures a live transport.
type Options struct {
	Kind     string
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
}

// New creates the live transport selected by opts.Kind.
func New(ctx context.Context, opts Options, registry *entity.Registry) (Live, error) {
	switch strings.ToLower(opts.Kind) {
	case "", KindHTTP:
		return NewHTTP(opts.HTTP, registry)
	case KindPostgres:
		return NewPostgres(ctx, opts.Postgres)
	case KindKafka:
		return NewKafka(opts.Kafka)
	default:
		return nil, fmt.Errorf("unknown transport %q (must be one of: %s)",
			opts.Kind, strings.Join(Kinds, ", "))
	}
}

// encodeRecords serialises each record of the batch separately.
func encodeRecords(batch *generator.Batch) ([][]byte, error) {
	payloads := make([][]byte, len(batch.Records))
	for i, rec := range batch.Records {
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s record %d: %w", batch.Entity, i, err)
		}
		payloads[i] = data
	}
	return payloads, nil
}
