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
	"fmt"
	"io"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/pgEdge/pgedge-datagen/internal/generator"
)

// Writer prints batches as indented JSON arrays. It is used to show the
// records of a dry run and is not a transport.
type Writer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriter creates a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &Writer{enc: enc}
}

// Print writes the records of batch.
func (w *Writer) Print(batch *generator.Batch) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enc.Encode(batch.Records); err != nil {
		return fmt.Errorf("failed to print %s records: %w", batch.Entity, err)
	}
	return nil
}
