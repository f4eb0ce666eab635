//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"fmt"

	"github.com/pgEdge/pgedge-datagen/internal/logging"
)

// DefaultProgressInterval is how often, in records, generation progress is logged.
const DefaultProgressInterval = 10000

// ProgressReporter tracks and reports data generation progress.
type ProgressReporter struct {
	entity           string
	total            int64
	current          int64
	progressInterval int64
}

// NewProgressReporter creates a new progress reporter. A non-positive
// interval disables intermediate reports.
func NewProgressReporter(entity string, total int64, interval int64) *ProgressReporter {
	return &ProgressReporter{
		entity:           entity,
		total:            total,
		progressInterval: interval,
	}
}

// Update adds n generated records and logs when an interval boundary is crossed.
func (p *ProgressReporter) Update(n int64) {
	old := p.current
	p.current += n

	if p.progressInterval <= 0 {
		return
	}
	if p.current/p.progressInterval > old/p.progressInterval {
		pct := float64(p.current) / float64(p.total) * 100
		logging.Info().
			Str("entity", p.entity).
			Int64("records", p.current).
			Int64("total", p.total).
			Float64("percent", pct).
			Msg("Generating records")
	}
}

// Current returns the number of records reported so far.
func (p *ProgressReporter) Current() int64 {
	return p.current
}

// Done logs completion.
func (p *ProgressReporter) Done() {
	logging.Debug().
		Str("entity", p.entity).
		Int64("records", p.current).
		Msg("Generation complete")
}

// FormatSize formats a byte count as a human-readable string.
func FormatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
