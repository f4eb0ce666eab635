//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package entity

import "github.com/pgEdge/pgedge-datagen/internal/datagen"

// References collects keys of records generated earlier in a run so that
// later records can point at them. A nil *References has no keys.
type References struct {
	planes []string
}

// NewReferences creates an empty reference set.
func NewReferences() *References {
	return &References{}
}

// Observe records the keys of the given records.
func (r *References) Observe(records []Record) {
	if r == nil {
		return
	}
	for _, rec := range records {
		if p, ok := rec.(*PlaneRecord); ok && p.Registration != "" {
			r.planes = append(r.planes, p.Registration)
		}
	}
}

// PlaneRegistrations returns the observed plane registrations.
func (r *References) PlaneRegistrations() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.planes...)
}

// PlaneRegistration picks one observed plane registration, or "" when none
// have been observed.
func (r *References) PlaneRegistration(f *datagen.Faker) string {
	if r == nil {
		return ""
	}
	return datagen.Choose(f, r.planes)
}
