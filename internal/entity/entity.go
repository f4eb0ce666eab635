//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package entity defines the synthetic entity types, their record schemas
// and the registry that maps type names to generation rules.
package entity

import (
	"errors"
	"fmt"
)

// Type identifies a category of synthetic record.
type Type string

// Supported entity types.
const (
	Bank      Type = "bank"
	Employee  Type = "employee"
	Flight    Type = "flight"
	Passenger Type = "passenger"
	Payment   Type = "payment"
	Plane     Type = "plane"
	Refund    Type = "refund"
	User      Type = "user"
)

// String returns the type name.
func (t Type) String() string {
	return string(t)
}

// ErrUnknownEntityType is returned when a name is not in the registry.
var ErrUnknownEntityType = errors.New("unknown entity type")

// Record is a single generated entity. Validate reports whether the record
// is structurally valid for its type.
type Record interface {
	Validate() error
}

// FieldError describes an invalid record field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

func required(field, value string) error {
	if value == "" {
		return &FieldError{Field: field, Reason: "is required"}
	}
	return nil
}

func inRange(field string, v, min, max int) error {
	if v < min || v > max {
		return &FieldError{Field: field, Reason: fmt.Sprintf("%d not in [%d, %d]", v, min, max)}
	}
	return nil
}

func oneOf(field, v string, allowed []string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return &FieldError{Field: field, Reason: fmt.Sprintf("%q is not an allowed value", v)}
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
