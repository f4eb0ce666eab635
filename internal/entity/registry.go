//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package entity

import (
	"fmt"
	"strings"
)

// Definition binds an entity type to its generation rule and API endpoint.
type Definition struct {
	Type        Type
	Endpoint    string
	Description string
	Rule        Rule
}

// Registry is an ordered, read-only lookup table of entity definitions.
type Registry struct {
	defs   []Definition
	byType map[Type]int
}

var standard = mustRegistry(
	Definition{Type: Bank, Endpoint: "/banks", Description: "Bank cards with balances", Rule: newBank},
	Definition{Type: Employee, Endpoint: "/employees", Description: "Airline employees", Rule: newEmployee},
	Definition{Type: Flight, Endpoint: "/flights", Description: "Scheduled flights", Rule: newFlight},
	Definition{Type: Passenger, Endpoint: "/passengers", Description: "Passengers with bookings", Rule: newPassenger},
	Definition{Type: Payment, Endpoint: "/payments", Description: "User payments", Rule: newPayment},
	Definition{Type: Plane, Endpoint: "/planes", Description: "Aircraft", Rule: newPlane},
	Definition{Type: Refund, Endpoint: "/refunds", Description: "Refunds against payments", Rule: newRefund},
	Definition{Type: User, Endpoint: "/users", Description: "Application user accounts", Rule: newUser},
)

// Default returns the registry of all supported entity types.
func Default() *Registry {
	return standard
}

// NewRegistry builds a registry from the given definitions, keeping their order.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		defs:   make([]Definition, 0, len(defs)),
		byType: make(map[Type]int, len(defs)),
	}
	for _, d := range defs {
		if d.Type == "" {
			return nil, fmt.Errorf("entity definition without a type")
		}
		if d.Rule == nil {
			return nil, fmt.Errorf("entity %s has no generation rule", d.Type)
		}
		if _, dup := r.byType[d.Type]; dup {
			return nil, fmt.Errorf("entity %s registered twice", d.Type)
		}
		r.byType[d.Type] = len(r.defs)
		r.defs = append(r.defs, d)
	}
	return r, nil
}

func mustRegistry(defs ...Definition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve maps a user supplied name to a registered type. Matching ignores
// case and surrounding whitespace.
func (r *Registry) Resolve(name string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := r.byType[t]; !ok {
		return "", fmt.Errorf("%w: %q (must be one of: %s)",
			ErrUnknownEntityType, name, strings.Join(r.ListTypes(), ", "))
	}
	return t, nil
}

// Lookup returns the definition of a registered type.
func (r *Registry) Lookup(t Type) (Definition, error) {
	i, ok := r.byType[t]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownEntityType, t)
	}
	return r.defs[i], nil
}

// ListTypes returns the registered type names in registry order.
func (r *Registry) ListTypes() []string {
	names := make([]string, len(r.defs))
	for i, d := range r.defs {
		names[i] = d.Type.String()
	}
	return names
}

// Definitions returns a copy of all definitions in registry order.
func (r *Registry) Definitions() []Definition {
	return append([]Definition(nil), r.defs...)
}
