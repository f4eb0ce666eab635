//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package entity_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/pgEdge/pgedge-datagen/internal/datagen"
	"github.com/pgEdge/pgedge-datagen/internal/entity"
)

var knownTypes = []string{
	"bank",
	"employee",
	"flight",
	"passenger",
	"payment",
	"plane",
	"refund",
	"user",
}

func TestResolve(t *testing.T) {
	reg := entity.Default()
	for _, name := range knownTypes {
		t.Run(name, func(t *testing.T) {
			typ, err := reg.Resolve(name)
			if err != nil {
				t.Fatalf("Failed to resolve '%s': %v", name, err)
			}
			if typ.String() != name {
				t.Errorf("Expected type '%s', got '%s'", name, typ)
			}
		})
	}
}

func TestResolveIgnoresCase(t *testing.T) {
	typ, err := entity.Default().Resolve("  USER ")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if typ != entity.User {
		t.Errorf("Expected '%s', got '%s'", entity.User, typ)
	}
}

func TestResolveUnknown(t *testing.T) {
	for _, name := range []string{"ghost", "", "request", "users"} {
		_, err := entity.Default().Resolve(name)
		if !errors.Is(err, entity.ErrUnknownEntityType) {
			t.Errorf("Resolve(%q): expected ErrUnknownEntityType, got %v", name, err)
		}
	}
}

func TestResolveUnknownListsValidTypes(t *testing.T) {
	_, err := entity.Default().Resolve("ghost")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "passenger") {
		t.Errorf("Error should list valid types, got: %v", err)
	}
}

func TestListTypes(t *testing.T) {
	got := entity.Default().ListTypes()
	if len(got) != len(knownTypes) {
		t.Fatalf("Expected %d types, got %d: %v", len(knownTypes), len(got), got)
	}
	for i, name := range knownTypes {
		if got[i] != name {
			t.Errorf("ListTypes()[%d] = '%s', expected '%s'", i, got[i], name)
		}
	}
}

func TestLookup(t *testing.T) {
	def, err := entity.Default().Lookup(entity.Flight)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if def.Endpoint != "/flights" {
		t.Errorf("Expected endpoint '/flights', got '%s'", def.Endpoint)
	}
	if def.Rule == nil {
		t.Error("Rule should not be nil")
	}

	if _, err := entity.Default().Lookup(entity.Type("ghost")); !errors.Is(err, entity.ErrUnknownEntityType) {
		t.Errorf("Expected ErrUnknownEntityType, got %v", err)
	}
}

func TestDefinitionsHaveEndpoints(t *testing.T) {
	for _, def := range entity.Default().Definitions() {
		if !strings.HasPrefix(def.Endpoint, "/") {
			t.Errorf("%s: endpoint '%s' should start with /", def.Type, def.Endpoint)
		}
		if def.Description == "" {
			t.Errorf("%s: description should not be empty", def.Type)
		}
	}
}

func TestNewRegistryRejectsInvalid(t *testing.T) {
	rule := entity.Default().Definitions()[0].Rule

	tests := []struct {
		name string
		defs []entity.Definition
	}{
		{
			name: "missing type",
			defs: []entity.Definition{{Rule: rule}},
		},
		{
			name: "missing rule",
			defs: []entity.Definition{{Type: "widget"}},
		},
		{
			name: "duplicate",
			defs: []entity.Definition{
				{Type: "widget", Rule: rule},
				{Type: "widget", Rule: rule},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := entity.NewRegistry(tt.defs...); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestRulesProduceValidRecords(t *testing.T) {
	f := datagen.NewFakerWithSeed(42)
	for _, def := range entity.Default().Definitions() {
		t.Run(def.Type.String(), func(t *testing.T) {
			for i := 0; i < 25; i++ {
				rec, err := def.Rule(f, nil)
				if err != nil {
					t.Fatalf("Rule returned error: %v", err)
				}
				if err := rec.Validate(); err != nil {
					t.Fatalf("Record %d is invalid: %v", i, err)
				}
			}
		})
	}
}

func TestFlightUsesObservedPlanes(t *testing.T) {
	f := datagen.NewFaker()
	refs := entity.NewReferences()
	refs.Observe([]entity.Record{
		&entity.PlaneRecord{Registration: "TC-11111"},
		&entity.PlaneRecord{Registration: "TC-22222"},
		&entity.UserRecord{Name: "ignored"},
	})

	if got := refs.PlaneRegistrations(); len(got) != 2 {
		t.Fatalf("Expected 2 registrations, got %v", got)
	}

	def, _ := entity.Default().Lookup(entity.Flight)
	for i := 0; i < 20; i++ {
		rec, err := def.Rule(f, refs)
		if err != nil {
			t.Fatalf("Rule returned error: %v", err)
		}
		reg := rec.(*entity.FlightRecord).PlaneRegistration
		if reg != "TC-11111" && reg != "TC-22222" {
			t.Errorf("Flight references unknown plane '%s'", reg)
		}
	}
}

func TestNilReferences(t *testing.T) {
	var refs *entity.References
	refs.Observe([]entity.Record{&entity.PlaneRecord{Registration: "TC-1"}})
	if refs.PlaneRegistrations() != nil {
		t.Error("Expected no registrations from nil references")
	}
	if got := refs.PlaneRegistration(datagen.NewFaker()); got != "" {
		t.Errorf("Expected empty registration, got '%s'", got)
	}
}
