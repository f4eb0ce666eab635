//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package testutil holds helpers shared by the package tests: a recording
// HTTP server and throwaway PostgreSQL databases for integration tests.
package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// fallbackConn is used when PGEDGE_TEST_CONN is unset.
const fallbackConn = "postgres://postgres@localhost:5432/postgres"

// TestDB is a scratch database created for a single test.
type TestDB struct {
	// Name of the created database.
	Name string
	// ConnString points at the created database.
	ConnString string

	adminConn string
}

// NewTestDB creates an empty database for t and drops it when t finishes.
// A database of a failed test is kept so it can be inspected. The test is
// skipped when no server is reachable.
func NewTestDB(t *testing.T, suite string) *TestDB {
	t.Helper()

	admin := os.Getenv("PGEDGE_TEST_CONN")
	if admin == "" {
		admin = fallbackConn
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, admin)
	if err == nil {
		err = pool.Ping(ctx)
	}
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		t.Skipf("PostgreSQL not reachable, skipping: %v", err)
	}
	defer pool.Close()

	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		t.Fatalf("Failed to pick a database name: %v", err)
	}
	name := "datagen_test_" + suite + "_" + hex.EncodeToString(suffix)

	if _, err := pool.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize()); err != nil {
		t.Fatalf("Failed to create database %s: %v", name, err)
	}

	connStr, err := withDatabase(admin, name)
	if err != nil {
		t.Fatalf("Failed to build connection string: %v", err)
	}

	tdb := &TestDB{Name: name, ConnString: connStr, adminConn: admin}
	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("Keeping database %s of failed test", name)
			return
		}
		tdb.drop(t)
	})
	return tdb
}

func (d *TestDB) drop(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, d.adminConn)
	if err != nil {
		t.Logf("Could not drop database %s: %v", d.Name, err)
		return
	}
	defer pool.Close()

	// Sessions left open by the test would block the drop.
	_, _ = pool.Exec(ctx, `
        SELECT pg_terminate_backend(pid) FROM pg_stat_activity
        WHERE datname = $1 AND pid <> pg_backend_pid()
    `, d.Name)

	if _, err := pool.Exec(ctx, "DROP DATABASE IF EXISTS "+pgx.Identifier{d.Name}.Sanitize()); err != nil {
		t.Logf("Could not drop database %s: %v", d.Name, err)
	}
}

// withDatabase rewrites connStr, in URL or keyword/value form, as a URL
// that selects database.
func withDatabase(connStr, database string) (string, error) {
	cfg, err := pgx.ParseConfig(connStr)
	if err != nil {
		return "", err
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(int(cfg.Port))),
		Path:   "/" + database,
	}
	if cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	} else {
		u.User = url.User(cfg.User)
	}
	if strings.HasPrefix(cfg.Host, "/") {
		u.Host = ""
		u.RawQuery = url.Values{
			"host": {cfg.Host},
			"port": {strconv.Itoa(int(cfg.Port))},
		}.Encode()
	}
	return u.String(), nil
}
