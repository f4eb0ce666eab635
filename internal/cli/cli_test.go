//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/pgEdge/pgedge-datagen/internal/dispatch"
	"github.com/pgEdge/pgedge-datagen/internal/entity"
	"github.com/pgEdge/pgedge-datagen/internal/generator"
	"github.com/pgEdge/pgedge-datagen/internal/testutil"
)

// run executes the root command with an empty config file so the host's
// config does not leak into the test.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	err := runTo(t, &out, args...)
	return out.String(), err
}

// runTo is like run but writes the command output to out.
func runTo(t *testing.T, out io.Writer, args ...string) error {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("log_level: warn\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	return cmd.Execute()
}

// brokenWriter fails every write.
type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("stdout closed")
}

func TestHelpListsEntityTypes(t *testing.T) {
	out, err := run(t, "--help")
	if err != nil {
		t.Fatalf("--help failed: %v", err)
	}
	for _, name := range entity.Default().ListTypes() {
		if !strings.Contains(out, name) {
			t.Errorf("Help does not mention entity type '%s'", name)
		}
	}
}

func TestEntitiesCommand(t *testing.T) {
	out, err := run(t, "entities")
	if err != nil {
		t.Fatal(err)
	}
	for _, def := range entity.Default().Definitions() {
		if !strings.Contains(out, def.Endpoint) {
			t.Errorf("Output does not list endpoint '%s'", def.Endpoint)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "pgedge-datagen") {
		t.Errorf("Unexpected version output '%s'", out)
	}
}

func TestGenerateDryRunPrintsRecords(t *testing.T) {
	out, err := run(t, "generate", "-e", "user", "-a", "10", "--dry-run", "--print")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	var records []map[string]any
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("Output is not a JSON array: %v\n%s", err, out)
	}
	if len(records) != 10 {
		t.Errorf("Expected 10 records, got %d", len(records))
	}
}

func TestGenerateDryRunPrintFailure(t *testing.T) {
	err := runTo(t, brokenWriter{}, "generate", "-e", "user", "-a", "3", "--dry-run", "--print")
	if err == nil {
		t.Fatal("Expected an error when the output cannot be written")
	}
	if errors.Is(err, dispatch.ErrDispatchFailure) {
		t.Errorf("Expected a print error, got dispatch failure: %v", err)
	}
	if !strings.Contains(err.Error(), "stdout closed") {
		t.Errorf("Expected the write error to be reported, got '%v'", err)
	}
}

func TestGenerateDryRunMakesNoRequests(t *testing.T) {
	srv := testutil.NewRecordingServer(t, http.StatusOK)

	if _, err := run(t, "--base-url", srv.URL, "generate", "-e", "user", "-a", "10", "--dry-run"); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if n := len(srv.Requests()); n != 0 {
		t.Errorf("Dry run made %d requests", n)
	}
}

func TestGenerateLive(t *testing.T) {
	srv := testutil.NewRecordingServer(t, http.StatusCreated)

	_, err := run(t, "--base-url", srv.URL, "generate", "--entity", "Flight", "--amount", "4")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	reqs := srv.Requests()
	if len(reqs) != 1 {
		t.Fatalf("Expected 1 request, got %d", len(reqs))
	}
	if reqs[0].Path != "/flights" {
		t.Errorf("Expected /flights, got %s", reqs[0].Path)
	}
	var body []map[string]any
	if err := json.Unmarshal(reqs[0].Body, &body); err != nil || len(body) != 4 {
		t.Errorf("Expected 4 flights in body, got %d (%v)", len(body), err)
	}
}

func TestGenerateLiveFailure(t *testing.T) {
	srv := testutil.NewRecordingServer(t, http.StatusServiceUnavailable)

	_, err := run(t, "--base-url", srv.URL, "generate", "-e", "bank", "-a", "3")
	if !errors.Is(err, dispatch.ErrDispatchFailure) {
		t.Errorf("Expected ErrDispatchFailure, got %v", err)
	}
}

func TestGenerateUnknownEntityLive(t *testing.T) {
	srv := testutil.NewRecordingServer(t, http.StatusOK)

	_, err := run(t, "--base-url", srv.URL, "generate", "-e", "ghost", "-a", "5")
	if !errors.Is(err, entity.ErrUnknownEntityType) {
		t.Errorf("Expected ErrUnknownEntityType, got %v", err)
	}
	if n := len(srv.Requests()); n != 0 {
		t.Errorf("Expected 0 requests, got %d", n)
	}
}

func TestGenerateValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown entity", []string{"generate", "-e", "spaceship", "-a", "1", "--dry-run"}, entity.ErrUnknownEntityType},
		{"zero amount", []string{"generate", "-e", "user", "-a", "0", "--dry-run"}, generator.ErrInvalidAmount},
		{"negative amount", []string{"generate", "-e", "user", "--amount=-3", "--dry-run"}, generator.ErrInvalidAmount},
		{"missing entity", []string{"generate", "-a", "1"}, nil},
		{"missing amount", []string{"generate", "-e", "user"}, nil},
		{"print without dry run", []string{"generate", "-e", "user", "-a", "1", "--print"}, nil},
		{"unknown transport", []string{"--transport", "smtp", "generate", "-e", "user", "-a", "1"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSchemeDryRun(t *testing.T) {
	srv := testutil.NewRecordingServer(t, http.StatusOK)

	if _, err := run(t, "--base-url", srv.URL, "scheme", "--dry-run"); err != nil {
		t.Fatalf("scheme --dry-run failed: %v", err)
	}
	if n := len(srv.Requests()); n != 0 {
		t.Errorf("Dry run made %d requests", n)
	}
}

func TestSchemeLive(t *testing.T) {
	srv := testutil.NewRecordingServer(t, http.StatusOK)

	if _, err := run(t, "--base-url", srv.URL, "scheme", "--parallel", "2"); err != nil {
		t.Fatalf("scheme failed: %v", err)
	}

	seen := map[string]bool{}
	for _, r := range srv.Requests() {
		seen[r.Path] = true
	}
	for _, path := range []string{"/users", "/employees", "/planes", "/flights", "/passengers"} {
		if !seen[path] {
			t.Errorf("Scheme did not post to %s", path)
		}
	}
}

func TestSchemeLiveFailure(t *testing.T) {
	srv := testutil.NewRecordingServer(t, http.StatusInternalServerError)

	_, err := run(t, "--base-url", srv.URL, "scheme")
	if !errors.Is(err, dispatch.ErrDispatchFailure) {
		t.Fatalf("Expected ErrDispatchFailure, got %v", err)
	}
	if n := len(srv.Requests()); n != 5 {
		t.Errorf("Expected every scheme entry to be attempted, got %d requests", n)
	}
	if !strings.Contains(err.Error(), "passenger (12/12 failed)") {
		t.Errorf("Error does not report passenger failures: %v", err)
	}
}
