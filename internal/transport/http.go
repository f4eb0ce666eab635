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
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/pgEdge/pgedge-datagen/internal/datagen"
	"github.com/pgEdge/pgedge-datagen/internal/entity"
	"github.com/pgEdge/pgedge-datagen/internal/generator"
	"github.com/pgEdge/pgedge-datagen/internal/logging"
	"github.com/pgEdge/pgedge-datagen/pkg/version"
)

// DefaultHTTPTimeout bounds a single batch submission.
const DefaultHTTPTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 512

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	// BaseURL is the API root; entity endpoints are appended to it.
	BaseURL string

	// Token, when set, is sent as a bearer token.
	Token string

	// Timeout bounds each request. Zero means DefaultHTTPTimeout.
	Timeout time.Duration
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("POST %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("POST %s returned status %d: %s", e.URL, e.StatusCode, e.Body)
}

// HTTP posts each batch as a JSON array to the entity's endpoint.
type HTTP struct {
	baseURL  *url.URL
	token    string
	client   *http.Client
	registry *entity.Registry
}

// NewHTTP creates an HTTP transport.
func NewHTTP(cfg HTTPConfig, registry *entity.Registry) (*HTTP, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", cfg.BaseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing host", cfg.BaseURL)
	}
	if u.Fragment != "" {
		return nil, fmt.Errorf("invalid base URL %q: fragments are not allowed", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	return &HTTP{
		baseURL:  u,
		token:    cfg.Token,
		client:   &http.Client{Timeout: timeout},
		registry: registry,
	}, nil
}

// Name implements dispatch.Transport.
func (h *HTTP) Name() string {
	return KindHTTP
}

// Endpoint returns the URL a batch of type t is posted to.
func (h *HTTP) Endpoint(t entity.Type) (string, error) {
	def, err := h.registry.Lookup(t)
	if err != nil {
		return "", err
	}
	u := h.baseURL.JoinPath(def.Endpoint)
	q := u.Query()
	q.Set("batch", "true")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Send implements dispatch.Transport.
func (h *HTTP) Send(ctx context.Context, batch *generator.Batch) error {
	target, err := h.Endpoint(batch.Entity)
	if err != nil {
		return err
	}

	body, err := json.Marshal(batch.Records)
	if err != nil {
		return fmt.Errorf("failed to encode %s batch: %w", batch.Entity, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("X-Request-ID", batch.ID)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	logging.Debug().
		Str("url", target).
		Int("records", batch.Count()).
		Str("payload_size", datagen.FormatSize(int64(len(body)))).
		Msg("Sending POST request")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Close releases idle connections.
func (h *HTTP) Close() error {
	h.client.CloseIdleConnections()
	return nil
}
