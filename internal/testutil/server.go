//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// Request is a copy of a request received by a RecordingServer.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// RecordingServer is an HTTP server that records every request it receives
// and answers with a fixed status.
type RecordingServer struct {
	*httptest.Server

	mu       sync.Mutex
	status   int
	body     string
	requests []Request
}

// NewRecordingServer starts a RecordingServer that is closed when the test
// finishes.
func NewRecordingServer(t *testing.T, status int) *RecordingServer {
	t.Helper()

	rs := &RecordingServer{status: status}
	rs.Server = httptest.NewServer(http.HandlerFunc(rs.handle))
	t.Cleanup(rs.Close)
	return rs
}

// SetStatus changes the status returned for subsequent requests.
func (rs *RecordingServer) SetStatus(status int) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.status = status
}

// SetBody sets the response body returned for subsequent requests.
func (rs *RecordingServer) SetBody(body string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.body = body
}

// Requests returns the requests received so far, in arrival order.
func (rs *RecordingServer) Requests() []Request {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make([]Request, len(rs.requests))
	copy(out, rs.requests)
	return out
}

func (rs *RecordingServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	rs.mu.Lock()
	rs.requests = append(rs.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	status, respBody := rs.status, rs.body
	rs.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if respBody != "" {
		_, _ = io.WriteString(w, respBody)
	}
}
