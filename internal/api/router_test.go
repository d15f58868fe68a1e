// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/wayfarer/internal/middleware"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	healthy := newTestServerWith(t, testServerOptions{
		localLogin: true,
		checks:     []ReadinessCheck{{Name: "store", Check: func(context.Context) error { return nil }}},
	})
	resp := healthy.do(http.MethodGet, "/health/live", "", nil)
	expectStatus(t, resp, http.StatusOK)
	var live LiveResponse
	decodeBody(t, resp, &live)
	if live.Status != "alive" {
		t.Errorf("live.Status = %q", live.Status)
	}

	resp = healthy.do(http.MethodGet, "/health/ready", "", nil)
	expectStatus(t, resp, http.StatusOK)
	var ready ReadyResponse
	decodeBody(t, resp, &ready)
	if ready.Status != "ready" || ready.Checks["store"] != "ok" {
		t.Errorf("ready = %+v", ready)
	}

	broken := newTestServerWith(t, testServerOptions{
		localLogin: true,
		checks:     []ReadinessCheck{{Name: "events", Check: func(context.Context) error { return errors.New("bus closed") }}},
	})
	resp = broken.do(http.MethodGet, "/health/ready", "", nil)
	expectStatus(t, resp, http.StatusServiceUnavailable)
	decodeBody(t, resp, &ready)
	if ready.Status != "not_ready" || ready.Checks["events"] != "bus closed" {
		t.Errorf("ready = %+v", ready)
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	resp := s.do(http.MethodGet, "/api/open/nothing-here", "", nil)
	expectError(t, resp, http.StatusNotFound, "Not found.")

	resp = s.do(http.MethodDelete, "/api/open/destinations", "", nil)
	expectError(t, resp, http.StatusMethodNotAllowed, "Method not allowed.")
}

func TestResponseHeaders(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	alice := s.register("alice@example.org")

	resp := s.do(http.MethodGet, "/api/open/countries", "", nil)
	expectStatus(t, resp, http.StatusOK)
	if resp.Header.Get(middleware.RequestIDHeader) == "" {
		t.Error("missing request ID header")
	}
	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := resp.Header.Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
		t.Errorf("Content-Type = %q", got)
	}

	resp = s.do(http.MethodGet, "/api/secure/lists", alice, nil)
	expectStatus(t, resp, http.StatusOK)
	if got := resp.Header.Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control on secure route = %q, want no-store", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, s.srv.URL+"/api/secure/list", nil)
	req.Header.Set("Origin", "https://app.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	resp, err := s.srv.Client().Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestMetricsAndSwagger(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	s.do(http.MethodGet, "/api/open/countries", "", nil)

	resp := s.do(http.MethodGet, "/metrics", "", nil)
	expectStatus(t, resp, http.StatusOK)
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "api_requests_total{") {
		t.Error("metrics output lacks the API request counter")
	}

	resp = s.do(http.MethodGet, "/swagger/index.html", "", nil)
	expectStatus(t, resp, http.StatusOK)
}

func TestRateLimitRejects(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitRequests: 2, RateLimitWindow: 60e9})
	h := m.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/open/countries", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		h.ServeHTTP(last, req)
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", last.Code)
	}
	if !strings.Contains(last.Body.String(), msgRateLimited) {
		t.Errorf("body = %s, want rate limit message", last.Body.String())
	}

	disabled := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitRequests: 1, RateLimitWindow: 60e9, RateLimitDisabled: true})
	h = disabled.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("disabled limiter rejected request %d", i)
		}
	}
}
