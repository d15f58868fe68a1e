// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/wayfarer/internal/auth"
	"github.com/tomtom215/wayfarer/internal/authz"
	"github.com/tomtom215/wayfarer/internal/catalog"
	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/identity"
	"github.com/tomtom215/wayfarer/internal/lists"
	"github.com/tomtom215/wayfarer/internal/models"
	"github.com/tomtom215/wayfarer/internal/search"
	"github.com/tomtom215/wayfarer/internal/store"
)

const (
	testSecret        = "k7Pq2vXw9Lm4Rt8Ys1Bn6Hc3Jd5Fg0Za"
	testAdminEmail    = "root@example.org"
	testAdminPassword = "Tr4vel!Europe#2026"
	testUserPassword  = "lisbon2026"
)

func testDestinations() []models.Destination {
	return []models.Destination{
		{CustomID: 1, Name: "Rome", Region: "Lazio", Country: "Italy", Latitude: 41.9028, Longitude: 12.4964},
		{CustomID: 2, Name: "Paris", Region: "Ile-de-France", Country: "France", Latitude: 48.8566, Longitude: 2.3522},
		{CustomID: 3, Name: "Lisbon", Region: "Lisbon", Country: "Portugal", Latitude: 38.7223, Longitude: -9.1393},
		{CustomID: 4, Name: "Florence", Region: "Tuscany", Country: "Italy", Latitude: 43.7696, Longitude: 11.2558},
	}
}

type testServer struct {
	t      *testing.T
	srv    *httptest.Server
	users  *identity.Directory
	tokens *auth.JWTManager
}

type testServerOptions struct {
	localLogin bool
	checks     []ReadinessCheck
	catalog    []models.Destination
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWith(t, testServerOptions{localLogin: true, catalog: testDestinations()})
}

func newTestServerWith(t *testing.T, opts testServerOptions) *testServer {
	t.Helper()

	mem := store.NewMemory()
	t.Cleanup(func() { _ = mem.Close() })

	cat := catalog.New(opts.catalog)
	users := identity.NewDirectory(mem, 5, identity.WithBcryptCost(bcrypt.MinCost))
	if _, err := users.EnsureAdmin(context.Background(), testAdminEmail, testAdminPassword); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}

	tokens, err := auth.NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, SessionTimeout: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	enforcer, err := authz.NewEnforcer(config.CasbinConfig{})
	if err != nil {
		t.Fatalf("NewEnforcer: %v", err)
	}
	t.Cleanup(enforcer.Close)

	svc := lists.NewService(mem, cat, nil, config.ListsConfig{PublicGuestLimit: 2, CacheTTL: time.Minute})
	t.Cleanup(svc.Close)

	h := NewHandler(HandlerConfig{
		Catalog: cat,
		Matcher: search.NewMatcher(config.SearchConfig{Mode: "substring", Threshold: 0.7, DefaultLimit: 209}),
		Lists:   svc,
		Users:   users,
		Tokens:  tokens,
		Checks:  opts.checks,
	})
	router := NewRouter(RouterConfig{
		Handler: h,
		Authn:   auth.NewMiddleware(auth.NewJWTAuthenticator(tokens), users),
		Authz:   authz.NewMiddleware(enforcer),
		Middleware: &ChiMiddlewareConfig{
			CORSAllowedOrigins: []string{"*"},
			RateLimitDisabled:  true,
		},
		LocalLogin: opts.localLogin,
	})

	srv := httptest.NewServer(router.SetupChi())
	t.Cleanup(srv.Close)
	return &testServer{t: t, srv: srv, users: users, tokens: tokens}
}

// do sends a request with an optional JSON body and bearer token.
func (s *testServer) do(method, path, token string, body interface{}) *http.Response {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, s.srv.URL+path, &buf)
	if err != nil {
		s.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.srv.Client().Do(req)
	if err != nil {
		s.t.Fatalf("%s %s: %v", method, path, err)
	}
	s.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// register creates a local account and returns a token for it.
func (s *testServer) register(email string) string {
	s.t.Helper()
	resp := s.do(http.MethodPost, "/api/open/register", "", map[string]string{
		"email":       email,
		"password":    testUserPassword,
		"displayName": strings.Split(email, "@")[0],
	})
	expectStatus(s.t, resp, http.StatusCreated)
	return s.login(email, testUserPassword)
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	resp := s.do(http.MethodPost, "/api/open/login", "", map[string]string{"email": email, "password": password})
	expectStatus(s.t, resp, http.StatusOK)
	var out LoginResponse
	decodeBody(s.t, resp, &out)
	if out.Token == "" {
		s.t.Fatal("login returned an empty token")
	}
	return out.Token
}

func (s *testServer) adminToken() string {
	s.t.Helper()
	return s.login(testAdminEmail, testAdminPassword)
}

func (s *testServer) createList(token, name string, public bool, dests ...int) {
	s.t.Helper()
	resp := s.do(http.MethodPost, "/api/secure/list", token, map[string]interface{}{
		"name":         name,
		"visibility":   public,
		"description":  "test list",
		"destinations": dests,
	})
	expectStatus(s.t, resp, http.StatusCreated)
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		t.Fatalf("%s %s: status = %d, want %d (body %s)", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, want, buf.String())
	}
}

func decodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

// expectError checks the status and the {error} message.
func expectError(t *testing.T, resp *http.Response, status int, msg string) {
	t.Helper()
	expectStatus(t, resp, status)
	var body ErrorResponse
	decodeBody(t, resp, &body)
	if body.Error != msg {
		t.Errorf("error = %q, want %q", body.Error, msg)
	}
}

// expectMessage checks the status and the {message} text.
func expectMessage(t *testing.T, resp *http.Response, status int, msg string) {
	t.Helper()
	expectStatus(t, resp, status)
	var body MessageResponse
	decodeBody(t, resp, &body)
	if body.Message != msg {
		t.Errorf("message = %q, want %q", body.Message, msg)
	}
}
