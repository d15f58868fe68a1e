// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"context"
	"time"

	"github.com/tomtom215/wayfarer/internal/auth"
	"github.com/tomtom215/wayfarer/internal/catalog"
	"github.com/tomtom215/wayfarer/internal/identity"
	"github.com/tomtom215/wayfarer/internal/lists"
	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/search"
)

// ReadinessCheck reports whether one dependency can serve traffic.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Handler holds the services behind the HTTP routes.
type Handler struct {
	catalog  *catalog.Catalog
	matcher  *search.Matcher
	lists    *lists.Service
	users    *identity.Directory
	tokens   *auth.JWTManager // nil when local login is disabled
	checks   []ReadinessCheck
	security *logging.SecurityLogger

	secureCookies bool
	startTime     time.Time
}

// HandlerConfig wires a Handler.
type HandlerConfig struct {
	Catalog *catalog.Catalog
	Matcher *search.Matcher
	Lists   *lists.Service
	Users   *identity.Directory
	Tokens  *auth.JWTManager
	Checks  []ReadinessCheck

	// SecureCookies sets the Secure flag on the token cookie.
	SecureCookies bool
}

// NewHandler creates a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		catalog:       cfg.Catalog,
		matcher:       cfg.Matcher,
		lists:         cfg.Lists,
		users:         cfg.Users,
		tokens:        cfg.Tokens,
		checks:        cfg.Checks,
		security:      logging.NewSecurityLogger(),
		secureCookies: cfg.SecureCookies,
		startTime:     time.Now(),
	}
}
