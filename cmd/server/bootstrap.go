// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/wayfarer/internal/api"
	"github.com/tomtom215/wayfarer/internal/auth"
	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/events"
	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/store"
)

// openStore opens Badger at cfg.Path, or an in-memory store when
// cfg.InMemory is set.
func openStore(cfg config.StoreConfig) (store.Repository, error) {
	if cfg.InMemory {
		logging.Warn().Msg("Using in-memory store; data is lost on restart")
		return store.NewMemory(), nil
	}
	db, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// eventStack is the optional event plumbing. Both fields are nil when events
// are disabled, and server is nil unless an embedded NATS server was asked for.
type eventStack struct {
	server *events.EmbeddedServer
	bus    *events.Bus
}

// startEvents starts the embedded NATS server (if configured) and connects
// the bus to it or to cfg.NATSURL.
func startEvents(ctx context.Context, cfg config.EventsConfig) (*eventStack, error) {
	stack := &eventStack{}
	if !cfg.Enabled {
		logging.Info().Msg("Domain events disabled (EVENTS_ENABLED=false)")
		return stack, nil
	}

	var natsURL string
	if cfg.Backend == events.BackendNATS && cfg.EmbeddedNATS {
		srv, err := events.NewEmbeddedServer(events.ServerConfig{
			Host:     "127.0.0.1",
			Port:     cfg.NATSPort,
			StoreDir: cfg.NATSStoreDir,
		})
		if err != nil {
			return nil, fmt.Errorf("start embedded NATS: %w", err)
		}
		stack.server = srv
		natsURL = srv.ClientURL()
	}

	bus, err := events.NewBus(cfg, natsURL)
	if err != nil {
		if stack.server != nil {
			_ = stack.server.Shutdown(ctx)
		}
		return nil, fmt.Errorf("connect event bus: %w", err)
	}
	stack.bus = bus
	logging.Info().Str("backend", bus.Backend()).Str("topic", cfg.Topic).Msg("Event bus connected")
	return stack, nil
}

// publisher returns the bus, or a publisher that drops events when the bus
// is disabled.
func (s *eventStack) publisher() events.Publisher {
	if s.bus == nil {
		return events.NopPublisher{}
	}
	return s.bus
}

func (s *eventStack) close(ctx context.Context) {
	if s.bus != nil {
		if err := s.bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			logging.Error().Err(err).Msg("Error stopping embedded NATS server")
		}
	}
}

// buildAuthentication returns the authenticator for AUTH_MODE and, when local
// login is enabled, the JWT manager that signs login tokens.
func buildAuthentication(ctx context.Context, sec *config.SecurityConfig) (auth.Authenticator, *auth.JWTManager, error) {
	mode, err := auth.ParseAuthMode(sec.AuthMode)
	if err != nil {
		return nil, nil, err
	}

	var jwtManager *auth.JWTManager
	if sec.LocalLoginEnabled() {
		jwtManager, err = auth.NewJWTManager(sec)
		if err != nil {
			return nil, nil, fmt.Errorf("create JWT manager: %w", err)
		}
	}

	var oidcAuth *auth.OIDCAuthenticator
	if mode != auth.AuthModeJWT {
		oidcAuth, err = auth.NewOIDCAuthenticator(ctx, sec.OIDC)
		if err != nil {
			return nil, nil, fmt.Errorf("create OIDC authenticator: %w", err)
		}
		logging.Info().Str("issuer", sec.OIDC.IssuerURL).Msg("OIDC authentication enabled")
	}

	authenticator, err := auth.BuildAuthenticator(mode, jwtManager, oidcAuth)
	if err != nil {
		return nil, nil, err
	}
	logging.Info().Str("mode", mode.String()).Bool("local_login", sec.LocalLoginEnabled()).Msg("Authentication configured")
	return authenticator, jwtManager, nil
}

// errBreakerOpen marks the event bus as unready while its breaker is open.
var errBreakerOpen = errors.New("event bus circuit breaker is open")

// readinessChecks lists the dependencies /health/ready probes.
func readinessChecks(repo store.Repository, bus *events.Bus) []api.ReadinessCheck {
	checks := []api.ReadinessCheck{{Name: "store", Check: repo.Ping}}
	if bus != nil {
		checks = append(checks, api.ReadinessCheck{
			Name: "events",
			Check: func(context.Context) error {
				if bus.BreakerState() == "open" {
					return errBreakerOpen
				}
				return nil
			},
		})
	}
	return checks
}
