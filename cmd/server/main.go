// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/wayfarer/docs"
	"github.com/tomtom215/wayfarer/internal/api"
	"github.com/tomtom215/wayfarer/internal/auth"
	"github.com/tomtom215/wayfarer/internal/authz"
	"github.com/tomtom215/wayfarer/internal/catalog"
	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/events"
	"github.com/tomtom215/wayfarer/internal/identity"
	"github.com/tomtom215/wayfarer/internal/lists"
	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/search"
	"github.com/tomtom215/wayfarer/internal/store"
	"github.com/tomtom215/wayfarer/internal/supervisor"
	"github.com/tomtom215/wayfarer/internal/supervisor/services"
	"github.com/tomtom215/wayfarer/internal/websocket"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("search_mode", cfg.Search.Mode).
		Msg("Starting Wayfarer")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS_ORIGINS=* allows any origin; set explicit origins before exposing the server")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting disabled (DISABLE_RATE_LIMIT=true)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === DATA LAYER ===

	repo, err := openStore(cfg.Store)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	seeded, err := catalog.Seed(ctx, repo, cfg.Catalog.CSVPath)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Catalog.CSVPath).Msg("Failed to seed destination catalog")
	}
	cat, err := catalog.FromStore(ctx, repo)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load destination catalog")
	}
	logging.Info().Int("destinations", cat.Len()).Bool("seeded", seeded).Msg("Destination catalog loaded")

	// === EVENTS ===

	eventsStack, err := startEvents(ctx, cfg.Events)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to start event bus")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		eventsStack.close(closeCtx)
	}()

	// === DOMAIN SERVICES ===

	listService := lists.NewService(repo, cat, eventsStack.publisher(), cfg.Lists)
	defer listService.Close()

	users := identity.NewDirectory(repo, cfg.Security.LoginAttempts)
	if cfg.Security.AdminEmail != "" {
		created, err := users.EnsureAdmin(ctx, cfg.Security.AdminEmail, cfg.Security.AdminPassword)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to bootstrap administrator")
		}
		if created {
			logging.Info().Str("email", cfg.Security.AdminEmail).Msg("Administrator account created")
		}
	}

	matcher := search.NewMatcher(cfg.Search)

	// === AUTHENTICATION AND AUTHORIZATION ===

	authenticator, jwtManager, err := buildAuthentication(ctx, &cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to configure authentication")
	}

	enforcer, err := authz.NewEnforcer(cfg.Security.Casbin)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create authorization enforcer")
	}
	defer enforcer.Close()

	// === HTTP ===

	wsHub := websocket.NewHub()

	handler := api.NewHandler(api.HandlerConfig{
		Catalog:       cat,
		Matcher:       matcher,
		Lists:         listService,
		Users:         users,
		Tokens:        jwtManager,
		Checks:        readinessChecks(repo, eventsStack.bus),
		SecureCookies: cfg.IsProduction(),
	})

	router := api.NewRouter(api.RouterConfig{
		Handler:    handler,
		Authn:      auth.NewMiddleware(authenticator, users),
		Authz:      authz.NewMiddleware(enforcer),
		Middleware: api.ChiMiddlewareConfigFrom(&cfg.Security),
		WebSocket:  websocket.NewHandler(wsHub, cfg.Security.CORSOrigins),
		LocalLogin: cfg.Security.LocalLoginEnabled(),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// === SUPERVISOR TREE ===

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Data layer
	if db, ok := repo.(*store.Badger); ok {
		tree.AddDataService(services.NewStoreGCService(db, services.DefaultGCInterval, services.DefaultGCDiscardRatio))
		logging.Info().Msg("Store GC service added to supervisor tree")
	}

	// Messaging layer
	if eventsStack.server != nil {
		tree.AddMessagingService(eventsStack.server)
	}
	tree.AddMessagingService(wsHub)
	if eventsStack.bus != nil {
		tree.AddMessagingService(events.NewForwarder(eventsStack.bus, wsHub.BroadcastEvent, listService.InvalidateOnEvent))
		logging.Info().Msg("Event forwarder added to supervisor tree")
	}

	// API layer
	tree.AddAPIService(services.NewHTTPServerService(server, services.DefaultShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START ===

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Serve returns once ctx is cancelled and every layer has stopped, or
	// when the root supervisor gives up.
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
