// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/wayfarer/internal/auth"
	"github.com/tomtom215/wayfarer/internal/authz"
	"github.com/tomtom215/wayfarer/internal/middleware"
)

// Router assembles the HTTP surface.
type Router struct {
	handler       *Handler
	authn         *auth.Middleware
	authz         *authz.Middleware
	chiMiddleware *ChiMiddleware
	websocket     http.Handler
	localLogin    bool
}

// RouterConfig wires a Router. WebSocket may be nil to disable the feed.
type RouterConfig struct {
	Handler    *Handler
	Authn      *auth.Middleware
	Authz      *authz.Middleware
	Middleware *ChiMiddlewareConfig
	WebSocket  http.Handler

	// LocalLogin mounts register and login. It is false in oidc mode.
	LocalLogin bool
}

// NewRouter creates a Router.
func NewRouter(cfg RouterConfig) *Router {
	return &Router{
		handler:       cfg.Handler,
		authn:         cfg.Authn,
		authz:         cfg.Authz,
		chiMiddleware: NewChiMiddleware(cfg.Middleware),
		websocket:     cfg.WebSocket,
		localLogin:    cfg.LocalLogin,
	}
}

// SetupChi builds the chi mux with every route.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.SecurityHeaders)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "Not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	r.Route("/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(router.chiMiddleware.RateLimit())

		if router.websocket != nil {
			r.With(router.chiMiddleware.RateLimitWebSocket()).Get("/ws", router.websocket.ServeHTTP)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.Compression)
			router.registerOpenRoutes(r)
			router.registerSecureRoutes(r)
			router.registerAdminRoutes(r)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}

func (router *Router) registerOpenRoutes(r chi.Router) {
	h := router.handler
	r.Route("/open", func(r chi.Router) {
		r.Get("/destinations", h.Destinations)
		r.Get("/destination/{id}", h.Destination)
		r.Get("/destination/{id}/coordinates", h.DestinationCoordinates)
		r.Get("/countries", h.Countries)
		r.Get("/search", h.Search)
		r.Get("/public-lists", h.PublicListsGuest)

		if router.localLogin {
			r.Group(func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimitAuth())
				r.Post("/register", h.Register)
				r.Post("/login", h.Login)
			})
		}
	})
}

func (router *Router) registerSecureRoutes(r chi.Router) {
	h := router.handler
	r.Route("/secure", func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Use(router.authn.RequireUser)
		r.Use(router.authz.AuthorizeRequest)

		r.Get("/me", h.Me)
		r.Get("/lists", h.MyLists)
		r.Get("/public-lists", h.PublicListsAll)
		r.Get("/list/{name}/details", h.ListDetails)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitWrite())
			r.Post("/list", h.CreateList)
			r.Put("/list/{name}", h.UpdateList)
			r.Delete("/list/{name}", h.DeleteList)
			r.Post("/lists/{id}/review", h.AddReview)
		})
	})
}

func (router *Router) registerAdminRoutes(r chi.Router) {
	h := router.handler
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Use(router.authn.RequireUser)
		r.Use(router.authz.AuthorizeRequest)

		r.Get("/users", h.Users)
		r.Get("/reviews", h.AllReviews)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitWrite())
			r.Post("/ban-user", h.BanUser)
			r.Post("/unban-user", h.UnbanUser)
			r.Post("/make-admin", h.MakeAdmin)
			r.Post("/remove-admin", h.RemoveAdmin)
			r.Post("/toggle-review-hidden", h.ToggleReviewHidden)
		})
	})
}
