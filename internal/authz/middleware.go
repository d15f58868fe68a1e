// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package authz

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/wayfarer/internal/auth"
	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/metrics"
)

// MsgAdminsOnly is returned with 403 when a route gate denies a caller.
const MsgAdminsOnly = "Access denied. Admins only."

// Middleware gates routes by role. It runs after auth.Middleware.RequireUser.
type Middleware struct {
	enforcer *Enforcer
}

func NewMiddleware(enforcer *Enforcer) *Middleware {
	return &Middleware{enforcer: enforcer}
}

// AuthorizeRequest checks the caller's role against the request path and
// method.
func (m *Middleware) AuthorizeRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			metrics.RecordAuthzDenial(string(ReasonUnauthenticated))
			writeForbidden(w, MsgAdminsOnly)
			return
		}

		role := RoleFor(user.Admin)
		allowed, err := m.enforcer.Enforce(role, r.URL.Path, methodToAction(r.Method))
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("authorization error")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Internal server error."})
			return
		}
		if !allowed {
			reason := ReasonNotAdmin
			if !strings.HasPrefix(r.URL.Path, "/api/admin/") {
				reason = ReasonNotOwner
			}
			metrics.RecordAuthzDenial(string(reason))
			logging.Ctx(r.Context()).Info().
				Str("user_id", user.ID).
				Str("role", role).
				Str("path", r.URL.Path).
				Msg("route access denied")
			writeForbidden(w, MsgAdminsOnly)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// methodToAction maps HTTP methods to policy actions.
func methodToAction(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return "read"
	case http.MethodDelete:
		return "delete"
	default:
		return "write"
	}
}

func writeForbidden(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
