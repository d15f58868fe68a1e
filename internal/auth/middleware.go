// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/metrics"
	"github.com/tomtom215/wayfarer/internal/models"
)

// Messages returned with 401.
const (
	MsgNoToken         = "Unauthorized. No token provided."
	MsgInvalidToken    = "Unauthorized. Invalid token."
	MsgAccountDisabled = "Unauthorized. Account disabled."
)

// UserResolver maps an authenticated subject to the current user record.
type UserResolver interface {
	Get(ctx context.Context, id string) (*models.User, error)
	ProvisionOIDC(ctx context.Context, subject, email, name string, emailVerified bool) (*models.User, error)
}

// Middleware authenticates requests and loads the caller's user record.
type Middleware struct {
	authenticator Authenticator
	users         UserResolver
	security      *logging.SecurityLogger
}

func NewMiddleware(authenticator Authenticator, users UserResolver) *Middleware {
	return &Middleware{
		authenticator: authenticator,
		users:         users,
		security:      logging.NewSecurityLogger(),
	}
}

// RequireUser rejects requests without a valid token for an enabled user.
// On success the user is available through UserFromContext.
func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ExtractToken(r) == "" {
			metrics.RecordAuthFailure("no_token")
			writeUnauthorized(w, MsgNoToken)
			return
		}

		subject, err := m.authenticator.Authenticate(r.Context(), r)
		if err != nil {
			reason := "invalid_token"
			if errors.Is(err, ErrExpiredCredentials) {
				reason = "expired_token"
			}
			metrics.RecordAuthFailure(reason)
			logging.Ctx(r.Context()).Debug().Err(err).Str("authenticator", m.authenticator.Name()).Msg("authentication failed")
			writeUnauthorized(w, MsgInvalidToken)
			return
		}

		user, err := m.resolve(r.Context(), subject)
		if err != nil {
			metrics.RecordAuthFailure("unknown_user")
			logging.Ctx(r.Context()).Debug().Err(err).Msg("could not resolve user for token")
			writeUnauthorized(w, MsgAccountDisabled)
			return
		}
		if user.Disabled {
			metrics.RecordAuthFailure("disabled")
			m.security.LogAccessDenied(user.ID, r.RemoteAddr, "account disabled")
			writeUnauthorized(w, MsgAccountDisabled)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

func (m *Middleware) resolve(ctx context.Context, s *AuthSubject) (*models.User, error) {
	if s.IsLocal() {
		return m.users.Get(ctx, s.ID)
	}
	return m.users.ProvisionOIDC(ctx, s.ID, s.Email, s.Name, s.EmailVerified)
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="wayfarer"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
