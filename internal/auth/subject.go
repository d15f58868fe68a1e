// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/wayfarer/internal/models"
)

// AuthMode selects which credentials are accepted.
type AuthMode string

const (
	AuthModeJWT  AuthMode = "jwt"
	AuthModeOIDC AuthMode = "oidc"
	AuthModeBoth AuthMode = "both"
)

// ParseAuthMode converts a configuration value to an AuthMode. Empty means jwt.
func ParseAuthMode(s string) (AuthMode, error) {
	switch s {
	case "", "jwt":
		return AuthModeJWT, nil
	case "oidc":
		return AuthModeOIDC, nil
	case "both":
		return AuthModeBoth, nil
	default:
		return "", errors.New("invalid auth mode: " + s)
	}
}

func (m AuthMode) String() string {
	return string(m)
}

// Standard authentication errors.
var (
	// ErrNoCredentials means the request carried no token for this
	// authenticator; the next one in a chain may still succeed.
	ErrNoCredentials = errors.New("no credentials provided")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrExpiredCredentials = errors.New("credentials expired")

	// ErrAuthenticatorUnavailable means the provider could not be reached.
	ErrAuthenticatorUnavailable = errors.New("authenticator unavailable")
)

// Authenticator validates the credentials on a request.
type Authenticator interface {
	Authenticate(ctx context.Context, r *http.Request) (*AuthSubject, error)
	Name() string
	// Priority orders authenticators in a MultiAuthenticator; lower runs first.
	Priority() int
}

// AuthSubject is a validated token, before it is matched to a user record.
type AuthSubject struct {
	// ID is the Wayfarer user ID for local tokens and the provider's sub
	// claim for OIDC tokens.
	ID    string
	Email string
	// EmailVerified is the provider's email_verified claim. Local tokens
	// leave it false.
	EmailVerified bool
	Name          string
	Issuer        string
	Method        AuthMode
	ExpiresAt     int64
}

// IsLocal reports whether the subject came from a Wayfarer-issued token.
func (s *AuthSubject) IsLocal() bool {
	return s.Method == AuthModeJWT
}

type contextKey string

const userContextKey contextKey = "auth_user"

// ContextWithUser stores the resolved user on ctx.
func ContextWithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// UserFromContext returns the user stored by Middleware.RequireUser.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userContextKey).(*models.User)
	return u, ok && u != nil
}
