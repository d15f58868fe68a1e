// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

// JWTAuthenticator accepts Wayfarer session tokens.
type JWTAuthenticator struct {
	manager *JWTManager
}

func NewJWTAuthenticator(manager *JWTManager) *JWTAuthenticator {
	return &JWTAuthenticator{manager: manager}
}

// Authenticate validates the request's token.
func (a *JWTAuthenticator) Authenticate(_ context.Context, r *http.Request) (*AuthSubject, error) {
	tok := ExtractToken(r)
	if tok == "" {
		return nil, ErrNoCredentials
	}

	claims, err := a.manager.ValidateToken(tok)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredCredentials
		}
		// A malformed token may still be an OIDC token in "both" mode.
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrTokenInvalidIssuer) || errors.Is(err, jwt.ErrTokenUnverifiable) {
			return nil, ErrNoCredentials
		}
		return nil, ErrInvalidCredentials
	}

	s := &AuthSubject{
		ID:     claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
		Issuer: claims.Issuer,
		Method: AuthModeJWT,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return s, nil
}

func (a *JWTAuthenticator) Name() string {
	return string(AuthModeJWT)
}

// Priority puts local tokens ahead of OIDC.
func (a *JWTAuthenticator) Priority() int {
	return 10
}

var _ Authenticator = (*JWTAuthenticator)(nil)
