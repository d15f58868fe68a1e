// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package auth

import (
	"context"
	"errors"
	"net/http"
	"sort"
)

// MultiAuthenticator tries authenticators in priority order until one
// succeeds. ErrNoCredentials and ErrAuthenticatorUnavailable move on to the
// next authenticator; any other error stops the chain.
type MultiAuthenticator struct {
	authenticators []Authenticator
}

func NewMultiAuthenticator(authenticators ...Authenticator) *MultiAuthenticator {
	m := &MultiAuthenticator{authenticators: append([]Authenticator(nil), authenticators...)}
	sort.SliceStable(m.authenticators, func(i, j int) bool {
		return m.authenticators[i].Priority() < m.authenticators[j].Priority()
	})
	return m
}

func (m *MultiAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*AuthSubject, error) {
	lastErr := ErrNoCredentials
	for _, a := range m.authenticators {
		subject, err := a.Authenticate(ctx, r)
		if err == nil {
			return subject, nil
		}
		lastErr = err
		if errors.Is(err, ErrNoCredentials) || errors.Is(err, ErrAuthenticatorUnavailable) {
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

func (m *MultiAuthenticator) Name() string {
	return string(AuthModeBoth)
}

func (m *MultiAuthenticator) Priority() int {
	return 0
}

// Authenticators returns the chain in the order it is tried.
func (m *MultiAuthenticator) Authenticators() []Authenticator {
	return append([]Authenticator(nil), m.authenticators...)
}

// BuildAuthenticator assembles the authenticator for mode. oidcAuth may be
// nil in jwt mode.
func BuildAuthenticator(mode AuthMode, jwtManager *JWTManager, oidcAuth *OIDCAuthenticator) (Authenticator, error) {
	switch mode {
	case AuthModeJWT:
		if jwtManager == nil {
			return nil, errors.New("JWT manager required for jwt auth mode")
		}
		return NewJWTAuthenticator(jwtManager), nil
	case AuthModeOIDC:
		if oidcAuth == nil {
			return nil, errors.New("OIDC authenticator required for oidc auth mode")
		}
		return oidcAuth, nil
	case AuthModeBoth:
		if jwtManager == nil || oidcAuth == nil {
			return nil, errors.New("both auth mode needs a JWT manager and an OIDC authenticator")
		}
		return NewMultiAuthenticator(NewJWTAuthenticator(jwtManager), oidcAuth), nil
	default:
		return nil, errors.New("invalid auth mode: " + string(mode))
	}
}
