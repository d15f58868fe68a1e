// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/zitadel/oidc/v3/pkg/client/rp"
	"github.com/zitadel/oidc/v3/pkg/oidc"

	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/logging"
)

// discoveryTimeout bounds the provider discovery request at startup.
const discoveryTimeout = 15 * time.Second

// idTokenVerifier verifies a raw ID token and returns its claims.
type idTokenVerifier func(ctx context.Context, token string) (*oidc.IDTokenClaims, error)

// OIDCAuthenticator accepts ID tokens from an external OpenID Connect
// provider. Verification (signature via JWKS, issuer, audience, expiry and
// algorithm) is done by the zitadel/oidc relying party.
type OIDCAuthenticator struct {
	issuer string
	verify idTokenVerifier
}

// NewOIDCAuthenticator runs provider discovery and returns an authenticator
// bound to the configured client ID.
func NewOIDCAuthenticator(ctx context.Context, cfg config.OIDCConfig) (*OIDCAuthenticator, error) {
	if cfg.IssuerURL == "" || cfg.ClientID == "" {
		return nil, fmt.Errorf("OIDC issuer URL and client ID are required")
	}
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, oidc.ScopeProfile, oidc.ScopeEmail}
	}

	dctx, cancel := context.WithTimeout(ctx, discoveryTimeout)
	defer cancel()

	relyingParty, err := rp.NewRelyingPartyOIDC(dctx,
		cfg.IssuerURL,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.RedirectURL,
		scopes,
		rp.WithHTTPClient(&http.Client{Timeout: discoveryTimeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("create relying party: %w", err)
	}

	verifier := relyingParty.IDTokenVerifier()
	return &OIDCAuthenticator{
		issuer: relyingParty.Issuer(),
		verify: func(ctx context.Context, token string) (*oidc.IDTokenClaims, error) {
			return rp.VerifyIDToken[*oidc.IDTokenClaims](ctx, token, verifier)
		},
	}, nil
}

// Authenticate verifies the request's ID token.
func (a *OIDCAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*AuthSubject, error) {
	tok := ExtractToken(r)
	if tok == "" {
		return nil, ErrNoCredentials
	}
	if a.verify == nil {
		return nil, fmt.Errorf("%w: verifier not initialized", ErrAuthenticatorUnavailable)
	}

	claims, err := a.verify(ctx, tok)
	if err != nil {
		return nil, mapVerificationError(err)
	}
	return subjectFromIDToken(claims), nil
}

func subjectFromIDToken(c *oidc.IDTokenClaims) *AuthSubject {
	s := &AuthSubject{
		ID:            c.Subject,
		Email:         c.Email,
		EmailVerified: bool(c.EmailVerified),
		Name:          c.Name,
		Issuer:        c.Issuer,
		Method:        AuthModeOIDC,
	}
	if s.Name == "" {
		s.Name = c.PreferredUsername
	}
	if !c.Expiration.AsTime().IsZero() {
		s.ExpiresAt = c.Expiration.AsTime().Unix()
	}
	return s
}

// mapVerificationError folds the library's errors into this package's.
func mapVerificationError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "expired"):
		return ErrExpiredCredentials
	case strings.Contains(msg, "issuer"):
		logging.Warn().Err(err).Msg("OIDC token issuer mismatch")
		return fmt.Errorf("%w: issuer mismatch", ErrInvalidCredentials)
	case strings.Contains(msg, "audience"):
		logging.Warn().Err(err).Msg("OIDC token audience mismatch")
		return fmt.Errorf("%w: audience mismatch", ErrInvalidCredentials)
	default:
		logging.Debug().Err(err).Msg("OIDC token validation failed")
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, msg)
	}
}

func (a *OIDCAuthenticator) Name() string {
	return string(AuthModeOIDC)
}

func (a *OIDCAuthenticator) Priority() int {
	return 20
}

// Issuer returns the discovered issuer URL.
func (a *OIDCAuthenticator) Issuer() string {
	return a.issuer
}

var _ Authenticator = (*OIDCAuthenticator)(nil)
