// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateStore,
		c.validateSearch,
		c.validateLists,
		c.validateSecurity,
		c.validateEvents,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateStore() error {
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("STORE_PATH is required unless STORE_IN_MEMORY=true")
	}
	return nil
}

var validSearchModes = map[string]bool{
	"fuzzy":     true,
	"substring": true,
}

func (c *Config) validateSearch() error {
	if !validSearchModes[c.Search.Mode] {
		return fmt.Errorf("SEARCH_MODE must be one of: fuzzy, substring")
	}
	if c.Search.Threshold <= 0 || c.Search.Threshold > 1 {
		return fmt.Errorf("SEARCH_THRESHOLD must be in (0, 1]")
	}
	if c.Search.DefaultLimit < 1 {
		return fmt.Errorf("SEARCH_DEFAULT_LIMIT must be at least 1")
	}
	return nil
}

func (c *Config) validateLists() error {
	if c.Lists.PublicGuestLimit < 1 {
		return fmt.Errorf("PUBLIC_GUEST_LIMIT must be at least 1")
	}
	if c.Lists.CacheTTL < 0 {
		return fmt.Errorf("LISTS_CACHE_TTL cannot be negative")
	}
	return nil
}

var validAuthModes = map[string]bool{
	"jwt":  true,
	"oidc": true,
	"both": true,
}

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateSecurity() error {
	if !validAuthModes[c.Security.AuthMode] {
		return fmt.Errorf("AUTH_MODE must be one of: jwt, oidc, both")
	}

	// Local login is disabled in oidc mode, so nothing is signed there.
	if c.Security.AuthMode != "oidc" {
		if err := c.validateJWTSecret(); err != nil {
			return err
		}
	}

	if c.Security.AuthMode != "jwt" {
		if c.Security.OIDC.IssuerURL == "" || c.Security.OIDC.ClientID == "" {
			return fmt.Errorf("OIDC_ISSUER_URL and OIDC_CLIENT_ID are required when AUTH_MODE is %s", c.Security.AuthMode)
		}
	}

	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT must be positive")
	}
	if c.Security.LoginAttempts < 1 {
		return fmt.Errorf("LOGIN_ATTEMPTS must be at least 1")
	}

	if err := c.validateAdminBootstrap(); err != nil {
		return err
	}
	if err := c.validateCORS(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

func (c *Config) validateJWTSecret() error {
	s := c.Security.JWTSecret
	if s == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(s) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters for security")
	}
	if containsPlaceholder(s) {
		return fmt.Errorf("JWT_SECRET contains a placeholder value - generate a secure secret with: openssl rand -base64 32")
	}
	return nil
}

func (c *Config) validateAdminBootstrap() error {
	email, pw := c.Security.AdminEmail, c.Security.AdminPassword
	if email == "" && pw == "" {
		return nil
	}
	if email == "" || pw == "" {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("ADMIN_EMAIL must be an email address")
	}
	if containsPlaceholder(pw) {
		return fmt.Errorf("ADMIN_PASSWORD contains a placeholder value - set a secure password")
	}
	if err := DefaultPasswordPolicy().ValidateWithError(pw, email); err != nil {
		return fmt.Errorf("ADMIN_PASSWORD: %w", err)
	}
	return nil
}

// validateCORS rejects wildcard origins in production, where they would let
// any site replay a stolen bearer token from a browser.
func (c *Config) validateCORS() error {
	if c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production; set explicit origins or ENVIRONMENT=development")
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	for _, o := range c.Security.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS reports whether startup should log a wildcard CORS warning.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS()
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validEventBackends = map[string]bool{
	"gochannel": true,
	"nats":      true,
}

func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	if !validEventBackends[c.Events.Backend] {
		return fmt.Errorf("EVENTS_BACKEND must be one of: gochannel, nats")
	}
	if c.Events.Topic == "" {
		return fmt.Errorf("EVENTS_TOPIC is required when events are enabled")
	}
	if c.Events.Backend == "nats" {
		if !c.Events.EmbeddedNATS && c.Events.NATSURL == "" {
			return fmt.Errorf("NATS_URL is required when EVENTS_BACKEND=nats without an embedded server")
		}
		if c.Events.EmbeddedNATS && (c.Events.NATSPort < 1 || c.Events.NATSPort > 65535) {
			return fmt.Errorf("NATS_PORT must be between 1 and 65535")
		}
	}
	if c.Events.CircuitBreaker.FailureThreshold == 0 {
		return fmt.Errorf("BREAKER_FAILURES must be at least 1")
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true, "disabled": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic, disabled")
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// IsProduction reports whether ENVIRONMENT is production or prod.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment reports whether ENVIRONMENT is empty, development or dev.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

// placeholderPatterns catch values copied from sample configs.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"YOUR_PASSWORD",
	"PLACEHOLDER",
	"EXAMPLE",
}

func containsPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, p := range placeholderPatterns {
		if strings.Contains(upper, p) {
			return true
		}
	}
	return false
}

// LocalLoginEnabled reports whether register and login issue local tokens.
func (s *SecurityConfig) LocalLoginEnabled() bool {
	return s.AuthMode != "oidc"
}
