// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package config loads Wayfarer configuration with koanf.
//
// Loading order (later layers win):
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/wayfarer/config.yaml)
//  3. Environment variables (HTTP_PORT, JWT_SECRET, SEARCH_MODE, ...)
//
// Config is immutable after Load and safe for concurrent reads.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Store    StoreConfig    `koanf:"store"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Search   SearchConfig   `koanf:"search"`
	Lists    ListsConfig    `koanf:"lists"`
	Security SecurityConfig `koanf:"security"`
	Events   EventsConfig   `koanf:"events"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development or production
}

// StoreConfig configures the Badger key/value store.
type StoreConfig struct {
	Path       string `koanf:"path"`
	InMemory   bool   `koanf:"in_memory"`
	SyncWrites bool   `koanf:"sync_writes"`
}

// CatalogConfig points at the destination CSV used to seed an empty store.
type CatalogConfig struct {
	CSVPath string `koanf:"csv_path"`
}

// SearchConfig selects the destination matcher.
type SearchConfig struct {
	Mode         string  `koanf:"mode"`      // fuzzy or substring
	Threshold    float64 `koanf:"threshold"` // Dice coefficient cut-off for fuzzy mode
	DefaultLimit int     `koanf:"default_limit"`
}

// ListsConfig holds list-browsing limits.
type ListsConfig struct {
	PublicGuestLimit int           `koanf:"public_guest_limit"`
	CacheTTL         time.Duration `koanf:"cache_ttl"`
}

// SecurityConfig holds authentication and request-limiting settings.
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"` // jwt, oidc, both
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	AdminEmail        string        `koanf:"admin_email"`
	AdminPassword     string        `koanf:"admin_password"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	LoginAttempts     int           `koanf:"login_attempts"` // per email per minute
	CORSOrigins       []string      `koanf:"cors_origins"`

	OIDC   OIDCConfig   `koanf:"oidc"`
	Casbin CasbinConfig `koanf:"casbin"`
}

// OIDCConfig configures verification of ID tokens from an external provider.
type OIDCConfig struct {
	IssuerURL    string   `koanf:"issuer_url"`
	ClientID     string   `koanf:"client_id"`
	ClientSecret string   `koanf:"client_secret"`
	RedirectURL  string   `koanf:"redirect_url"`
	Scopes       []string `koanf:"scopes"`
}

// CasbinConfig configures the route-level RBAC enforcer. Empty paths use the
// embedded model and policy.
type CasbinConfig struct {
	ModelPath    string        `koanf:"model_path"`
	PolicyPath   string        `koanf:"policy_path"`
	CacheEnabled bool          `koanf:"cache_enabled"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
}

// EventsConfig configures the domain event bus.
type EventsConfig struct {
	Enabled      bool   `koanf:"enabled"`
	Backend      string `koanf:"backend"` // gochannel or nats
	Topic        string `koanf:"topic"`
	NATSURL      string `koanf:"nats_url"`
	EmbeddedNATS bool   `koanf:"embedded_nats"`
	NATSPort     int    `koanf:"nats_port"`
	NATSStoreDir string `koanf:"nats_store_dir"`

	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
}

// CircuitBreakerConfig mirrors gobreaker.Settings.
type CircuitBreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// LoggingConfig feeds logging.Init.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, file and environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
