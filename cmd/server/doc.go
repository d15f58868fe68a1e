// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package main is the entry point for the Wayfarer server.

Wayfarer serves a read-only catalog of European travel destinations and lets
registered users keep named lists of destinations, share them publicly and
review other users' public lists. Administrators moderate users and reviews.

# Application Architecture

Long-running components run under a Suture v4 supervision tree:

	RootSupervisor ("wayfarer")
	├── DataSupervisor ("data-layer")
	│   └── StoreGCService (BadgerDB value log GC)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── EmbeddedServer (optional, NATS_EMBEDDED=true)
	│   ├── WebSocket Hub (live list events)
	│   └── Forwarder (event bus to hub and list cache)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 2. Logging: zerolog, JSON or console
 3. Store: BadgerDB, or in-memory when STORE_IN_MEMORY=true
 4. Catalog: seeded from CATALOG_CSV_PATH on first start, then loaded into memory
 5. Events: watermill over Go channels or NATS, optionally with an embedded server
 6. Identity: user directory and ADMIN_EMAIL bootstrap
 7. Authentication: local JWT, OIDC, or both (AUTH_MODE)
 8. Authorization: Casbin role policy
 9. HTTP: chi router with rate limiting, CORS, Prometheus metrics and Swagger

# Configuration

Layered sources, highest priority first:
  - Environment variables
  - Config file (CONFIG_PATH, ./config.yaml, /etc/wayfarer/config.yaml)
  - Built-in defaults

Required for local login:
  - JWT_SECRET: 32+ character signing secret

Optional:
  - ADMIN_EMAIL, ADMIN_PASSWORD: create the first administrator
  - AUTH_MODE: jwt (default), oidc, both
  - EVENTS_ENABLED, EVENTS_BACKEND, NATS_URL, NATS_EMBEDDED

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
server first, drains in-flight requests, then stops the messaging and data
layers. The store is closed last.

# Endpoints

  - /api/*: JSON API, see /swagger/index.html
  - /api/ws: WebSocket stream of list events
  - /health/live, /health/ready: probes
  - /metrics: Prometheus
*/
package main
