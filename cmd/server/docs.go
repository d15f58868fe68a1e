// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package main provides the Wayfarer HTTP server
//
// @title Wayfarer API
// @version 1.0
// @description Travel destination catalog with user lists, public sharing and reviews.
// @description
// @description ## Authentication
// @description
// @description Secure endpoints take a bearer token from `/api/login`, or an OIDC
// @description access token when AUTH_MODE is oidc or both. The login response also
// @description sets an HTTP-only `token` cookie.
// @description
// @description ## Rate Limiting
// @description
// @description Requests are limited per IP address. Login is additionally limited
// @description per email address. Limited requests receive 429 with `Retry-After`.
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /api
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token. Format: "Bearer {token}"
package main
