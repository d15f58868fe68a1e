// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package auth resolves request credentials to a Wayfarer user.

Authentication Modes:

  - jwt: HS256 tokens issued by POST /api/open/login (default)
  - oidc: ID tokens from an external OpenID Connect provider, verified with
    zitadel/oidc; users are provisioned by email on first sight
  - both: JWT first, then OIDC

Tokens are read from the Authorization header ("Bearer <token>") and, when
that is absent, from the "token" cookie.

Middleware:

The Middleware type runs the configured Authenticator and then loads the
current user from the directory. Role flags (admin, disabled) always come
from the directory rather than the token, so a ban or promotion applies to
the next request without a new login.

	authMW := auth.NewMiddleware(authenticator, directory)
	r.With(authMW.RequireUser).Get("/api/secure/lists", h.MyLists)

	user, ok := auth.UserFromContext(r.Context())

Failures are written as {"error": "..."} with status 401:

  - "Unauthorized. No token provided."
  - "Unauthorized. Invalid token."
  - "Unauthorized. Account disabled."
*/
package auth
