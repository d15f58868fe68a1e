// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package api exposes the Wayfarer HTTP/JSON interface on a chi router.

Routes are grouped into three families under /api:

  - /api/open: catalog, search, capped public lists, register and login
  - /api/secure: everything that needs a signed-in user
  - /api/admin: moderation and user management

Secure and admin routes run auth.Middleware.RequireUser followed by the
Casbin route gate in authz.Middleware.AuthorizeRequest. Per-resource rules
such as list ownership are applied by the services through authz.Decide.

Every failure body has the form {"error": "..."}. Mutations answer with
{"message": "..."}; reads return the data itself.

Operational routes live outside /api: /health/live, /health/ready, /metrics
and /swagger/*. The websocket change feed is served at /api/ws.
*/
package api
