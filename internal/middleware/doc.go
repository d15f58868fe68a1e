// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package middleware provides the HTTP middleware shared by every route.

All middleware uses the chi signature func(http.Handler) http.Handler and is
installed by the api router in this order:

	r.Use(middleware.RequestID)          // X-Request-ID and correlation ID
	r.Use(chimiddleware.RealIP)          // client IP from proxy headers
	r.Use(middleware.AccessLog)          // one zerolog line per request
	r.Use(chimiddleware.Recoverer)       // panics become 500s
	r.Use(cors)                          // go-chi/cors, handles preflight
	r.Use(middleware.SecurityHeaders)    // nosniff, frame denial, HSTS over TLS
	r.Use(middleware.PrometheusMetrics)  // request counts and latencies
	r.Use(middleware.Compression)        // gzip when the client accepts it

PrometheusMetrics labels requests with the chi route pattern rather than the
raw path, so list names in URLs do not create new label values.
*/
package middleware
