// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package supervisor runs Wayfarer's long-lived services under a suture v4 tree.

	root ("wayfarer")
	├── data-layer
	│   └── StoreGCService (Badger only)
	├── messaging-layer
	│   ├── EmbeddedServer (if NATS_EMBEDDED)
	│   ├── websocket.Hub
	│   └── events.Forwarder (if events are enabled)
	└── api-layer
	    └── HTTPServerService

A service that returns an error is restarted with backoff by its layer, so a
crashed forwarder does not take the HTTP server down with it. Supervisor
events are logged through sutureslog on the slog adapter from the logging
package.

Shutdown is driven by cancelling the context passed to Serve. Each layer
waits up to TreeConfig.ShutdownTimeout for its services to return.
*/
package supervisor
