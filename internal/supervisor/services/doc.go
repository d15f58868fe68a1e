// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package services adapts components whose lifecycle is not already
// Serve(ctx) error into suture services.
//
// HTTPServerService turns ListenAndServe/Shutdown into Serve with a bounded
// graceful drain. StoreGCService runs Badger value log garbage collection on
// a ticker. The websocket hub, event forwarder and embedded NATS server
// implement suture.Service themselves and are added to the tree directly.
package services
