// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package events carries list and review change notifications between the
services and the live websocket feed.

# Architecture

	lists.Service --Publish--> Bus (watermill) --Subscribe--> Forwarder --> websocket.Hub
	                             |                                 \-----> cache invalidation
	                    gochannel | NATS

The Bus wraps a Watermill publisher/subscriber pair:
  - gochannel (default): in-process, no broker, events are lost on restart
  - nats: core NATS through watermill-nats, optionally against an embedded
    nats-server started by this package (EmbeddedServer)

Every publish goes through a gobreaker circuit breaker, so a dead broker
fails fast instead of slowing down list writes. Publishing is
fire-and-forget for callers: failures are logged and counted
(wayfarer_event_publish_failures_total) but never returned to HTTP clients.

# Event Types

  - list.created, list.updated, list.deleted
  - review.added, review.visibility

Events are JSON (goccy/go-json) in the Watermill message payload, with the
event type copied into the "event_type" metadata key.
*/
package events
