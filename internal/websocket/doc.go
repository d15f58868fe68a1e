// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package websocket serves the live change feed at /api/ws.

Clients connect with a browser websocket and receive one JSON message per
list or review change:

	{"type": "list.updated", "data": {"id": "...", "type": "list.updated", "listName": "Trip1", ...}}

The event forwarder calls Hub.BroadcastEvent for every event read from the
bus. Actor IDs are stripped before delivery. Clients may send
{"type": "ping"} and get {"type": "pong"} back; everything else they send is
ignored.

A Hub runs as a suture service. Each Client has a read pump and a write
pump; the hub closes a client's send channel to end its write pump, and a
client whose buffer fills is dropped rather than slowing the others.
*/
package websocket
