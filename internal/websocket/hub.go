// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/goccy/go-json"

	"github.com/tomtom215/wayfarer/internal/events"
	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/metrics"
)

// ShutdownReason identifies why the hub stopped.
type ShutdownReason string

const (
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types that are not domain events. Domain events use their event
// type ("list.created", "review.added", ...) as the message type.
const (
	MessageTypePing = "ping"
	MessageTypePong = "pong"
)

const broadcastBuffer = 256

// Message is the envelope written to every client.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub tracks connected clients and fans messages out to them. All client set
// changes go through the Serve loop.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client

	mu      sync.RWMutex
	stopped chan struct{}
}

// NewHub creates a hub. Nothing is delivered until Serve runs.
func NewHub() *Hub {
	stopped := make(chan struct{})
	close(stopped)
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stopped:    stopped,
	}
}

// Register hands a client to the hub. If the hub is not running the client's
// send channel is closed so its write pump exits.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.stoppedChan():
		c.closeSend()
	}
}

// Unregister removes a client. It never blocks once the hub has stopped.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stoppedChan():
	}
}

func (h *Hub) stoppedChan() <-chan struct{} {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.stopped
}

// Serve runs the hub until ctx is done, then closes every client.
//
// Shutdown is checked first, then client lifecycle, then broadcasts, so a
// client registered just before a broadcast always receives it.
func (h *Hub) Serve(ctx context.Context) error {
	h.mu.Lock()
	h.stopped = make(chan struct{})
	stopped := h.stopped
	h.mu.Unlock()
	defer close(stopped)

	for {
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case c := <-h.register:
			h.addClient(c)
			continue
		case c := <-h.unregister:
			h.removeClient(c)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.removeClient(c)
		case msg := <-h.broadcast:
			h.broadcastToClients(msg)
		}
	}
}

// String names the hub in supervisor logs.
func (h *Hub) String() string {
	return "websocket-hub"
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	n := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Inc()
	logging.Debug().Uint64("client_id", c.id).Int("total_clients", n).Msg("websocket client connected")
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		c.closeSend()
	}
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		metrics.WSConnections.Dec()
		logging.Debug().Uint64("client_id", c.id).Int("total_clients", n).Msg("websocket client disconnected")
	}
}

func (h *Hub) shutdown(ctx context.Context) {
	n := h.closeAllClients()
	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(shutdownReason(ctx))).
		Int("clients_closed", n).
		Msg("websocket hub stopped")
}

func shutdownReason(ctx context.Context) ShutdownReason {
	if ctx.Err() == context.DeadlineExceeded {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// sortedClients returns clients in connection order. Callers hold h.mu.
func (h *Hub) sortedClients() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// broadcastToClients delivers msg to every client in connection order. A
// client whose buffer is full is dropped.
func (h *Hub) broadcastToClients(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range h.sortedClients() {
		select {
		case c.send <- msg:
			metrics.WSMessagesSent.Inc()
		default:
			c.closeSend()
			delete(h.clients, c)
			metrics.WSConnections.Dec()
			metrics.WSErrors.WithLabelValues("slow_client").Inc()
			logging.Warn().Uint64("client_id", c.id).Msg("dropping slow websocket client")
		}
	}
}

func (h *Hub) closeAllClients() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.sortedClients()
	for _, c := range clients {
		c.closeSend()
		delete(h.clients, c)
	}
	metrics.WSConnections.Sub(float64(len(clients)))
	return len(clients)
}

// BroadcastEvent queues a domain event for every client. The feed is open,
// so only events about public lists are sent; events without a visibility
// are treated as private. Actor IDs are stripped. It has the events.Handler
// signature so the forwarder can call it directly.
func (h *Hub) BroadcastEvent(ev events.Event) {
	if !ev.IsPublic() {
		metrics.WSErrors.WithLabelValues("private_event_dropped").Inc()
		return
	}
	h.BroadcastJSON(string(ev.Type), ev.Public())
}

// BroadcastJSON queues a message for every client, dropping it when the
// broadcast buffer is full.
func (h *Hub) BroadcastJSON(messageType string, data interface{}) {
	select {
	case h.broadcast <- Message{Type: messageType, Data: data}:
	default:
		metrics.WSErrors.WithLabelValues("broadcast_full").Inc()
		logging.Warn().Str("message_type", messageType).Msg("broadcast channel full, dropping message")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// MarshalMessage encodes msg as JSON.
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
