// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package events

import (
	"context"
	"fmt"

	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/metrics"
)

// Handler reacts to one event. Handlers must not block for long; they run on
// the forwarder goroutine.
type Handler func(ev Event)

// Forwarder consumes the bus and fans each event out to its handlers, such
// as the websocket hub broadcast and the public-list cache invalidation.
type Forwarder struct {
	sub      Subscriber
	handlers []Handler
}

// NewForwarder returns a forwarder over sub.
func NewForwarder(sub Subscriber, handlers ...Handler) *Forwarder {
	return &Forwarder{sub: sub, handlers: handlers}
}

// Serve implements suture.Service. It returns when ctx is done or the
// subscription channel closes.
func (f *Forwarder) Serve(ctx context.Context) error {
	messages, err := f.sub.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	logging.Info().Int("handlers", len(f.handlers)).Msg("Event forwarder started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("event subscription closed")
			}
			ev, err := FromMessage(msg)
			// Malformed events are acked too: redelivery cannot fix them.
			msg.Ack()
			if err != nil {
				logging.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping malformed event")
				continue
			}
			f.dispatch(ev)
		}
	}
}

func (f *Forwarder) dispatch(ev Event) {
	for _, h := range f.handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logging.Error().Interface("panic", r).Str("event_type", string(ev.Type)).Msg("Event handler panicked")
				}
			}()
			h(ev)
		}()
	}
	metrics.EventsForwarded.Inc()
}

// String implements fmt.Stringer for suture logging.
func (f *Forwarder) String() string {
	return "event-forwarder"
}
