// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/metrics"
)

// Backends.
const (
	BackendGoChannel = "gochannel"
	BackendNATS      = "nats"
)

// ErrBusClosed is returned by Publish and Subscribe after Close.
var ErrBusClosed = errors.New("event bus is closed")

// Publisher is what services need to emit events.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Subscriber is what the forwarder needs to consume events.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan *message.Message, error)
}

// NopPublisher drops every event. It is used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Bus publishes and consumes events on a single topic.
type Bus struct {
	backend    string
	topic      string
	publisher  message.Publisher
	subscriber message.Subscriber
	breaker    *gobreaker.CircuitBreaker[interface{}]
	logger     watermill.LoggerAdapter

	mu     sync.RWMutex
	closed bool
}

// NewBus connects the configured backend. natsURL overrides cfg.NATSURL and
// is used when an embedded server picked its own address.
func NewBus(cfg config.EventsConfig, natsURL string) (*Bus, error) {
	logger := watermill.NewSlogLogger(logging.NewSlogLogger())
	breaker := NewCircuitBreaker("events-"+cfg.Backend, cfg.CircuitBreaker)

	switch cfg.Backend {
	case BackendGoChannel, "":
		return newGoChannelBus(cfg.Topic, breaker, logger), nil
	case BackendNATS:
		if natsURL == "" {
			natsURL = cfg.NATSURL
		}
		return newNATSBus(natsURL, cfg.Topic, breaker, logger)
	default:
		return nil, fmt.Errorf("unknown event backend %q", cfg.Backend)
	}
}

func newGoChannelBus(topic string, breaker *gobreaker.CircuitBreaker[interface{}], logger watermill.LoggerAdapter) *Bus {
	ch := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 256,
	}, logger)
	return &Bus{
		backend:    BackendGoChannel,
		topic:      topic,
		publisher:  ch,
		subscriber: ch,
		breaker:    breaker,
		logger:     logger,
	}
}

// natsOptions mirror the reconnect behaviour used for both directions.
func natsOptions(logger watermill.LoggerAdapter, role string) []natsgo.Option {
	return []natsgo.Option{
		natsgo.Name("wayfarer-" + role),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, watermill.LogFields{"role": role})
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{
				"role": role,
				"url":  nc.ConnectedUrl(),
			})
		}),
	}
}

// newNATSBus uses core NATS (JetStream disabled): the change feed is
// ephemeral and every instance must see every event, so there is nothing to
// persist or load-balance.
func newNATSBus(url, topic string, breaker *gobreaker.CircuitBreaker[interface{}], logger watermill.LoggerAdapter) (*Bus, error) {
	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         url,
		NatsOptions: natsOptions(logger, "publisher"),
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream:   wmNats.JetStreamConfig{Disabled: true},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              url,
		SubscribersCount: 1,
		AckWaitTimeout:   30 * time.Second,
		CloseTimeout:     10 * time.Second,
		NatsOptions:      natsOptions(logger, "subscriber"),
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream:        wmNats.JetStreamConfig{Disabled: true},
	}, logger)
	if err != nil {
		_ = pub.Close()
		return nil, fmt.Errorf("create watermill subscriber: %w", err)
	}

	logging.Info().Str("url", url).Str("topic", topic).Msg("Event bus connected to NATS")
	return &Bus{
		backend:    BackendNATS,
		topic:      topic,
		publisher:  pub,
		subscriber: sub,
		breaker:    breaker,
		logger:     logger,
	}, nil
}

// Backend reports gochannel or nats.
func (b *Bus) Backend() string { return b.backend }

// Topic is the subject every event is published on.
func (b *Bus) Topic() string { return b.topic }

// BreakerState reports the publish circuit breaker state.
func (b *Bus) BreakerState() string { return b.breaker.State().String() }

// Publish sends ev through the circuit breaker. The event ID doubles as the
// message UUID and Nats-Msg-Id.
func (b *Bus) Publish(ctx context.Context, ev Event) error {
	b.mu.RLock()
	closed := b.closed
	b.mu.RUnlock()
	if closed {
		return ErrBusClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := ev.ToMessage()
	if err != nil {
		metrics.RecordEventPublish(string(ev.Type), err)
		return err
	}
	msg.SetContext(ctx)
	if msg.Metadata.Get(natsgo.MsgIdHdr) == "" {
		msg.Metadata.Set(natsgo.MsgIdHdr, msg.UUID)
	}

	_, err = b.breaker.Execute(func() (interface{}, error) {
		return nil, b.publisher.Publish(b.topic, msg)
	})
	result := "success"
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		result = "rejected"
	case err != nil:
		result = "failure"
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.breaker.Name(), result).Inc()
	metrics.RecordEventPublish(string(ev.Type), err)
	if err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

// Subscribe streams messages on the bus topic until ctx is done. Callers
// must Ack every message.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, ErrBusClosed
	}
	return b.subscriber.Subscribe(ctx, b.topic)
}

// Close shuts down both directions. It is safe to call more than once.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	var errs []error
	if err := b.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close publisher: %w", err))
	}
	// gochannel uses one object for both directions.
	if b.backend != BackendGoChannel {
		if err := b.subscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close subscriber: %w", err))
		}
	}
	return errors.Join(errs...)
}
