// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/wayfarer/internal/config"
)

func testEventsConfig(backend string) config.EventsConfig {
	return config.EventsConfig{
		Enabled: true,
		Backend: backend,
		Topic:   "wayfarer.test",
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          time.Minute,
			FailureThreshold: 2,
		},
	}
}

func newGoChannelTestBus(t *testing.T) *Bus {
	t.Helper()
	bus, err := NewBus(testEventsConfig(BackendGoChannel), "")
	if err != nil {
		t.Fatalf("NewBus() error = %v", err)
	}
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

func receive(t *testing.T, ch <-chan *message.Message) Event {
	t.Helper()
	select {
	case msg := <-ch:
		msg.Ack()
		ev, err := FromMessage(msg)
		if err != nil {
			t.Fatalf("FromMessage() error = %v", err)
		}
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestEventValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		ev   Event
		ok   bool
	}{
		{"valid", New(ListCreated, "Trip1", "u1"), true},
		{"unknown type", New(Type("list.renamed"), "Trip1", "u1"), false},
		{"missing list", New(ReviewAdded, "", "u1"), false},
		{"missing id", Event{Type: ListDeleted, ListName: "Trip1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.ev.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidEvent) {
				t.Errorf("Validate() = %v, want ErrInvalidEvent", err)
			}
		})
	}
}

func TestEventMessage(t *testing.T) {
	t.Parallel()
	hidden := true
	ev := New(ReviewVisibility, "Trip1", "admin-1").WithReview(2, &hidden)

	msg, err := ev.ToMessage()
	if err != nil {
		t.Fatalf("ToMessage() error = %v", err)
	}
	if msg.UUID != ev.ID {
		t.Errorf("message UUID = %q, want event ID %q", msg.UUID, ev.ID)
	}
	if got := msg.Metadata.Get(MetadataEventType); got != string(ReviewVisibility) {
		t.Errorf("metadata %s = %q", MetadataEventType, got)
	}

	back, err := FromMessage(msg)
	if err != nil {
		t.Fatalf("FromMessage() error = %v", err)
	}
	if back.ReviewIndex == nil || *back.ReviewIndex != 2 || back.Hidden == nil || !*back.Hidden {
		t.Errorf("review fields lost: %+v", back)
	}

	if pub := back.Public(); pub.ActorID != "" {
		t.Errorf("Public() kept actor %q", pub.ActorID)
	}

	if _, err := FromMessage(message.NewMessage("x", []byte("{not json"))); err == nil {
		t.Error("FromMessage(garbage) should fail")
	}
}

func TestGoChannelBus(t *testing.T) {
	t.Parallel()
	bus := newGoChannelTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	sent := New(ListCreated, "Trip1", "u1").WithVisibility(true)
	if err := bus.Publish(ctx, sent); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	got := receive(t, ch)
	if got.ID != sent.ID || got.Type != ListCreated || got.Visibility == nil || !*got.Visibility {
		t.Errorf("received %+v, want %+v", got, sent)
	}
	if bus.BreakerState() != "closed" {
		t.Errorf("BreakerState() = %q, want closed", bus.BreakerState())
	}
}

func TestBusRejectsAfterClose(t *testing.T) {
	t.Parallel()
	bus, err := NewBus(testEventsConfig(BackendGoChannel), "")
	if err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := bus.Publish(context.Background(), New(ListDeleted, "x", "u")); !errors.Is(err, ErrBusClosed) {
		t.Errorf("Publish() after Close = %v, want ErrBusClosed", err)
	}
	if _, err := bus.Subscribe(context.Background()); !errors.Is(err, ErrBusClosed) {
		t.Errorf("Subscribe() after Close = %v, want ErrBusClosed", err)
	}
}

func TestNewBusUnknownBackend(t *testing.T) {
	t.Parallel()
	if _, err := NewBus(testEventsConfig("kafka"), ""); err == nil {
		t.Error("expected error for unknown backend")
	}
}

type failingPublisher struct {
	mu    sync.Mutex
	calls int
}

func (p *failingPublisher) Publish(string, ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return errors.New("broker unavailable")
}

func (p *failingPublisher) Close() error { return nil }

func TestBusCircuitBreakerOpens(t *testing.T) {
	t.Parallel()
	pub := &failingPublisher{}
	cfg := testEventsConfig(BackendGoChannel)
	bus := &Bus{
		backend:   "test",
		topic:     cfg.Topic,
		publisher: pub,
		breaker:   NewCircuitBreaker("events-test", cfg.CircuitBreaker),
	}

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := bus.Publish(ctx, New(ListUpdated, "Trip1", "u1")); err == nil {
			t.Fatal("expected publish failure")
		}
	}
	if bus.BreakerState() != "open" {
		t.Fatalf("BreakerState() = %q, want open after %d failures", bus.BreakerState(), 2)
	}

	err := bus.Publish(ctx, New(ListUpdated, "Trip1", "u1"))
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Publish() with open breaker = %v, want ErrOpenState", err)
	}
	if pub.calls != 2 {
		t.Errorf("publisher called %d times, want 2 (open breaker must not call through)", pub.calls)
	}
}

func TestPublishSetsMsgID(t *testing.T) {
	t.Parallel()
	var captured *message.Message
	bus := &Bus{
		topic: "t",
		publisher: publisherFunc(func(_ string, msgs ...*message.Message) error {
			captured = msgs[0]
			return nil
		}),
		breaker: NewCircuitBreaker("events-msgid", testEventsConfig("").CircuitBreaker),
	}
	ev := New(ListDeleted, "Trip1", "u1")
	if err := bus.Publish(context.Background(), ev); err != nil {
		t.Fatal(err)
	}
	if got := captured.Metadata.Get(natsgo.MsgIdHdr); got != ev.ID {
		t.Errorf("%s = %q, want %q", natsgo.MsgIdHdr, got, ev.ID)
	}
}

type publisherFunc func(topic string, msgs ...*message.Message) error

func (f publisherFunc) Publish(topic string, msgs ...*message.Message) error {
	return f(topic, msgs...)
}
func (f publisherFunc) Close() error { return nil }

func TestForwarderDispatches(t *testing.T) {
	t.Parallel()
	bus := newGoChannelTestBus(t)

	var mu sync.Mutex
	var got []Event
	done := make(chan struct{}, 4)
	record := func(ev Event) {
		mu.Lock()
		got = append(got, ev)
		mu.Unlock()
		select {
		case done <- struct{}{}:
		default:
		}
	}
	boom := func(Event) { panic("handler bug") }

	ctx, cancel := context.WithCancel(context.Background())
	fwd := NewForwarder(bus, boom, record)
	errCh := make(chan error, 1)
	go func() { errCh <- fwd.Serve(ctx) }()

	// The forwarder subscribes asynchronously; publish until one arrives.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()
waiting:
	for {
		select {
		case <-done:
			break waiting
		case <-tick.C:
			_ = bus.Publish(ctx, New(ReviewAdded, "Trip1", "u2").WithReview(0, nil))
		case <-deadline:
			t.Fatal("forwarder never dispatched")
		}
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) == 0 || got[0].Type != ReviewAdded {
		t.Errorf("dispatched %+v", got)
	}
}

func TestEmbeddedNATSBus(t *testing.T) {
	if testing.Short() {
		t.Skip("starts an embedded NATS server")
	}
	srv, err := NewEmbeddedServer(ServerConfig{Host: "127.0.0.1", Port: -1})
	if err != nil {
		t.Fatalf("NewEmbeddedServer() error = %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	if !srv.IsRunning() {
		t.Fatal("server not running")
	}

	bus, err := NewBus(testEventsConfig(BackendNATS), srv.ClientURL())
	if err != nil {
		t.Fatalf("NewBus(nats) error = %v", err)
	}
	t.Cleanup(func() { _ = bus.Close() })
	if bus.Backend() != BackendNATS {
		t.Errorf("Backend() = %q", bus.Backend())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := bus.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	// Core NATS drops messages published before the SUB reaches the server,
	// so keep publishing until one arrives.
	deadline := time.After(10 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case msg := <-ch:
			msg.Ack()
			ev, err := FromMessage(msg)
			if err != nil {
				t.Fatalf("FromMessage() error = %v", err)
			}
			if ev.Type != ListCreated || ev.ListName != "Trip1" {
				t.Errorf("received %+v", ev)
			}
			return
		case <-tick.C:
			if err := bus.Publish(ctx, New(ListCreated, "Trip1", "u1")); err != nil {
				t.Fatalf("Publish() error = %v", err)
			}
		case <-deadline:
			t.Fatal("timed out waiting for NATS delivery")
		}
	}
}
