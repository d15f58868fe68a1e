// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package websocket

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/wayfarer/internal/events"
	"github.com/tomtom215/wayfarer/internal/logging"
)

//nolint:gochecknoinits // keep hub logs out of test output
func init() {
	logging.Init(logging.Config{Level: "info", Format: "console", Output: io.Discard})
}

// startHub runs a hub until the test ends.
func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hub.Serve(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	waitFor(t, func() bool {
		select {
		case <-hub.stoppedChan():
			return false
		default:
			return true
		}
	}, "hub to start")
	return hub, cancel
}

func newTestClient(hub *Hub) *Client {
	return &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message, sendBuffer), pong: make(chan struct{}, 1)}
}

func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		if !ok {
			t.Fatal("send channel closed")
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func TestHubBroadcastEvent(t *testing.T) {
	hub, _ := startHub(t)

	a, b := newTestClient(hub), newTestClient(hub)
	hub.Register(a)
	hub.Register(b)
	waitFor(t, func() bool { return hub.ClientCount() == 2 }, "two clients")

	hub.BroadcastEvent(events.New(events.ListCreated, "Trip1", "user-1").WithVisibility(true))

	for _, c := range []*Client{a, b} {
		msg := receive(t, c)
		if msg.Type != "list.created" {
			t.Errorf("Type = %q, want list.created", msg.Type)
		}
		ev, ok := msg.Data.(events.Event)
		if !ok {
			t.Fatalf("Data is %T, want events.Event", msg.Data)
		}
		if ev.ListName != "Trip1" {
			t.Errorf("ListName = %q, want Trip1", ev.ListName)
		}
		if ev.ActorID != "" {
			t.Errorf("ActorID = %q, want stripped", ev.ActorID)
		}
	}
}

func TestHubBroadcastEventSkipsPrivateLists(t *testing.T) {
	hub, _ := startHub(t)

	c := newTestClient(hub)
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount() == 1 }, "client")

	hub.BroadcastEvent(events.New(events.ListUpdated, "Private trip", "user-1").WithVisibility(false))
	hub.BroadcastEvent(events.New(events.ListDeleted, "No visibility", "user-1"))
	hub.BroadcastEvent(events.New(events.ListUpdated, "Public trip", "user-1").WithVisibility(true))

	msg := receive(t, c)
	ev, ok := msg.Data.(events.Event)
	if !ok {
		t.Fatalf("Data is %T, want events.Event", msg.Data)
	}
	if ev.ListName != "Public trip" {
		t.Errorf("ListName = %q, want Public trip", ev.ListName)
	}
	select {
	case extra := <-c.send:
		t.Errorf("unexpected extra message %+v", extra)
	default:
	}
}

func TestHubUnregister(t *testing.T) {
	hub, _ := startHub(t)

	c := newTestClient(hub)
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount() == 1 }, "registration")

	hub.Unregister(c)
	waitFor(t, func() bool { return hub.ClientCount() == 0 }, "unregistration")

	if _, ok := <-c.send; ok {
		t.Error("send channel should be closed after unregister")
	}

	// A second unregister of the same client is harmless.
	hub.Unregister(c)
}

func TestHubDropsSlowClient(t *testing.T) {
	hub, _ := startHub(t)

	slow := newTestClient(hub)
	slow.send = make(chan Message) // unbuffered and never read
	fast := newTestClient(hub)
	hub.Register(slow)
	hub.Register(fast)
	waitFor(t, func() bool { return hub.ClientCount() == 2 }, "two clients")

	hub.BroadcastJSON("list.deleted", map[string]string{"listName": "Old"})

	if msg := receive(t, fast); msg.Type != "list.deleted" {
		t.Errorf("fast client got %q", msg.Type)
	}
	waitFor(t, func() bool { return hub.ClientCount() == 1 }, "slow client removal")
}

func TestHubShutdownClosesClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- hub.Serve(ctx) }()

	c := newTestClient(hub)
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount() == 1 }, "registration")

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after shutdown", hub.ClientCount())
	}
	if _, ok := <-c.send; ok {
		t.Error("client send channel should be closed on shutdown")
	}
}

func TestHubStoppedDoesNotBlock(t *testing.T) {
	hub := NewHub()
	c := newTestClient(hub)

	done := make(chan struct{})
	go func() {
		hub.Register(c)
		hub.Unregister(c)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Register/Unregister blocked on a stopped hub")
	}
	if _, ok := <-c.send; ok {
		t.Error("registering with a stopped hub should close the client")
	}
}

func TestBroadcastJSONFullBufferDrops(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	for i := 0; i < broadcastBuffer+10; i++ {
		hub.BroadcastJSON("review.added", i)
	}
	if got := len(hub.broadcast); got != broadcastBuffer {
		t.Errorf("queued %d messages, want %d", got, broadcastBuffer)
	}
}

func TestShutdownReason(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	if got := shutdownReason(canceled); got != ShutdownReasonContextCanceled {
		t.Errorf("canceled: got %q", got)
	}

	expired, cancel2 := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel2()
	<-expired.Done()
	if got := shutdownReason(expired); got != ShutdownReasonContextDeadline {
		t.Errorf("deadline: got %q", got)
	}
}

func TestMarshalMessage(t *testing.T) {
	t.Parallel()

	data, err := MarshalMessage(Message{Type: MessageTypePong})
	if err != nil {
		t.Fatalf("MarshalMessage: %v", err)
	}
	if !strings.Contains(string(data), `"type":"pong"`) {
		t.Errorf("unexpected JSON %s", data)
	}
}
