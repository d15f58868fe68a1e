// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Type names a domain event.
type Type string

// Event types.
const (
	ListCreated      Type = "list.created"
	ListUpdated      Type = "list.updated"
	ListDeleted      Type = "list.deleted"
	ReviewAdded      Type = "review.added"
	ReviewVisibility Type = "review.visibility"
)

// MetadataEventType is the message metadata key holding the event type.
const MetadataEventType = "event_type"

var validTypes = map[Type]bool{
	ListCreated:      true,
	ListUpdated:      true,
	ListDeleted:      true,
	ReviewAdded:      true,
	ReviewVisibility: true,
}

// ErrInvalidEvent is returned for events missing required fields.
var ErrInvalidEvent = errors.New("invalid event")

// Event is a change to a list or one of its reviews.
type Event struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	ListName    string    `json:"listName"`
	ActorID     string    `json:"actorId,omitempty"`
	Visibility  *bool     `json:"visibility,omitempty"`  // list events
	ReviewIndex *int      `json:"reviewIndex,omitempty"` // review events
	Hidden      *bool     `json:"hidden,omitempty"`      // review.visibility
	OccurredAt  time.Time `json:"occurredAt"`
}

// New returns an event with a fresh ID and timestamp.
func New(t Type, listName, actorID string) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       t,
		ListName:   listName,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
}

// WithVisibility sets the list visibility carried by list events.
func (e Event) WithVisibility(public bool) Event {
	e.Visibility = &public
	return e
}

// WithReview sets the review index, and for visibility changes the new flag.
func (e Event) WithReview(idx int, hidden *bool) Event {
	e.ReviewIndex = &idx
	e.Hidden = hidden
	return e
}

// Validate checks the fields every event needs.
func (e Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEvent)
	}
	if !validTypes[e.Type] {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	}
	if e.ListName == "" {
		return fmt.Errorf("%w: missing list name", ErrInvalidEvent)
	}
	return nil
}

// IsPublic reports whether the event concerns a list that is public, as
// stamped by WithVisibility. Unstamped events are not public.
func (e Event) IsPublic() bool {
	return e.Visibility != nil && *e.Visibility
}

// Public strips fields that should not leave the server, such as the actor.
func (e Event) Public() Event {
	e.ActorID = ""
	return e
}

// ToMessage encodes e as a Watermill message whose UUID is the event ID.
func (e Event) ToMessage() (*message.Message, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(e.ID, payload)
	msg.Metadata.Set(MetadataEventType, string(e.Type))
	return msg, nil
}

// FromMessage decodes and validates a message produced by ToMessage.
func FromMessage(msg *message.Message) (Event, error) {
	var e Event
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		return Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}
