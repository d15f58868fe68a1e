// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package lists

import (
	"errors"

	"github.com/tomtom215/wayfarer/internal/authz"
)

var (
	ErrNotFound       = errors.New("list not found")
	ErrReviewNotFound = errors.New("review not found")
	ErrConflict       = errors.New("list already exists")
	ErrForbidden      = errors.New("access denied")
	ErrInvalid        = errors.New("invalid input")
)

// AccessError is returned when authz.Decide refuses an action.
type AccessError struct {
	Action authz.Action
	Reason authz.ReasonCode
}

func (e *AccessError) Error() string {
	return "access denied: " + string(e.Action) + " (" + string(e.Reason) + ")"
}

func (e *AccessError) Unwrap() error { return ErrForbidden }

// ValidationError carries a message safe to show to the client.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrInvalid }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

func denied(a authz.Action, d authz.Decision) error {
	return &AccessError{Action: a, Reason: d.Reason}
}
