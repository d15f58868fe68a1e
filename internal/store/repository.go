// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package store persists destinations, lists and users.
//
// Two implementations satisfy Repository:
//   - Badger: production storage in an embedded Badger database
//   - Memory: a map-backed fake for unit tests
//
// Both run the same contract tests (contract_test.go), so services can be
// tested against Memory and trusted against Badger.
package store

import (
	"context"
	"errors"

	"github.com/tomtom215/wayfarer/internal/models"
)

// Sentinel errors returned by every implementation.
var (
	ErrNotFound        = errors.New("store: not found")
	ErrExists          = errors.New("store: already exists")
	ErrIndexOutOfRange = errors.New("store: review index out of range")
	ErrClosed          = errors.New("store: closed")
)

// DestinationStore holds the immutable destination catalog.
type DestinationStore interface {
	CountDestinations(ctx context.Context) (int, error)
	// SeedDestinations writes the catalog in one batch. Callers seed only when
	// CountDestinations reports zero.
	SeedDestinations(ctx context.Context, dests []models.Destination) error
	// ListDestinations returns the catalog ordered by CustomID.
	ListDestinations(ctx context.Context) ([]models.Destination, error)
	GetDestination(ctx context.Context, id int) (*models.Destination, error)
}

// ListMutator edits a list inside a store transaction. Returning an error
// aborts the transaction and is passed back to the caller unchanged.
type ListMutator func(l *models.List) error

// ListStore holds user lists and their embedded reviews.
type ListStore interface {
	// CreateList inserts l, or returns ErrExists when the name is taken.
	// The existence check and the insert happen in one transaction.
	CreateList(ctx context.Context, l *models.List) error
	GetList(ctx context.Context, name string) (*models.List, error)
	// UpdateList reads the list, applies fn and writes it back atomically,
	// retrying on write conflicts.
	UpdateList(ctx context.Context, name string, fn ListMutator) (*models.List, error)
	DeleteList(ctx context.Context, name string) error
	ListsByOwner(ctx context.Context, userID string) ([]models.List, error)
	AllLists(ctx context.Context) ([]models.List, error)
	// AppendReview runs guard (if non-nil) and appends r atomically. It
	// returns the index of the new review.
	AppendReview(ctx context.Context, name string, r models.Review, guard ListMutator) (int, error)
	// SetReviewHidden sets the hidden flag of review idx, or flips it when
	// hidden is nil. It returns the resulting flag.
	SetReviewHidden(ctx context.Context, name string, idx int, hidden *bool) (bool, error)
}

// UserMutator edits a user inside a store transaction.
type UserMutator func(u *models.User) error

// UserStore holds the local user directory. Emails are unique.
type UserStore interface {
	// CreateUser inserts u, or returns ErrExists when the email is taken.
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, fn UserMutator) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Repository is everything the services need from storage.
type Repository interface {
	DestinationStore
	ListStore
	UserStore
	Ping(ctx context.Context) error
	Close() error
}
