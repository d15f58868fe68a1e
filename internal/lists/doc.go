// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package lists manages user travel lists and the reviews attached to them.

A Service sits between the HTTP handlers and the store. It validates input
against the destination catalog, applies the ownership and visibility rules
from package authz, and emits a change event for every successful mutation.

# Errors

Every method returns one of the package sentinels, possibly wrapped:

  - ErrNotFound: the list does not exist
  - ErrReviewNotFound: the review index is out of range
  - ErrConflict: a list with the name already exists
  - ErrForbidden: the caller may not perform the action (see AccessError)
  - ErrInvalid: the input failed validation (see ValidationError)

# Public listings

Public listings are served from a short-lived TTL cache. Mutations made
through the Service drop it immediately, and InvalidateOnEvent does the same
for events observed from other replicas.
*/
package lists
