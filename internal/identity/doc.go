// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package identity is the local user directory: registration, password
// login, ban and admin flags, the bootstrap admin, and provisioning of users
// that sign in through an external OIDC provider.
//
// Passwords are stored as bcrypt hashes. Login attempts are throttled per
// email with a token bucket so a single account cannot be brute forced
// through the open login route.
package identity
