// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package models defines the data types shared by the store, the domain
// services and the HTTP API: destinations, lists with embedded reviews, and
// user accounts.
package models
