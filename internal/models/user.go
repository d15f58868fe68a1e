// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package models

import "time"

// Identity providers a user can come from.
const (
	ProviderLocal = "local"
	ProviderOIDC  = "oidc"
)

// User is an account in the local directory. Email is unique and stored
// lower-cased.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	PasswordHash string    `json:"passwordHash,omitempty"` // bcrypt; empty for OIDC users
	Disabled     bool      `json:"disabled"`
	Admin        bool      `json:"admin"`
	Provider     string    `json:"provider"`
	Subject      string    `json:"subject,omitempty"` // OIDC sub claim
	CreatedAt    time.Time `json:"createdAt"`
}

// UserSummary is the admin view of a user, without credentials.
type UserSummary struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Disabled    bool      `json:"disabled"`
	Admin       bool      `json:"admin"`
	Provider    string    `json:"provider"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Summary strips credentials from u.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Disabled:    u.Disabled,
		Admin:       u.Admin,
		Provider:    u.Provider,
		CreatedAt:   u.CreatedAt,
	}
}
