// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/wayfarer/internal/auth"
	"github.com/tomtom215/wayfarer/internal/authz"
	"github.com/tomtom215/wayfarer/internal/models"
)

func TestAdminRoutesRejectUsers(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	alice := s.register("alice@example.org")

	for _, path := range []string{"/api/admin/ban-user", "/api/admin/unban-user", "/api/admin/make-admin", "/api/admin/remove-admin"} {
		resp := s.do(http.MethodPost, path, alice, map[string]string{"email": "alice@example.org"})
		expectError(t, resp, http.StatusForbidden, authz.MsgAdminsOnly)
	}
	resp := s.do(http.MethodGet, "/api/admin/users", alice, nil)
	expectError(t, resp, http.StatusForbidden, authz.MsgAdminsOnly)
}

func TestBanAndUnban(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	alice := s.register("alice@example.org")
	admin := s.adminToken()

	resp := s.do(http.MethodPost, "/api/admin/ban-user", admin, map[string]string{"email": "Alice@Example.org"})
	expectMessage(t, resp, http.StatusOK, "User alice@example.org has been banned successfully.")

	// An issued token stops working as soon as the account is disabled.
	resp = s.do(http.MethodGet, "/api/secure/me", alice, nil)
	expectError(t, resp, http.StatusUnauthorized, auth.MsgAccountDisabled)

	resp = s.do(http.MethodPost, "/api/open/login", "", map[string]string{"email": "alice@example.org", "password": testUserPassword})
	expectError(t, resp, http.StatusUnauthorized, auth.MsgAccountDisabled)

	resp = s.do(http.MethodPost, "/api/admin/unban-user", admin, map[string]string{"email": "alice@example.org"})
	expectMessage(t, resp, http.StatusOK, "User alice@example.org has been unbanned successfully.")

	resp = s.do(http.MethodGet, "/api/secure/me", alice, nil)
	expectStatus(t, resp, http.StatusOK)
}

func TestAdminUserErrors(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	admin := s.adminToken()

	resp := s.do(http.MethodPost, "/api/admin/ban-user", admin, map[string]string{"email": "nobody@example.org"})
	expectError(t, resp, http.StatusNotFound, msgUserNotFound)

	resp = s.do(http.MethodPost, "/api/admin/remove-admin", admin, map[string]string{"email": testAdminEmail})
	expectError(t, resp, http.StatusBadRequest, msgSelfModify)

	resp = s.do(http.MethodPost, "/api/admin/ban-user", admin, map[string]string{"email": "not-an-email"})
	expectStatus(t, resp, http.StatusBadRequest)
}

func TestMakeAndRemoveAdmin(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	bob := s.register("bob@example.org")
	admin := s.adminToken()

	resp := s.do(http.MethodPost, "/api/admin/make-admin", admin, map[string]string{"email": "bob@example.org"})
	expectMessage(t, resp, http.StatusOK, "bob@example.org is now an admin.")

	// Roles are read from the store on every request, not from the token.
	resp = s.do(http.MethodGet, "/api/admin/users", bob, nil)
	expectStatus(t, resp, http.StatusOK)
	var users []models.UserSummary
	decodeBody(t, resp, &users)
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}

	resp = s.do(http.MethodPost, "/api/admin/remove-admin", admin, map[string]string{"email": "bob@example.org"})
	expectMessage(t, resp, http.StatusOK, "bob@example.org is no longer an admin.")

	resp = s.do(http.MethodGet, "/api/admin/users", bob, nil)
	expectError(t, resp, http.StatusForbidden, authz.MsgAdminsOnly)
}

func TestUsersOmitsPasswordHashes(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	s.register("alice@example.org")

	resp := s.do(http.MethodGet, "/api/admin/users", s.adminToken(), nil)
	expectStatus(t, resp, http.StatusOK)
	var raw []map[string]interface{}
	decodeBody(t, resp, &raw)
	for _, u := range raw {
		if _, ok := u["passwordHash"]; ok {
			t.Errorf("user %v exposes passwordHash", u["email"])
		}
	}
}
