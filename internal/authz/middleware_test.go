// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package authz

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/wayfarer/internal/auth"
	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/models"
)

func TestAuthorizeRequest(t *testing.T) {
	t.Parallel()

	mw := NewMiddleware(newTestEnforcer(t, config.CasbinConfig{CacheEnabled: true}))
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := mw.AuthorizeRequest(ok)

	tests := []struct {
		name   string
		user   *models.User
		method string
		path   string
		want   int
	}{
		{"user on secure", &models.User{ID: "u"}, http.MethodGet, "/api/secure/lists", http.StatusNoContent},
		{"user on admin", &models.User{ID: "u"}, http.MethodPost, "/api/admin/ban-user", http.StatusForbidden},
		{"admin on admin", &models.User{ID: "a", Admin: true}, http.MethodPost, "/api/admin/ban-user", http.StatusNoContent},
		{"no user", nil, http.MethodGet, "/api/admin/users", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.user != nil {
				r = r.WithContext(auth.ContextWithUser(r.Context(), tt.user))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want == http.StatusForbidden && !strings.Contains(rec.Body.String(), MsgAdminsOnly) {
				t.Errorf("body = %s", rec.Body.String())
			}
		})
	}
}

func TestMethodToAction(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		http.MethodGet:    "read",
		http.MethodHead:   "read",
		http.MethodPost:   "write",
		http.MethodPut:    "write",
		http.MethodDelete: "delete",
	}
	for method, want := range cases {
		if got := methodToAction(method); got != want {
			t.Errorf("methodToAction(%s) = %s, want %s", method, got, want)
		}
	}
}
