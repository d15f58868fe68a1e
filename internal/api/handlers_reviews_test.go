// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/wayfarer/internal/authz"
	"github.com/tomtom215/wayfarer/internal/lists"
	"github.com/tomtom215/wayfarer/internal/models"
)

func TestAddReview(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	alice := s.register("alice@example.org")
	bob := s.register("bob@example.org")
	s.createList(alice, "Open", true, 1)
	s.createList(alice, "Closed", false, 1)

	tests := []struct {
		name   string
		token  string
		list   string
		body   interface{}
		status int
		msg    string
	}{
		{"public list", bob, "Open", map[string]interface{}{"rating": 8, "comment": "great"}, http.StatusCreated, "Review added successfully."},
		{"owner on private list", alice, "Closed", map[string]interface{}{"rating": 5}, http.StatusCreated, "Review added successfully."},
		{"private list", bob, "Closed", map[string]interface{}{"rating": 5}, http.StatusForbidden, msgPrivateList},
		{"missing list", bob, "Gone", map[string]interface{}{"rating": 5}, http.StatusNotFound, msgListNotFound},
		{"rating too high", bob, "Open", map[string]interface{}{"rating": 11}, http.StatusBadRequest, lists.MsgRatingRange},
		{"rating too low", bob, "Open", map[string]interface{}{"rating": 0}, http.StatusBadRequest, lists.MsgRatingRange},
		{"rating missing", bob, "Open", map[string]interface{}{"comment": "no score"}, http.StatusBadRequest, lists.MsgRatingRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.do(http.MethodPost, "/api/secure/lists/"+tt.list+"/review", tt.token, tt.body)
			if tt.status == http.StatusCreated {
				expectMessage(t, resp, tt.status, tt.msg)
				return
			}
			expectError(t, resp, tt.status, tt.msg)
		})
	}

	resp := s.do(http.MethodGet, "/api/secure/list/Open/details", alice, nil)
	expectStatus(t, resp, http.StatusOK)
	var d models.ListDetails
	decodeBody(t, resp, &d)
	if len(d.Reviews) != 1 || d.Reviews[0].Rating != 8 || d.Reviews[0].UserName != "bob" {
		t.Errorf("reviews = %+v, want one 8/10 from bob", d.Reviews)
	}
	if d.AverageRating != 8 {
		t.Errorf("AverageRating = %v, want 8", d.AverageRating)
	}
}

func TestToggleReviewHidden(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	alice := s.register("alice@example.org")
	bob := s.register("bob@example.org")
	admin := s.adminToken()
	s.createList(alice, "Open", true, 1)

	resp := s.do(http.MethodPost, "/api/secure/lists/Open/review", bob, map[string]int{"rating": 2})
	expectStatus(t, resp, http.StatusCreated)
	resp = s.do(http.MethodPost, "/api/secure/lists/Open/review", alice, map[string]int{"rating": 10})
	expectStatus(t, resp, http.StatusCreated)

	resp = s.do(http.MethodPost, "/api/admin/toggle-review-hidden", bob, map[string]interface{}{"listName": "Open", "reviewIndex": 0})
	expectError(t, resp, http.StatusForbidden, authz.MsgAdminsOnly)

	resp = s.do(http.MethodPost, "/api/admin/toggle-review-hidden", admin, map[string]interface{}{"listName": "Open", "reviewIndex": 0})
	expectMessage(t, resp, http.StatusOK, "Review hidden successfully.")

	// Hidden reviews are dropped for other readers and from the average.
	resp = s.do(http.MethodGet, "/api/secure/list/Open/details", bob, nil)
	var d models.ListDetails
	decodeBody(t, resp, &d)
	if len(d.Reviews) != 1 || d.AverageRating != 10 {
		t.Errorf("bob sees %d reviews averaging %v, want 1 averaging 10", len(d.Reviews), d.AverageRating)
	}

	resp = s.do(http.MethodPost, "/api/admin/toggle-review-hidden", admin, map[string]interface{}{"listName": "Open", "reviewIndex": 0, "hidden": false})
	expectMessage(t, resp, http.StatusOK, "Review unhidden successfully.")

	resp = s.do(http.MethodPost, "/api/admin/toggle-review-hidden", admin, map[string]interface{}{"listName": "Open", "reviewIndex": 5})
	expectError(t, resp, http.StatusNotFound, msgReviewNotFound)

	resp = s.do(http.MethodPost, "/api/admin/toggle-review-hidden", admin, map[string]interface{}{"listName": "Gone", "reviewIndex": 0})
	expectError(t, resp, http.StatusNotFound, msgListNotFound)

	resp = s.do(http.MethodPost, "/api/admin/toggle-review-hidden", admin, map[string]interface{}{"listName": "Open"})
	expectStatus(t, resp, http.StatusBadRequest)
}

func TestAllReviews(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	alice := s.register("alice@example.org")
	s.createList(alice, "B-list", true)
	s.createList(alice, "A-list", true)
	for _, name := range []string{"B-list", "A-list", "A-list"} {
		resp := s.do(http.MethodPost, "/api/secure/lists/"+name+"/review", alice, map[string]int{"rating": 7})
		expectStatus(t, resp, http.StatusCreated)
	}

	resp := s.do(http.MethodGet, "/api/admin/reviews", alice, nil)
	expectError(t, resp, http.StatusForbidden, authz.MsgAdminsOnly)

	resp = s.do(http.MethodGet, "/api/admin/reviews", s.adminToken(), nil)
	expectStatus(t, resp, http.StatusOK)
	var entries []models.ReviewEntry
	decodeBody(t, resp, &entries)
	if len(entries) != 3 {
		t.Fatalf("got %d reviews, want 3", len(entries))
	}
	want := []struct {
		list string
		idx  int
	}{{"A-list", 0}, {"A-list", 1}, {"B-list", 0}}
	for i, w := range want {
		if entries[i].ListName != w.list || entries[i].ReviewIndex != w.idx {
			t.Errorf("entries[%d] = %s#%d, want %s#%d", i, entries[i].ListName, entries[i].ReviewIndex, w.list, w.idx)
		}
	}
}
