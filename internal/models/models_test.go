// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestVisibleReviewsAndAverage(t *testing.T) {
	t.Parallel()

	l := &List{Reviews: []Review{
		{Rating: 8},
		{Rating: 2, Hidden: true},
		{Rating: 6},
	}}

	visible := l.VisibleReviews()
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible reviews, got %d", len(visible))
	}
	if got := AverageRating(visible); got != 7 {
		t.Errorf("AverageRating = %v, want 7", got)
	}
	if got := AverageRating(nil); got != 0 {
		t.Errorf("AverageRating(nil) = %v, want 0", got)
	}
}

func TestDestinationJSONUsesCSVHeaders(t *testing.T) {
	t.Parallel()

	d := Destination{CustomID: 1, Name: "Rome", Country: "Italy", Region: "Lazio", BestTimeToVisit: "Spring"}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"customId":1`, `"Destination":"Rome"`, `"Best Time to Visit":"Spring"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestUserSummaryOmitsHash(t *testing.T) {
	t.Parallel()

	u := &User{ID: "u1", Email: "a@b.c", PasswordHash: "$2a$secret"}
	data, err := json.Marshal(u.Summary())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "secret") {
		t.Errorf("summary leaked password hash: %s", data)
	}
}
