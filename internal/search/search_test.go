// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package search

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/models"
)

func testCatalog() []models.Destination {
	return []models.Destination{
		{CustomID: 1, Name: "Paris", Country: "France", Region: "Île-de-France"},
		{CustomID: 2, Name: "Lyon", Country: "France", Region: "Auvergne-Rhône-Alpes"},
		{CustomID: 3, Name: "Porto", Country: "Portugal", Region: "Norte"},
		{CustomID: 4, Name: "Costa Brava", Country: "Spain", Region: "Catalonia"},
		{CustomID: 5, Name: "Barcelona", Country: "Spain", Region: "Catalonia"},
	}
}

func bigCatalog(n int) []models.Destination {
	out := make([]models.Destination, n)
	for i := range out {
		out[i] = models.Destination{CustomID: i + 1, Name: fmt.Sprintf("Place %d", i+1), Country: "Nowhere"}
	}
	return out
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"Paris":           "paris",
		"  Costa  Brava ": "costabrava",
		"\tNEW\nYORK":     "newyork",
		"":                "",
		"Île-de-France":   "île-de-france",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDice(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b string
		want float64
	}{
		{"paris", "paris", 1},
		{"a", "a", 1},
		{"a", "b", 0},
		{"", "", 1},
		{"a", "ab", 0},
		{"night", "nacht", 0.25},
		{"france", "frnace", 0.4},
	}
	for _, tt := range tests {
		if got := Dice(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Dice(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}

	if Dice("france", "frnace") >= DefaultThreshold {
		t.Error("a transposed country name should fall below the default threshold")
	}
	if Dice("barcelona", "barcelone") < DefaultThreshold {
		t.Error("a one-letter typo should pass the default threshold")
	}
}

func TestSearchFuzzy(t *testing.T) {
	t.Parallel()
	m := NewMatcher(config.SearchConfig{Mode: ModeFuzzy, Threshold: 0.7, DefaultLimit: 209})

	tests := []struct {
		name    string
		query   models.SearchQuery
		wantIDs []int
		wantErr error
	}{
		{"empty query returns catalog", models.SearchQuery{}, []int{1, 2, 3, 4, 5}, nil},
		{"short prefix via containment", models.SearchQuery{Country: "fr"}, []int{1, 2}, nil},
		{"typo within threshold", models.SearchQuery{Name: "Barcelone"}, []int{5}, nil},
		{"whitespace and case ignored", models.SearchQuery{Name: " costa   BRAVA"}, []int{4}, nil},
		{"all criteria must match", models.SearchQuery{Country: "Spain", Name: "Porto"}, nil, ErrNoMatches},
		{"country and region", models.SearchQuery{Country: "spain", Region: "catalonia"}, []int{4, 5}, nil},
		{"limit keeps catalog order", models.SearchQuery{Limit: 2}, []int{1, 2}, nil},
		{"nonsense", models.SearchQuery{Name: "Qzxvnomatch"}, nil, ErrNoMatches},
		{"negative limit", models.SearchQuery{Limit: -1}, nil, ErrInvalidLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := m.Search(testCatalog(), tt.query)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Search() error = %v, want %v", err, tt.wantErr)
			}
			assertIDs(t, got, tt.wantIDs)
		})
	}
}

func TestSearchSubstring(t *testing.T) {
	t.Parallel()
	m := NewMatcher(config.SearchConfig{Mode: ModeSubstring})

	got, err := m.Search(testCatalog(), models.SearchQuery{Name: "or"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	assertIDs(t, got, []int{3})

	if _, err := m.Search(testCatalog(), models.SearchQuery{Name: "Barcelone"}); !errors.Is(err, ErrNoMatches) {
		t.Errorf("substring mode accepted a typo: err = %v", err)
	}
}

func TestSearchEmptyCatalog(t *testing.T) {
	t.Parallel()
	m := NewMatcher(config.SearchConfig{})
	if _, err := m.Search(nil, models.SearchQuery{}); !errors.Is(err, ErrNoData) {
		t.Errorf("Search(empty) error = %v, want ErrNoData", err)
	}
}

func TestSearchDefaultLimit(t *testing.T) {
	t.Parallel()
	m := NewMatcher(config.SearchConfig{})
	if m.Mode() != ModeFuzzy {
		t.Errorf("default mode = %q, want fuzzy", m.Mode())
	}

	got, err := m.Search(bigCatalog(300), models.SearchQuery{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != DefaultLimit {
		t.Fatalf("len = %d, want %d", len(got), DefaultLimit)
	}
	for i, d := range got {
		if d.CustomID != i+1 {
			t.Fatalf("result %d has CustomID %d, want catalog order", i, d.CustomID)
		}
	}
}

func assertIDs(t *testing.T, got []models.Destination, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d results %v, want %v", len(got), ids(got), want)
	}
	for i := range want {
		if got[i].CustomID != want[i] {
			t.Errorf("result %d = %d, want %d", i, got[i].CustomID, want[i])
		}
	}
}

func ids(ds []models.Destination) []int {
	out := make([]int, len(ds))
	for i, d := range ds {
		out[i] = d.CustomID
	}
	return out
}
