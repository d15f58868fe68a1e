// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/wayfarer/internal/models"
)

func TestDestinations(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	resp := s.do(http.MethodGet, "/api/open/destinations", "", nil)
	expectStatus(t, resp, http.StatusOK)
	var dests []models.Destination
	decodeBody(t, resp, &dests)
	if len(dests) != 4 {
		t.Fatalf("got %d destinations, want 4", len(dests))
	}
	for i, d := range dests {
		if d.CustomID != i+1 {
			t.Errorf("dests[%d].CustomID = %d, want %d", i, d.CustomID, i+1)
		}
	}
}

func TestDestinationsEmptyCatalog(t *testing.T) {
	t.Parallel()
	s := newTestServerWith(t, testServerOptions{localLogin: true})

	resp := s.do(http.MethodGet, "/api/open/destinations", "", nil)
	expectStatus(t, resp, http.StatusOK)
	var dests []models.Destination
	decodeBody(t, resp, &dests)
	if dests == nil || len(dests) != 0 {
		t.Errorf("want empty array, got %v", dests)
	}

	resp = s.do(http.MethodGet, "/api/open/search?name=rome", "", nil)
	expectError(t, resp, http.StatusNotFound, "No destinations available.")
}

func TestDestination(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		status int
		want   string
	}{
		{"found", "/api/open/destination/3", http.StatusOK, "Lisbon"},
		{"unknown id", "/api/open/destination/99", http.StatusNotFound, ""},
		{"zero", "/api/open/destination/0", http.StatusNotFound, ""},
		{"not a number", "/api/open/destination/rome", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.do(http.MethodGet, tt.path, "", nil)
			if tt.status != http.StatusOK {
				expectError(t, resp, tt.status, "Destination not found.")
				return
			}
			expectStatus(t, resp, http.StatusOK)
			var d models.Destination
			decodeBody(t, resp, &d)
			if d.Name != tt.want {
				t.Errorf("Name = %q, want %q", d.Name, tt.want)
			}
		})
	}
}

func TestDestinationCoordinates(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	resp := s.do(http.MethodGet, "/api/open/destination/2/coordinates", "", nil)
	expectStatus(t, resp, http.StatusOK)
	var c models.Coordinates
	decodeBody(t, resp, &c)
	if c.Latitude != 48.8566 || c.Longitude != 2.3522 {
		t.Errorf("coordinates = %+v, want Paris", c)
	}

	resp = s.do(http.MethodGet, "/api/open/destination/42/coordinates", "", nil)
	expectError(t, resp, http.StatusNotFound, "Destination not found.")
}

func TestCountries(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	resp := s.do(http.MethodGet, "/api/open/countries", "", nil)
	expectStatus(t, resp, http.StatusOK)
	var countries []string
	decodeBody(t, resp, &countries)

	want := []string{"Italy", "France", "Portugal"}
	if len(countries) != len(want) {
		t.Fatalf("countries = %v, want %v", countries, want)
	}
	for i := range want {
		if countries[i] != want[i] {
			t.Errorf("countries[%d] = %q, want %q", i, countries[i], want[i])
		}
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		status int
		want   []string
		errMsg string
	}{
		{"by country", "?country=italy", http.StatusOK, []string{"Rome", "Florence"}, ""},
		{"name and country", "?name=flor&country=italy", http.StatusOK, []string{"Florence"}, ""},
		{"limit", "?country=italy&n=1", http.StatusOK, []string{"Rome"}, ""},
		{"no criteria returns all", "", http.StatusOK, []string{"Rome", "Paris", "Lisbon", "Florence"}, ""},
		{"no match", "?name=atlantis", http.StatusNotFound, nil, "No matching destinations found."},
		{"bad count", "?n=abc", http.StatusBadRequest, nil, "Invalid result count."},
		{"zero count", "?n=0", http.StatusBadRequest, nil, "Invalid result count."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.do(http.MethodGet, "/api/open/search"+tt.query, "", nil)
			if tt.errMsg != "" {
				expectError(t, resp, tt.status, tt.errMsg)
				return
			}
			expectStatus(t, resp, tt.status)
			var got []models.Destination
			decodeBody(t, resp, &got)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d results, want %v", len(got), tt.want)
			}
			for i, name := range tt.want {
				if got[i].Name != name {
					t.Errorf("results[%d] = %q, want %q", i, got[i].Name, name)
				}
			}
		})
	}
}
