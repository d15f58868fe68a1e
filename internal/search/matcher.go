// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package search filters the destination catalog by name, country and region.
//
// Two matching modes exist:
//   - substring: the normalized field contains the normalized query
//   - fuzzy: Dice similarity over bigrams at or above a threshold, or
//     substring containment
//
// Results always keep catalog order.
package search

import (
	"errors"
	"strings"

	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/metrics"
	"github.com/tomtom215/wayfarer/internal/models"
)

// Matching modes.
const (
	ModeFuzzy     = "fuzzy"
	ModeSubstring = "substring"
)

// DefaultThreshold is the fuzzy acceptance score when none is configured.
const DefaultThreshold = 0.7

// DefaultLimit caps results when the caller gives no count.
const DefaultLimit = 209

var (
	ErrNoData       = errors.New("no destinations available")
	ErrNoMatches    = errors.New("no matching destinations found")
	ErrInvalidLimit = errors.New("invalid result count")
)

// Matcher is stateless and safe for concurrent use.
type Matcher struct {
	mode         string
	threshold    float64
	defaultLimit int
}

// NewMatcher builds a Matcher from configuration, filling unset values with
// the package defaults.
func NewMatcher(cfg config.SearchConfig) *Matcher {
	m := &Matcher{
		mode:         cfg.Mode,
		threshold:    cfg.Threshold,
		defaultLimit: cfg.DefaultLimit,
	}
	if m.mode != ModeSubstring {
		m.mode = ModeFuzzy
	}
	if m.threshold <= 0 || m.threshold > 1 {
		m.threshold = DefaultThreshold
	}
	if m.defaultLimit <= 0 {
		m.defaultLimit = DefaultLimit
	}
	return m
}

// Mode reports the active matching mode.
func (m *Matcher) Mode() string { return m.mode }

// Search returns up to q.Limit destinations matching every non-empty
// criterion of q, in the order of dests. A zero Limit means the default cap;
// a negative one is ErrInvalidLimit.
func (m *Matcher) Search(dests []models.Destination, q models.SearchQuery) ([]models.Destination, error) {
	limit := q.Limit
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	if limit == 0 {
		limit = m.defaultLimit
	}

	if len(dests) == 0 {
		metrics.RecordSearch(m.mode, "no_data", 0)
		return nil, ErrNoData
	}

	name, country, region := Normalize(q.Name), Normalize(q.Country), Normalize(q.Region)

	var out []models.Destination
	for _, d := range dests {
		if len(out) == limit {
			break
		}
		if m.matches(d.Name, name) && m.matches(d.Country, country) && m.matches(d.Region, region) {
			out = append(out, d)
		}
	}

	if len(out) == 0 {
		metrics.RecordSearch(m.mode, "no_match", 0)
		return nil, ErrNoMatches
	}
	metrics.RecordSearch(m.mode, "match", len(out))
	return out, nil
}

// matches reports whether field satisfies the already-normalized query.
// An empty query matches everything.
func (m *Matcher) matches(field, query string) bool {
	if query == "" {
		return true
	}
	candidate := Normalize(field)
	if strings.Contains(candidate, query) {
		return true
	}
	if m.mode == ModeSubstring {
		return false
	}
	return Dice(candidate, query) >= m.threshold
}
