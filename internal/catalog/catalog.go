// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package catalog loads the destination CSV into the store once and serves
// an immutable in-memory snapshot of it.
package catalog

import (
	"context"
	"fmt"

	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/models"
	"github.com/tomtom215/wayfarer/internal/store"
)

// Catalog is a read-only snapshot of the destinations, ordered by CustomID.
// It is safe for concurrent use because nothing mutates it after New.
type Catalog struct {
	all       []models.Destination
	byID      map[int]int // CustomID -> index in all
	countries []string
}

// New builds a snapshot. dests must already be in CustomID order.
func New(dests []models.Destination) *Catalog {
	c := &Catalog{
		all:  dests,
		byID: make(map[int]int, len(dests)),
	}
	seen := make(map[string]bool)
	for i, d := range dests {
		c.byID[d.CustomID] = i
		if d.Country != "" && !seen[d.Country] {
			seen[d.Country] = true
			c.countries = append(c.countries, d.Country)
		}
	}
	return c
}

// Seed loads csvPath into repo when repo holds no destinations. It reports
// whether anything was written.
func Seed(ctx context.Context, repo store.DestinationStore, csvPath string) (bool, error) {
	n, err := repo.CountDestinations(ctx)
	if err != nil {
		return false, fmt.Errorf("count destinations: %w", err)
	}
	if n > 0 {
		logging.Info().Int("destinations", n).Msg("Catalog already seeded")
		return false, nil
	}

	dests, err := LoadFile(csvPath)
	if err != nil {
		return false, err
	}
	if err := repo.SeedDestinations(ctx, dests); err != nil {
		return false, fmt.Errorf("seed destinations: %w", err)
	}
	logging.Info().Int("destinations", len(dests)).Str("path", csvPath).Msg("Catalog seeded from CSV")
	return true, nil
}

// FromStore reads the full catalog from repo into a snapshot.
func FromStore(ctx context.Context, repo store.DestinationStore) (*Catalog, error) {
	dests, err := repo.ListDestinations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	return New(dests), nil
}

// All returns the catalog in CustomID order. The slice is shared; callers
// must not modify it.
func (c *Catalog) All() []models.Destination { return c.all }

// Len is the number of destinations.
func (c *Catalog) Len() int { return len(c.all) }

// Get returns the destination with the given CustomID.
func (c *Catalog) Get(id int) (models.Destination, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Destination{}, false
	}
	return c.all[i], true
}

// Has reports whether id is a known CustomID.
func (c *Catalog) Has(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// Countries returns the distinct Country values in first-seen catalog order.
func (c *Catalog) Countries() []string {
	out := make([]string, len(c.countries))
	copy(out, c.countries)
	return out
}

// Resolve maps ids to destinations, skipping unknown ones.
func (c *Catalog) Resolve(ids []int) []models.Destination {
	out := make([]models.Destination, 0, len(ids))
	for _, id := range ids {
		if d, ok := c.Get(id); ok {
			out = append(out, d)
		}
	}
	return out
}

// Unknown returns the ids that are not in the catalog, in input order.
func (c *Catalog) Unknown(ids []int) []int {
	var out []int
	for _, id := range ids {
		if !c.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
