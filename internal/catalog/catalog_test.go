// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/wayfarer/internal/store"
)

const sampleCSV = ` Destination , Region,Country,Latitude,Longitude, Famous Foods ,UNESCO Sites
Paris,Île-de-France,France,48.8566,2.3522,Croissant,4
Lyon,Auvergne-Rhône-Alpes,France,45.7640,4.8357,Quenelle,1
Porto,Norte,Portugal,41.1579,-8.6291,Francesinha,2
Odd Row,Nowhere,Atlantis,not-a-number,,,
`

func TestLoad(t *testing.T) {
	t.Parallel()

	dests, err := Load(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(dests) != 4 {
		t.Fatalf("Load() = %d rows, want 4", len(dests))
	}

	for i, d := range dests {
		if d.CustomID != i+1 {
			t.Errorf("row %d CustomID = %d, want %d", i, d.CustomID, i+1)
		}
	}

	paris := dests[0]
	if paris.Name != "Paris" || paris.Country != "France" || paris.Region != "Île-de-France" {
		t.Errorf("trimmed headers not mapped: %+v", paris)
	}
	if paris.Latitude != 48.8566 || paris.Longitude != 2.3522 {
		t.Errorf("coordinates = %v,%v", paris.Latitude, paris.Longitude)
	}
	if paris.FamousFoods != "Croissant" {
		t.Errorf("FamousFoods = %q, want Croissant", paris.FamousFoods)
	}
	if paris.Attributes["UNESCO Sites"] != "4" {
		t.Errorf("unknown column not kept: %v", paris.Attributes)
	}

	if dests[3].Latitude != 0 {
		t.Errorf("unparsable latitude = %v, want 0", dests[3].Latitude)
	}
}

func TestLoadEmpty(t *testing.T) {
	t.Parallel()
	if _, err := Load(strings.NewReader("")); !errors.Is(err, ErrNoHeader) {
		t.Errorf("Load(empty) error = %v, want ErrNoHeader", err)
	}
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "dest.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	repo := store.NewMemory()
	seeded, err := Seed(ctx, repo, path)
	if err != nil || !seeded {
		t.Fatalf("first Seed() = %v, %v; want true, nil", seeded, err)
	}

	seeded, err = Seed(ctx, repo, filepath.Join(t.TempDir(), "missing.csv"))
	if err != nil || seeded {
		t.Errorf("second Seed() = %v, %v; want false, nil without reading the file", seeded, err)
	}

	cat, err := FromStore(ctx, repo)
	if err != nil {
		t.Fatalf("FromStore() error = %v", err)
	}
	if cat.Len() != 4 {
		t.Errorf("Len() = %d, want 4", cat.Len())
	}
}

func TestCatalogQueries(t *testing.T) {
	t.Parallel()

	dests, err := Load(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	cat := New(dests)

	if got := cat.Countries(); strings.Join(got, ",") != "France,Portugal,Atlantis" {
		t.Errorf("Countries() = %v, want catalog order without duplicates", got)
	}

	if d, ok := cat.Get(3); !ok || d.Name != "Porto" {
		t.Errorf("Get(3) = %+v, %v", d, ok)
	}
	if _, ok := cat.Get(0); ok {
		t.Error("Get(0) should miss")
	}

	resolved := cat.Resolve([]int{3, 99, 1})
	if len(resolved) != 2 || resolved[0].Name != "Porto" || resolved[1].Name != "Paris" {
		t.Errorf("Resolve() = %+v, want Porto then Paris", resolved)
	}

	if unknown := cat.Unknown([]int{1, 42, 2, 77}); len(unknown) != 2 || unknown[0] != 42 || unknown[1] != 77 {
		t.Errorf("Unknown() = %v, want [42 77]", unknown)
	}
}
