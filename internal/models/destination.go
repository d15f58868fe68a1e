// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package models

// Destination is one catalog entry seeded from the destinations CSV. JSON
// names follow the CSV header names so clients see the same keys as the
// source file.
type Destination struct {
	CustomID             int               `json:"customId"` // dense, 1-based, CSV row order
	Name                 string            `json:"Destination"`
	Region               string            `json:"Region"`
	Country              string            `json:"Country"`
	Category             string            `json:"Category,omitempty"`
	Latitude             float64           `json:"Latitude"`
	Longitude            float64           `json:"Longitude"`
	AnnualTourists       string            `json:"Approximate Annual Tourists,omitempty"`
	Currency             string            `json:"Currency,omitempty"`
	MajorityReligion     string            `json:"Majority Religion,omitempty"`
	FamousFoods          string            `json:"Famous Foods,omitempty"`
	Language             string            `json:"Language,omitempty"`
	BestTimeToVisit      string            `json:"Best Time to Visit,omitempty"`
	CostOfLiving         string            `json:"Cost of Living,omitempty"`
	Safety               string            `json:"Safety,omitempty"`
	CulturalSignificance string            `json:"Cultural Significance,omitempty"`
	Description          string            `json:"Description,omitempty"`
	Attributes           map[string]string `json:"attributes,omitempty"` // columns without a dedicated field
}

// Coordinates is the response body of the coordinates endpoint.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SearchQuery holds the optional search criteria. Empty fields match everything.
type SearchQuery struct {
	Name    string
	Country string
	Region  string
	Limit   int
}
