// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package models

import "time"

// List is a named, owned collection of destination IDs. Names are unique
// across all users.
type List struct {
	Name         string    `json:"name"`
	Destinations []int     `json:"destinations"` // customIds, no duplicates
	Visibility   bool      `json:"visibility"`   // true = public
	Description  string    `json:"description"`
	CreatedBy    string    `json:"createdBy"`   // user ID
	CreatorName  string    `json:"creatorName"` // display name at creation time
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
	Reviews      []Review  `json:"reviews"`
}

// Review is embedded in a List and addressed by its index there.
type Review struct {
	Rating    int       `json:"rating"` // 1..10
	Comment   string    `json:"comment"`
	Hidden    bool      `json:"hidden"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListUpdate carries the optional fields of an update. Nil fields are left
// unchanged.
type ListUpdate struct {
	Destinations *[]int
	Visibility   *bool
	Description  *string
}

// ListDetails is a list with its destination IDs resolved against the catalog.
type ListDetails struct {
	Name          string        `json:"name"`
	Visibility    bool          `json:"visibility"`
	Description   string        `json:"description"`
	CreatedBy     string        `json:"createdBy"`
	CreatorName   string        `json:"creatorName"`
	LastModified  time.Time     `json:"lastModified"`
	Destinations  []Destination `json:"destinations"`
	Reviews       []Review      `json:"reviews"`
	AverageRating float64       `json:"averageRating"`
}

// PublicListSummary is the public-listing view of a list.
type PublicListSummary struct {
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	CreatorName      string    `json:"creatorName"`
	DestinationCount int       `json:"destinationCount"`
	Destinations     []int     `json:"destinations"`
	AverageRating    float64   `json:"averageRating"`
	ReviewCount      int       `json:"reviewCount"`
	LastModified     time.Time `json:"lastModified"`
	Reviews          []Review  `json:"reviews"`
}

// ReviewEntry is one review flattened for moderation.
type ReviewEntry struct {
	ListName    string    `json:"listName"`
	ReviewIndex int       `json:"reviewIndex"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	Hidden      bool      `json:"hidden"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// VisibleReviews returns the reviews that are not hidden, in order.
func (l *List) VisibleReviews() []Review {
	out := make([]Review, 0, len(l.Reviews))
	for _, r := range l.Reviews {
		if !r.Hidden {
			out = append(out, r)
		}
	}
	return out
}

// AverageRating averages the given reviews, or returns 0 for none.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
