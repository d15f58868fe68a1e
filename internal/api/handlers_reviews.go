// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"net/http"

	"github.com/tomtom215/wayfarer/internal/auth"
	"github.com/tomtom215/wayfarer/internal/lists"
)

// ReviewRequest is the body of POST /api/secure/lists/{id}/review.
// Range checking is left to the service so the message matches exactly.
type ReviewRequest struct {
	Rating  *int   `json:"rating" example:"8"`
	Comment string `json:"comment" validate:"max=2000" example:"Great food, too many stairs."`
}

// ToggleReviewRequest is the body of POST /api/admin/toggle-review-hidden.
// Without hidden the flag is flipped.
type ToggleReviewRequest struct {
	ListName    string `json:"listName" validate:"required"`
	ReviewIndex *int   `json:"reviewIndex" validate:"required"`
	Hidden      *bool  `json:"hidden"`
}

// AddReview appends a review to a list.
//
// @Summary Review a list
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "list name"
// @Param body body ReviewRequest true "review"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /secure/lists/{id}/review [post]
func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Rating == nil {
		respondError(w, http.StatusBadRequest, lists.MsgRatingRange)
		return
	}

	name := pathParam(r, "id")
	user, _ := auth.UserFromContext(r.Context())

	_, err := h.lists.AddReview(r.Context(), user, name, lists.ReviewInput{
		Rating:  *req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		h.respondListError(w, r, err, msgListNotFound, "Failed to add review.")
		return
	}
	respondMessage(w, http.StatusCreated, "Review added successfully.")
}

// ToggleReviewHidden hides, unhides or flips one review.
//
// @Summary Hide or unhide a review
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ToggleReviewRequest true "review to change"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/toggle-review-hidden [post]
func (h *Handler) ToggleReviewHidden(w http.ResponseWriter, r *http.Request) {
	var req ToggleReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, _ := auth.UserFromContext(r.Context())

	hidden, err := h.lists.SetReviewHidden(r.Context(), user, req.ListName, *req.ReviewIndex, req.Hidden)
	if err != nil {
		h.respondListError(w, r, err, msgListNotFound, "Failed to update review visibility.")
		return
	}
	if hidden {
		respondMessage(w, http.StatusOK, "Review hidden successfully.")
		return
	}
	respondMessage(w, http.StatusOK, "Review unhidden successfully.")
}

// AllReviews returns every review of every list.
//
// @Summary List all reviews
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ReviewEntry
// @Failure 403 {object} ErrorResponse
// @Router /admin/reviews [get]
func (h *Handler) AllReviews(w http.ResponseWriter, r *http.Request) {
	entries, err := h.lists.AllReviews(r.Context())
	if err != nil {
		respondInternal(w, r, "Failed to retrieve reviews.", err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
