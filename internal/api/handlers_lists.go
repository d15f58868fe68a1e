// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/wayfarer/internal/auth"
	"github.com/tomtom215/wayfarer/internal/lists"
	"github.com/tomtom215/wayfarer/internal/models"
)

// CreateListRequest is the body of POST /api/secure/list.
type CreateListRequest struct {
	Name         string `json:"name" validate:"required,notblank,max=100" example:"Summer 2026"`
	Visibility   *bool  `json:"visibility" validate:"required" example:"true"`
	Description  string `json:"description" validate:"max=1000" example:"Beaches and old towns"`
	Destinations []int  `json:"destinations" example:"3,17,42"`
}

// UpdateListRequest is the body of PUT /api/secure/list/{name}. Omitted
// fields keep their stored values.
type UpdateListRequest struct {
	Destinations *[]int  `json:"destinations"`
	Visibility   *bool   `json:"visibility"`
	Description  *string `json:"description" validate:"omitempty,max=1000"`
}

// pathParam returns a chi path parameter, unescaping list names that
// contain reserved characters.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// CreateList creates a list owned by the caller.
//
// @Summary Create a list
// @Tags Lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateListRequest true "new list"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /secure/list [post]
func (h *Handler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req CreateListRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, _ := auth.UserFromContext(r.Context())

	l, err := h.lists.Create(r.Context(), user, lists.CreateInput{
		Name:         req.Name,
		Visibility:   *req.Visibility,
		Description:  req.Description,
		Destinations: req.Destinations,
	})
	if err != nil {
		h.respondListError(w, r, err, msgListNotFound, "Failed to create list.")
		return
	}
	respondMessage(w, http.StatusCreated, "List '"+l.Name+"' created successfully.")
}

// UpdateList changes a list's destinations, visibility or description.
//
// @Summary Update a list
// @Tags Lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "list name"
// @Param body body UpdateListRequest true "fields to change"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /secure/list/{name} [put]
func (h *Handler) UpdateList(w http.ResponseWriter, r *http.Request) {
	var req UpdateListRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, _ := auth.UserFromContext(r.Context())
	name := pathParam(r, "name")

	_, err := h.lists.Update(r.Context(), user, name, models.ListUpdate{
		Destinations: req.Destinations,
		Visibility:   req.Visibility,
		Description:  req.Description,
	})
	if err != nil {
		h.respondListError(w, r, err, msgListDoesNotExist, "Failed to update list.")
		return
	}
	respondMessage(w, http.StatusOK, "List '"+name+"' updated successfully.")
}

// DeleteList removes a list and its reviews.
//
// @Summary Delete a list
// @Tags Lists
// @Produce json
// @Security BearerAuth
// @Param name path string true "list name"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /secure/list/{name} [delete]
func (h *Handler) DeleteList(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	name := pathParam(r, "name")

	if err := h.lists.Delete(r.Context(), user, name); err != nil {
		h.respondListError(w, r, err, msgListNotFound, "Failed to delete list.")
		return
	}
	respondMessage(w, http.StatusOK, "List '"+name+"' deleted successfully.")
}

// MyLists returns the caller's lists, most recently modified first.
//
// @Summary List my lists
// @Tags Lists
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.List
// @Router /secure/lists [get]
func (h *Handler) MyLists(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	ls, err := h.lists.MyLists(r.Context(), user)
	if err != nil {
		respondInternal(w, r, "Failed to retrieve list names.", err)
		return
	}
	respondJSON(w, http.StatusOK, ls)
}

// ListDetails returns one list with its destinations resolved.
//
// @Summary Get list details
// @Tags Lists
// @Produce json
// @Security BearerAuth
// @Param name path string true "list name"
// @Success 200 {object} models.ListDetails
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /secure/list/{name}/details [get]
func (h *Handler) ListDetails(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	d, err := h.lists.Details(r.Context(), user, pathParam(r, "name"))
	if err != nil {
		h.respondListError(w, r, err, msgListNotFound, "Failed to retrieve list details.")
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// PublicListsGuest returns the most recently modified public lists, capped
// for anonymous visitors.
//
// @Summary Recent public lists
// @Tags Lists
// @Produce json
// @Success 200 {array} models.PublicListSummary
// @Router /open/public-lists [get]
func (h *Handler) PublicListsGuest(w http.ResponseWriter, r *http.Request) {
	h.publicLists(w, r, true)
}

// PublicListsAll returns every public list.
//
// @Summary All public lists
// @Tags Lists
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PublicListSummary
// @Router /secure/public-lists [get]
func (h *Handler) PublicListsAll(w http.ResponseWriter, r *http.Request) {
	h.publicLists(w, r, false)
}

func (h *Handler) publicLists(w http.ResponseWriter, r *http.Request, guest bool) {
	out, err := h.lists.PublicLists(r.Context(), guest)
	if err != nil {
		respondInternal(w, r, "Failed to retrieve public lists.", err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}
