// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/wayfarer/internal/models"
	"github.com/tomtom215/wayfarer/internal/search"
)

const (
	msgDestinationNotFound = "Destination not found."
	msgNoMatches           = "No matching destinations found."
	msgNoData              = "No destinations available."
	msgInvalidCount        = "Invalid result count."
)

// Destinations returns the full catalog.
//
// @Summary List all destinations
// @Tags Destinations
// @Produce json
// @Success 200 {array} models.Destination
// @Router /open/destinations [get]
func (h *Handler) Destinations(w http.ResponseWriter, _ *http.Request) {
	all := h.catalog.All()
	if all == nil {
		all = []models.Destination{}
	}
	respondJSON(w, http.StatusOK, all)
}

// Destination returns one destination by customId.
//
// @Summary Get a destination
// @Tags Destinations
// @Produce json
// @Param id path int true "customId"
// @Success 200 {object} models.Destination
// @Failure 404 {object} ErrorResponse
// @Router /open/destination/{id} [get]
func (h *Handler) Destination(w http.ResponseWriter, r *http.Request) {
	d, ok := h.destinationFromPath(r)
	if !ok {
		respondError(w, http.StatusNotFound, msgDestinationNotFound)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// DestinationCoordinates returns the latitude and longitude of one destination.
//
// @Summary Get destination coordinates
// @Tags Destinations
// @Produce json
// @Param id path int true "customId"
// @Success 200 {object} models.Coordinates
// @Failure 404 {object} ErrorResponse
// @Router /open/destination/{id}/coordinates [get]
func (h *Handler) DestinationCoordinates(w http.ResponseWriter, r *http.Request) {
	d, ok := h.destinationFromPath(r)
	if !ok {
		respondError(w, http.StatusNotFound, msgDestinationNotFound)
		return
	}
	respondJSON(w, http.StatusOK, models.Coordinates{Latitude: d.Latitude, Longitude: d.Longitude})
}

func (h *Handler) destinationFromPath(r *http.Request) (models.Destination, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return models.Destination{}, false
	}
	return h.catalog.Get(id)
}

// Countries returns the distinct countries in catalog order.
//
// @Summary List countries
// @Tags Destinations
// @Produce json
// @Success 200 {array} string
// @Router /open/countries [get]
func (h *Handler) Countries(w http.ResponseWriter, _ *http.Request) {
	countries := h.catalog.Countries()
	if countries == nil {
		countries = []string{}
	}
	respondJSON(w, http.StatusOK, countries)
}

// Search filters the catalog by name, country and region.
//
// @Summary Search destinations
// @Description Every non-empty criterion must match. Matching is fuzzy or substring depending on configuration.
// @Tags Destinations
// @Produce json
// @Param name query string false "destination name"
// @Param country query string false "country"
// @Param region query string false "region"
// @Param n query int false "maximum results"
// @Success 200 {array} models.Destination
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /open/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := models.SearchQuery{
		Name:    q.Get("name"),
		Country: q.Get("country"),
		Region:  q.Get("region"),
	}
	if raw := q.Get("n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, msgInvalidCount)
			return
		}
		query.Limit = n
	}

	results, err := h.matcher.Search(h.catalog.All(), query)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, results)
	case errors.Is(err, search.ErrInvalidLimit):
		respondError(w, http.StatusBadRequest, msgInvalidCount)
	case errors.Is(err, search.ErrNoData):
		respondError(w, http.StatusNotFound, msgNoData)
	case errors.Is(err, search.ErrNoMatches):
		respondError(w, http.StatusNotFound, msgNoMatches)
	default:
		respondInternal(w, r, "Failed to search destinations.", err)
	}
}
