// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"net/http"

	"github.com/tomtom215/wayfarer/internal/auth"
)

// EmailRequest names the target of an admin user action.
type EmailRequest struct {
	Email string `json:"email" validate:"required,email" example:"jane@example.org"`
}

// BanUser disables an account.
//
// @Summary Ban a user
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EmailRequest true "target"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/ban-user [post]
func (h *Handler) BanUser(w http.ResponseWriter, r *http.Request) {
	h.setDisabled(w, r, true)
}

// UnbanUser re-enables an account.
//
// @Summary Unban a user
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EmailRequest true "target"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/unban-user [post]
func (h *Handler) UnbanUser(w http.ResponseWriter, r *http.Request) {
	h.setDisabled(w, r, false)
}

func (h *Handler) setDisabled(w http.ResponseWriter, r *http.Request, disabled bool) {
	var req EmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	actor, _ := auth.UserFromContext(r.Context())

	u, err := h.users.SetDisabled(r.Context(), actor.ID, req.Email, disabled)
	if err != nil {
		respondUserError(w, r, err, "Failed to update user.")
		return
	}
	if disabled {
		respondMessage(w, http.StatusOK, "User "+u.Email+" has been banned successfully.")
		return
	}
	respondMessage(w, http.StatusOK, "User "+u.Email+" has been unbanned successfully.")
}

// MakeAdmin grants admin rights.
//
// @Summary Grant admin
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EmailRequest true "target"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/make-admin [post]
func (h *Handler) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	h.setAdmin(w, r, true)
}

// RemoveAdmin revokes admin rights.
//
// @Summary Revoke admin
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EmailRequest true "target"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/remove-admin [post]
func (h *Handler) RemoveAdmin(w http.ResponseWriter, r *http.Request) {
	h.setAdmin(w, r, false)
}

func (h *Handler) setAdmin(w http.ResponseWriter, r *http.Request, admin bool) {
	var req EmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	actor, _ := auth.UserFromContext(r.Context())

	u, err := h.users.SetAdmin(r.Context(), actor.ID, req.Email, admin)
	if err != nil {
		respondUserError(w, r, err, "Failed to update user.")
		return
	}
	if admin {
		respondMessage(w, http.StatusOK, u.Email+" is now an admin.")
		return
	}
	respondMessage(w, http.StatusOK, u.Email+" is no longer an admin.")
}

// Users lists every account without password hashes.
//
// @Summary List users
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.UserSummary
// @Failure 403 {object} ErrorResponse
// @Router /admin/users [get]
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		respondInternal(w, r, "Failed to retrieve users.", err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}
