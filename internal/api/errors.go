// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/wayfarer/internal/auth"
	"github.com/tomtom215/wayfarer/internal/authz"
	"github.com/tomtom215/wayfarer/internal/identity"
	"github.com/tomtom215/wayfarer/internal/lists"
)

// Client-facing messages.
const (
	msgListExists       = "List already exists."
	msgListNotFound     = "List not found."
	msgListDoesNotExist = "List does not exist."
	msgNotOwner         = "Access denied. You are not the owner of this list."
	msgPrivateList      = "Access denied. This list is private."
	msgReviewNotFound   = "Review not found."
	msgUserNotFound     = "User not found."
	msgSelfModify       = "Cannot modify your own account."
	msgEmailTaken       = "Email already registered."
	msgBadCredentials   = "Invalid email or password."
	msgTooManyAttempts  = "Too many login attempts. Please try again later."
	msgRateLimited      = "Too many requests. Please try again later."
)

// respondListError maps a lists error to a status and message. notFound is
// the message for a missing list, which differs between routes.
func (h *Handler) respondListError(w http.ResponseWriter, r *http.Request, err error, notFound, fallback string) {
	var accessErr *lists.AccessError
	var validationErr *lists.ValidationError

	switch {
	case errors.Is(err, lists.ErrReviewNotFound):
		respondError(w, http.StatusNotFound, msgReviewNotFound)
	case errors.Is(err, lists.ErrNotFound):
		respondError(w, http.StatusNotFound, notFound)
	case errors.Is(err, lists.ErrConflict):
		respondError(w, http.StatusConflict, msgListExists)
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Msg)
	case errors.As(err, &accessErr):
		h.respondAccessDenied(w, r, accessErr)
	default:
		respondInternal(w, r, fallback, err)
	}
}

func (h *Handler) respondAccessDenied(w http.ResponseWriter, r *http.Request, e *lists.AccessError) {
	var userID string
	if user, ok := auth.UserFromContext(r.Context()); ok {
		userID = user.ID
	}
	h.security.LogAccessDenied(userID, r.RemoteAddr, string(e.Action)+":"+string(e.Reason))

	switch e.Reason {
	case authz.ReasonUnauthenticated:
		respondError(w, http.StatusUnauthorized, auth.MsgNoToken)
	case authz.ReasonPrivate:
		respondError(w, http.StatusForbidden, msgPrivateList)
	case authz.ReasonNotAdmin:
		respondError(w, http.StatusForbidden, authz.MsgAdminsOnly)
	default:
		respondError(w, http.StatusForbidden, msgNotOwner)
	}
}

// respondUserError maps an identity error from an admin action.
func respondUserError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, identity.ErrUserNotFound):
		respondError(w, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, identity.ErrSelfModification):
		respondError(w, http.StatusBadRequest, msgSelfModify)
	default:
		respondInternal(w, r, fallback, err)
	}
}
