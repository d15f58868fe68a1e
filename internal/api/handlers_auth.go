// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/wayfarer/internal/auth"
	"github.com/tomtom215/wayfarer/internal/identity"
	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/models"
)

// RegisterRequest is the body of POST /api/open/register.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=254" example:"jane@example.org"`
	Password    string `json:"password" validate:"required,max=72" example:"lisbon2026"`
	DisplayName string `json:"displayName" validate:"max=50" example:"Jane"`
}

// RegisterResponse confirms a new account.
type RegisterResponse struct {
	Message string             `json:"message"`
	User    models.UserSummary `json:"user"`
}

// LoginRequest is the body of POST /api/open/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"jane@example.org"`
	Password string `json:"password" validate:"required" example:"lisbon2026"`
}

// LoginResponse carries a bearer token. The same token is set as the
// "token" cookie.
type LoginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Register creates a local account.
//
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "account"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /open/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.users.Register(r.Context(), identity.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	switch {
	case err == nil:
	case errors.Is(err, identity.ErrEmailTaken):
		respondError(w, http.StatusConflict, msgEmailTaken)
		return
	case errors.Is(err, identity.ErrWeakPassword):
		detail := strings.TrimPrefix(err.Error(), identity.ErrWeakPassword.Error()+": ")
		respondError(w, http.StatusBadRequest, "Password does not meet requirements: "+detail+".")
		return
	default:
		respondInternal(w, r, "Failed to register.", err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("user_id", u.ID).Msg("account registered")
	respondJSON(w, http.StatusCreated, RegisterResponse{
		Message: "Account created successfully.",
		User:    u.Summary(),
	})
}

// Login checks a password and issues a token.
//
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /open/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondLoginError(w, r, req.Email, err)
		return
	}

	token, expiresAt, err := h.tokens.GenerateToken(u)
	if err != nil {
		respondInternal(w, r, "Failed to issue token.", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	h.security.LogLoginSuccess(u.ID, u.Email, models.ProviderLocal, r.RemoteAddr)
	respondJSON(w, http.StatusOK, LoginResponse{
		Message:   "Login successful.",
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

func (h *Handler) respondLoginError(w http.ResponseWriter, r *http.Request, email string, err error) {
	switch {
	case errors.Is(err, identity.ErrTooManyAttempts):
		h.security.LogLoginFailure(email, models.ProviderLocal, r.RemoteAddr, "rate_limited")
		respondError(w, http.StatusTooManyRequests, msgTooManyAttempts)
	case errors.Is(err, identity.ErrInvalidCredentials):
		h.security.LogLoginFailure(email, models.ProviderLocal, r.RemoteAddr, "invalid_credentials")
		respondError(w, http.StatusUnauthorized, msgBadCredentials)
	case errors.Is(err, identity.ErrDisabled):
		h.security.LogLoginFailure(email, models.ProviderLocal, r.RemoteAddr, "disabled")
		respondError(w, http.StatusUnauthorized, auth.MsgAccountDisabled)
	default:
		respondInternal(w, r, "Failed to log in.", err)
	}
}

// Me returns the caller's profile.
//
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserSummary
// @Failure 401 {object} ErrorResponse
// @Router /secure/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, auth.MsgNoToken)
		return
	}
	respondJSON(w, http.StatusOK, u.Summary())
}
