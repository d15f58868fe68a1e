// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/validation"
)

// maxBodyBytes caps request bodies. A list description is at most 1000
// characters, so 64KB leaves room for a long destination array.
const maxBodyBytes = 64 << 10

// MessageResponse is the body of every successful mutation.
type MessageResponse struct {
	Message string `json:"message" example:"List 'Summer' created successfully."`
}

// ErrorResponse is the body of every failure.
type ErrorResponse struct {
	Error string `json:"error" example:"List not found."`
}

// sanitizeLogValue escapes control characters so user input cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error."}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Debug().Err(err).Msg("failed to write JSON response")
	}
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, MessageResponse{Message: msg})
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg})
}

// respondInternal logs err with the request's IDs and hides it from the
// client behind msg.
func respondInternal(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logging.Ctx(r.Context()).Error().
		Err(err).
		Str("method", r.Method).
		Str("path", sanitizeLogValue(r.URL.Path)).
		Msg(msg)
	respondError(w, http.StatusInternalServerError, msg)
}

var errEmptyBody = errors.New("request body is required")

// decodeJSON reads a single JSON object into dst and runs the validator.
// It writes a 400 response and returns false on any problem.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			err = errEmptyBody
		}
		respondError(w, http.StatusBadRequest, decodeErrorMessage(err))
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		respondError(w, http.StatusBadRequest, verr.Error())
		return false
	}
	return true
}

func decodeErrorMessage(err error) string {
	var maxErr *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, errEmptyBody):
		return "Request body is required."
	case errors.As(err, &maxErr):
		return "Request body too large."
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return fmt.Sprintf("%s has the wrong type.", typeErr.Field)
	default:
		return "Invalid JSON body."
	}
}
