// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// SecurityEvent is an authentication or administration event worth auditing.
type SecurityEvent struct {
	Event    string // login_success, login_failure, access_denied, admin_action, ...
	UserID   string
	Email    string
	Provider string
	IP       string
	Success  bool
	Reason   string
	Target   string // subject of an admin action (email)
}

// SecurityLogger writes audit entries with credentials and personal data masked.
type SecurityLogger struct {
	logger zerolog.Logger
}

func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: With().Str("component", "security").Logger()}
}

//nolint:gocritic // zerolog.Logger is passed by value by design of the library
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "security").Logger()}
}

// LogEvent writes ev at info level on success and warn level otherwise.
func (l *SecurityLogger) LogEvent(ev *SecurityEvent) {
	e := l.logger.Info()
	status := "success"
	if !ev.Success {
		e = l.logger.Warn()
		status = "failed"
	}
	e = e.Str("event", ev.Event).Str("status", status)

	if ev.UserID != "" {
		e = e.Str("user_id", SanitizeID(ev.UserID))
	}
	if ev.Email != "" {
		e = e.Str("email", SanitizeEmail(ev.Email))
	}
	if ev.Provider != "" {
		e = e.Str("provider", ev.Provider)
	}
	if ev.IP != "" {
		e = e.Str("ip", ev.IP)
	}
	if ev.Target != "" {
		e = e.Str("target", SanitizeEmail(ev.Target))
	}
	if ev.Reason != "" {
		e = e.Str("reason", ev.Reason)
	}
	e.Msg("security event")
}

func (l *SecurityLogger) LogLoginSuccess(userID, email, provider, ip string) {
	l.LogEvent(&SecurityEvent{Event: "login_success", UserID: userID, Email: email, Provider: provider, IP: ip, Success: true})
}

func (l *SecurityLogger) LogLoginFailure(email, provider, ip, reason string) {
	l.LogEvent(&SecurityEvent{Event: "login_failure", Email: email, Provider: provider, IP: ip, Reason: reason})
}

// LogAdminAction records a ban, unban, promotion, demotion or review moderation.
func (l *SecurityLogger) LogAdminAction(adminID, action, target string) {
	l.LogEvent(&SecurityEvent{Event: "admin_action", UserID: adminID, Target: target, Reason: action, Success: true})
}

func (l *SecurityLogger) LogAccessDenied(userID, ip, reason string) {
	l.LogEvent(&SecurityEvent{Event: "access_denied", UserID: userID, IP: ip, Reason: reason})
}

// SanitizeToken keeps the first and last four characters.
//
//	"eyJhbGciOiJIUzI1NiJ9.e30.sig0" -> "eyJh...sig0"
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeID masks all but the edges of an identifier.
func SanitizeID(id string) string {
	if id == "" {
		return ""
	}
	if len(id) <= 8 {
		return "***"
	}
	return id[:4] + "..." + id[len(id)-4:]
}

// SanitizeEmail keeps the first two characters of the local part.
//
//	"jane.doe@example.com" -> "ja***@example.com"
func SanitizeEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	local, domain := email[:at], email[at:]
	if len(local) <= 2 {
		return "***" + domain
	}
	return local[:2] + "***" + domain
}
