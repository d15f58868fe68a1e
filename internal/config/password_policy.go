// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// PasswordPolicy defines the rules applied to local account passwords, both
// for the bootstrap admin and for self-registration.
type PasswordPolicy struct {
	MinLength             int
	RequireUppercase      bool
	RequireLowercase      bool
	RequireDigit          bool
	RequireSpecial        bool
	MaxConsecutiveRepeats int
	ForbidCommon          bool
	ForbidEmailSimilarity bool
}

// DefaultPasswordPolicy is applied to the bootstrap admin account.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:             12,
		RequireUppercase:      true,
		RequireLowercase:      true,
		RequireDigit:          true,
		RequireSpecial:        true,
		MaxConsecutiveRepeats: 3,
		ForbidCommon:          true,
		ForbidEmailSimilarity: true,
	}
}

// UserPasswordPolicy is applied to self-registered accounts.
func UserPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:             8,
		RequireLowercase:      true,
		RequireDigit:          true,
		MaxConsecutiveRepeats: 4,
		ForbidCommon:          true,
		ForbidEmailSimilarity: true,
	}
}

// Validate returns every rule password breaks. email may be empty.
func (p PasswordPolicy) Validate(password, email string) []string {
	var problems []string

	if n := len([]rune(password)); n < p.MinLength {
		problems = append(problems, fmt.Sprintf("password must be at least %d characters (got %d)", p.MinLength, n))
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	if p.RequireUppercase && !upper {
		problems = append(problems, "password must contain at least one uppercase letter")
	}
	if p.RequireLowercase && !lower {
		problems = append(problems, "password must contain at least one lowercase letter")
	}
	if p.RequireDigit && !digit {
		problems = append(problems, "password must contain at least one digit")
	}
	if p.RequireSpecial && !special {
		problems = append(problems, "password must contain at least one special character")
	}

	if p.MaxConsecutiveRepeats > 0 && maxConsecutiveRepeats(password) > p.MaxConsecutiveRepeats {
		problems = append(problems, fmt.Sprintf("password cannot have more than %d consecutive repeated characters", p.MaxConsecutiveRepeats))
	}
	if p.ForbidCommon && isCommonPassword(password) {
		problems = append(problems, "password is too common and easily guessable")
	}
	if p.ForbidEmailSimilarity && email != "" && similarToEmail(password, email) {
		problems = append(problems, "password is too similar to email")
	}
	return problems
}

// ValidateWithError joins the Validate results into one error, or returns nil.
func (p PasswordPolicy) ValidateWithError(password, email string) error {
	if problems := p.Validate(password, email); len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func maxConsecutiveRepeats(s string) int {
	best, run := 0, 0
	var last rune
	for i, r := range s {
		if i > 0 && r == last {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
		last = r
	}
	return best
}

var commonPasswords = map[string]bool{
	"password": true, "password1": true, "password123": true, "12345678": true,
	"123456789": true, "1234567890": true, "qwerty123": true, "qwertyuiop": true,
	"letmein1": true, "welcome1": true, "iloveyou1": true, "admin123": true,
	"passw0rd": true, "abc12345": true, "travel123": true, "wayfarer1": true,
}

func isCommonPassword(pw string) bool {
	return commonPasswords[strings.ToLower(pw)]
}

func similarToEmail(pw, email string) bool {
	local := strings.ToLower(email)
	if at := strings.Index(local, "@"); at > 0 {
		local = local[:at]
	}
	if len(local) < 3 {
		return false
	}
	return strings.Contains(strings.ToLower(pw), local)
}
