// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package identity

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/metrics"
	"github.com/tomtom215/wayfarer/internal/models"
	"github.com/tomtom215/wayfarer/internal/store"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDisabled           = errors.New("account disabled")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrSelfModification   = errors.New("cannot modify your own account")
	ErrWeakPassword       = errors.New("password does not meet requirements")
)

// DefaultBcryptCost matches the cost used for the bootstrap admin.
const DefaultBcryptCost = 12

const loginWindow = time.Minute

// dummyHash is compared against when the email is unknown so the response
// time does not reveal which emails are registered.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("wayfarer-timing-equalizer"), bcrypt.MinCost)

// Directory manages user accounts on top of a store.UserStore.
type Directory struct {
	users    store.UserStore
	policy   config.PasswordPolicy
	cost     int
	limiter  *loginLimiter
	security *logging.SecurityLogger
	now      func() time.Time
}

// Option customizes a Directory.
type Option func(*Directory)

// WithBcryptCost overrides the hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(d *Directory) { d.cost = cost }
}

// WithPasswordPolicy overrides the self-registration policy.
func WithPasswordPolicy(p config.PasswordPolicy) Option {
	return func(d *Directory) { d.policy = p }
}

// NewDirectory builds a directory. loginAttempts is the per-email allowance
// per minute.
func NewDirectory(users store.UserStore, loginAttempts int, opts ...Option) *Directory {
	d := &Directory{
		users:    users,
		policy:   config.UserPasswordPolicy(),
		cost:     DefaultBcryptCost,
		limiter:  newLoginLimiter(loginAttempts, loginWindow),
		security: logging.NewSecurityLogger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RegisterInput is a self-registration request.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a local, non-admin account.
func (d *Directory) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := normalizeEmail(in.Email)
	if err := d.policy.ValidateWithError(in.Password, email); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}
	return d.createLocal(ctx, email, in.Password, in.DisplayName, false)
}

func (d *Directory) createLocal(ctx context.Context, email, password, displayName string, admin bool) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = email[:strings.Index(email+"@", "@")]
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		Admin:        admin,
		Provider:     models.ProviderLocal,
		CreatedAt:    d.now().UTC(),
	}
	if err := d.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrExists) {
			return nil, fmt.Errorf("register %s: %w", logging.SanitizeEmail(email), ErrEmailTaken)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate checks a local password. Unknown emails, OIDC-only accounts
// and wrong passwords all return ErrInvalidCredentials.
func (d *Directory) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if !d.limiter.Allow(email) {
		metrics.RecordAuthFailure("rate_limited")
		return nil, ErrTooManyAttempts
	}

	u, err := d.users.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("load user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		metrics.RecordAuthFailure("unknown_email")
		return nil, ErrInvalidCredentials
	}

	if u.PasswordHash == "" {
		metrics.RecordAuthFailure("no_local_password")
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		metrics.RecordAuthFailure("bad_password")
		return nil, ErrInvalidCredentials
	}
	if u.Disabled {
		metrics.RecordAuthFailure("disabled")
		return nil, ErrDisabled
	}
	return u, nil
}

// Get loads a user by ID.
func (d *Directory) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := d.users.GetUser(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return u, nil
}

// GetByEmail loads a user by email, case-insensitively.
func (d *Directory) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := d.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return u, nil
}

// List returns every user without password hashes, oldest first.
func (d *Directory) List(ctx context.Context) ([]models.UserSummary, error) {
	users, err := d.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	out := make([]models.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, users[i].Summary())
	}
	return out, nil
}

// SetDisabled bans or unbans the user with the given email. An admin cannot
// ban themselves.
func (d *Directory) SetDisabled(ctx context.Context, actorID, email string, disabled bool) (*models.User, error) {
	action := "ban_user"
	if !disabled {
		action = "unban_user"
	}
	return d.modify(ctx, actorID, email, action, disabled, func(u *models.User) {
		u.Disabled = disabled
	})
}

// SetAdmin grants or revokes admin rights. An admin cannot demote
// themselves.
func (d *Directory) SetAdmin(ctx context.Context, actorID, email string, admin bool) (*models.User, error) {
	action := "make_admin"
	if !admin {
		action = "remove_admin"
	}
	return d.modify(ctx, actorID, email, action, !admin, func(u *models.User) {
		u.Admin = admin
	})
}

func (d *Directory) modify(ctx context.Context, actorID, email, action string, guardSelf bool, apply func(*models.User)) (*models.User, error) {
	target, err := d.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if guardSelf && target.ID == actorID {
		return nil, ErrSelfModification
	}

	updated, err := d.users.UpdateUser(ctx, target.ID, func(u *models.User) error {
		apply(u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, mapNotFound(err))
	}

	d.security.LogAdminAction(actorID, action, updated.Email)
	return updated, nil
}

// EnsureAdmin creates the bootstrap admin if no account uses email. An
// existing account is left untouched. It reports whether a user was created.
func (d *Directory) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, nil
	}
	if _, err := d.users.GetUserByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return false, fmt.Errorf("look up bootstrap admin: %w", err)
	}

	if _, err := d.createLocal(ctx, email, password, "Administrator", true); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return false, nil
		}
		return false, err
	}
	logging.Info().Str("email", logging.SanitizeEmail(email)).Msg("created bootstrap admin account")
	return true, nil
}

// ProvisionOIDC returns the user for an externally authenticated identity,
// creating it on first sight. An account already bound to subject is
// returned as is. A local account with the same email is linked only when
// the provider asserts the email is verified, and an account bound to a
// different subject is never taken over.
func (d *Directory) ProvisionOIDC(ctx context.Context, subject, email, name string, emailVerified bool) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: identity token has no email", ErrInvalidCredentials)
	}
	if subject == "" {
		return nil, fmt.Errorf("%w: identity token has no subject", ErrInvalidCredentials)
	}

	u, err := d.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return d.linkSubject(ctx, u, subject, emailVerified)
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("look up %s: %w", logging.SanitizeEmail(email), err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = email[:strings.Index(email+"@", "@")]
	}
	u = &models.User{
		ID:          uuid.New().String(),
		Email:       email,
		DisplayName: name,
		Provider:    models.ProviderOIDC,
		Subject:     subject,
		CreatedAt:   d.now().UTC(),
	}
	if err := d.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrExists) {
			// Lost a race with a concurrent first request.
			existing, err := d.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			return d.linkSubject(ctx, existing, subject, emailVerified)
		}
		return nil, fmt.Errorf("provision user: %w", err)
	}
	logging.Info().Str("user_id", u.ID).Msg("provisioned user from identity provider")
	return u, nil
}

// linkSubject resolves an existing account for an OIDC subject.
func (d *Directory) linkSubject(ctx context.Context, u *models.User, subject string, emailVerified bool) (*models.User, error) {
	switch {
	case u.Subject == subject:
		return u, nil
	case u.Subject != "":
		d.security.LogAccessDenied(u.ID, "", "identity provider subject does not match account")
		return nil, fmt.Errorf("%w: account is bound to another identity", ErrInvalidCredentials)
	case !emailVerified:
		d.security.LogAccessDenied(u.ID, "", "unverified email cannot link existing account")
		return nil, fmt.Errorf("%w: email not verified by identity provider", ErrInvalidCredentials)
	}

	linked, err := d.users.UpdateUser(ctx, u.ID, func(cur *models.User) error {
		if cur.Subject != "" && cur.Subject != subject {
			return fmt.Errorf("%w: account is bound to another identity", ErrInvalidCredentials)
		}
		cur.Subject = subject
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("link %s: %w", u.ID, mapNotFound(err))
	}
	logging.Info().Str("user_id", u.ID).Msg("linked account to identity provider subject")
	return linked, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
