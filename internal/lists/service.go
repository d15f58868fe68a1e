// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package lists

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomtom215/wayfarer/internal/authz"
	"github.com/tomtom215/wayfarer/internal/cache"
	"github.com/tomtom215/wayfarer/internal/catalog"
	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/events"
	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/metrics"
	"github.com/tomtom215/wayfarer/internal/models"
	"github.com/tomtom215/wayfarer/internal/store"
)

// Input limits.
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 1000
	MinRating            = 1
	MaxRating            = 10
)

// MsgRatingRange is the validation message for an out-of-range rating.
const MsgRatingRange = "Rating must be between 1 and 10."

const (
	cacheKeyGuest = "public:guest"
	cacheKeyAll   = "public:all"
)

// CreateInput is a new list as submitted by its creator.
type CreateInput struct {
	Name         string
	Visibility   bool
	Description  string
	Destinations []int
}

// ReviewInput is a review as submitted by a user.
type ReviewInput struct {
	Rating  int
	Comment string
}

// Service implements list and review operations.
type Service struct {
	lists      store.ListStore
	catalog    *catalog.Catalog
	publisher  events.Publisher
	public     *cache.Cache
	guestLimit int
	now        func() time.Time
}

// NewService wires a Service. A nil publisher disables events.
func NewService(lists store.ListStore, cat *catalog.Catalog, pub events.Publisher, cfg config.ListsConfig) *Service {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	limit := cfg.PublicGuestLimit
	if limit < 1 {
		limit = 10
	}
	return &Service{
		lists:      lists,
		catalog:    cat,
		publisher:  pub,
		public:     cache.New("public_lists", cfg.CacheTTL),
		guestLimit: limit,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Close stops the public listing cache.
func (s *Service) Close() {
	s.public.Close()
}

// Create stores a new list owned by caller. Duplicate destination IDs are
// dropped, keeping the first occurrence.
func (s *Service) Create(ctx context.Context, caller *models.User, in CreateInput) (*models.List, error) {
	if caller == nil {
		return nil, denied(authz.ActionUpdate, authz.Decision{Reason: authz.ReasonUnauthenticated})
	}

	name := strings.TrimSpace(in.Name)
	if err := validateName(name); err != nil {
		metrics.RecordListOperation("create", "invalid")
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		metrics.RecordListOperation("create", "invalid")
		return nil, err
	}
	dests, err := s.checkDestinations(in.Destinations)
	if err != nil {
		metrics.RecordListOperation("create", "invalid")
		return nil, err
	}

	now := s.now()
	l := &models.List{
		Name:         name,
		Destinations: dests,
		Visibility:   in.Visibility,
		Description:  in.Description,
		CreatedBy:    caller.ID,
		CreatorName:  caller.DisplayName,
		CreatedAt:    now,
		LastModified: now,
		Reviews:      []models.Review{},
	}

	if err := s.lists.CreateList(ctx, l); err != nil {
		if errors.Is(err, store.ErrExists) {
			metrics.RecordListOperation("create", "conflict")
			return nil, fmt.Errorf("create %q: %w", name, ErrConflict)
		}
		metrics.RecordListOperation("create", "error")
		return nil, fmt.Errorf("create %q: %w", name, err)
	}

	metrics.RecordListOperation("create", "ok")
	s.changed(ctx, events.New(events.ListCreated, name, caller.ID).WithVisibility(l.Visibility), l.Visibility)
	return l, nil
}

// Update applies the non-nil fields of upd. Only the creator may update.
// Existence and ownership are checked before the fields are validated, so a
// non-owner learns nothing about the update it sent.
func (s *Service) Update(ctx context.Context, caller *models.User, name string, upd models.ListUpdate) (*models.List, error) {
	c := authz.CallerFromUser(caller)
	var wasPublic bool
	l, err := s.lists.UpdateList(ctx, name, func(l *models.List) error {
		if d := authz.Decide(c, authz.ListResource(l), authz.ActionUpdate); !d.Allowed {
			return denied(authz.ActionUpdate, d)
		}
		if upd.Description != nil {
			if err := validateDescription(*upd.Description); err != nil {
				return err
			}
		}
		if upd.Destinations != nil {
			dests, err := s.checkDestinations(*upd.Destinations)
			if err != nil {
				return err
			}
			l.Destinations = dests
		}
		wasPublic = l.Visibility
		if upd.Visibility != nil {
			l.Visibility = *upd.Visibility
		}
		if upd.Description != nil {
			l.Description = *upd.Description
		}
		l.LastModified = s.now()
		return nil
	})
	if err != nil {
		err = mapStoreError("update", name, err)
		metrics.RecordListOperation("update", resultFor(err))
		return nil, err
	}

	metrics.RecordListOperation("update", "ok")
	s.changed(ctx, events.New(events.ListUpdated, name, c.UserID).WithVisibility(l.Visibility), wasPublic || l.Visibility)
	return l, nil
}

// Delete removes a list and its reviews. Only the creator may delete.
func (s *Service) Delete(ctx context.Context, caller *models.User, name string) error {
	l, err := s.lists.GetList(ctx, name)
	if err != nil {
		err = mapStoreError("delete", name, err)
		metrics.RecordListOperation("delete", resultFor(err))
		return err
	}
	if d := authz.Decide(authz.CallerFromUser(caller), authz.ListResource(l), authz.ActionDelete); !d.Allowed {
		metrics.RecordListOperation("delete", "forbidden")
		return fmt.Errorf("delete %q: %w", name, denied(authz.ActionDelete, d))
	}
	if err := s.lists.DeleteList(ctx, name); err != nil {
		err = mapStoreError("delete", name, err)
		metrics.RecordListOperation("delete", resultFor(err))
		return err
	}

	metrics.RecordListOperation("delete", "ok")
	s.changed(ctx, events.New(events.ListDeleted, name, caller.ID).WithVisibility(l.Visibility), l.Visibility)
	return nil
}

// MyLists returns the caller's lists, most recently modified first.
func (s *Service) MyLists(ctx context.Context, caller *models.User) ([]models.List, error) {
	if caller == nil {
		return []models.List{}, nil
	}
	ls, err := s.lists.ListsByOwner(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("lists of %s: %w", logging.SanitizeID(caller.ID), err)
	}
	if ls == nil {
		ls = []models.List{}
	}
	sortRecentFirst(ls)
	return ls, nil
}

// Details returns a list with destinations resolved against the catalog.
// Hidden reviews are dropped unless the caller is the creator or an admin.
func (s *Service) Details(ctx context.Context, caller *models.User, name string) (*models.ListDetails, error) {
	l, err := s.lists.GetList(ctx, name)
	if err != nil {
		return nil, mapStoreError("details", name, err)
	}

	c := authz.CallerFromUser(caller)
	res := authz.ListResource(l)
	if d := authz.Decide(c, res, authz.ActionRead); !d.Allowed {
		return nil, fmt.Errorf("details %q: %w", name, denied(authz.ActionRead, d))
	}

	reviews := l.Reviews
	if !authz.Decide(c, res, authz.ActionViewHidden).Allowed {
		reviews = l.VisibleReviews()
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	return &models.ListDetails{
		Name:          l.Name,
		Visibility:    l.Visibility,
		Description:   l.Description,
		CreatedBy:     l.CreatedBy,
		CreatorName:   l.CreatorName,
		LastModified:  l.LastModified,
		Destinations:  s.catalog.Resolve(l.Destinations),
		Reviews:       reviews,
		AverageRating: models.AverageRating(l.VisibleReviews()),
	}, nil
}

// PublicLists returns public lists, most recently modified first. Guests
// see at most the configured guest limit.
func (s *Service) PublicLists(ctx context.Context, guest bool) ([]models.PublicListSummary, error) {
	key := cacheKeyAll
	if guest {
		key = cacheKeyGuest
	}
	if v, ok := s.public.Get(key); ok {
		if out, ok := v.([]models.PublicListSummary); ok {
			return out, nil
		}
	}

	// A write that lands while AllLists runs clears the cache; the snapshot
	// read here may predate it, so it is served but not cached.
	gen := s.public.Generation()
	all, err := s.lists.AllLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("public lists: %w", err)
	}
	public := make([]models.List, 0, len(all))
	for i := range all {
		if all[i].Visibility {
			public = append(public, all[i])
		}
	}
	sortRecentFirst(public)
	if guest && len(public) > s.guestLimit {
		public = public[:s.guestLimit]
	}

	out := make([]models.PublicListSummary, len(public))
	for i := range public {
		out[i] = summarize(&public[i])
	}
	s.public.SetIfGeneration(key, out, gen)
	return out, nil
}

// AddReview appends a review to a list and returns its index. A private
// list can only be reviewed by its creator.
func (s *Service) AddReview(ctx context.Context, caller *models.User, listName string, in ReviewInput) (int, error) {
	if in.Rating < MinRating || in.Rating > MaxRating {
		metrics.RecordReviewOperation("add", "invalid")
		return 0, invalid(MsgRatingRange)
	}

	c := authz.CallerFromUser(caller)
	r := models.Review{
		Rating:  in.Rating,
		Comment: in.Comment,
		UserID:  c.UserID,
	}
	if caller != nil {
		r.UserName = caller.DisplayName
	}

	var public bool
	idx, err := s.lists.AppendReview(ctx, listName, r, func(l *models.List) error {
		if d := authz.Decide(c, authz.ListResource(l), authz.ActionReview); !d.Allowed {
			return denied(authz.ActionReview, d)
		}
		public = l.Visibility
		return nil
	})
	if err != nil {
		err = mapStoreError("review", listName, err)
		metrics.RecordReviewOperation("add", resultFor(err))
		return 0, err
	}

	metrics.RecordReviewOperation("add", "ok")
	s.changed(ctx, events.New(events.ReviewAdded, listName, c.UserID).WithReview(idx, nil).WithVisibility(public), public)
	return idx, nil
}

// SetReviewHidden sets or, when hidden is nil, flips the hidden flag of one
// review. Only admins may moderate. It returns the resulting flag.
func (s *Service) SetReviewHidden(ctx context.Context, caller *models.User, listName string, idx int, hidden *bool) (bool, error) {
	c := authz.CallerFromUser(caller)
	if d := authz.Decide(c, authz.SystemResource, authz.ActionModerate); !d.Allowed {
		metrics.RecordReviewOperation("toggle", "forbidden")
		return false, denied(authz.ActionModerate, d)
	}
	if idx < 0 {
		metrics.RecordReviewOperation("toggle", "not_found")
		return false, fmt.Errorf("review %d of %q: %w", idx, listName, ErrReviewNotFound)
	}

	now, err := s.lists.SetReviewHidden(ctx, listName, idx, hidden)
	if err != nil {
		if errors.Is(err, store.ErrIndexOutOfRange) {
			metrics.RecordReviewOperation("toggle", "not_found")
			return false, fmt.Errorf("review %d of %q: %w", idx, listName, ErrReviewNotFound)
		}
		err = mapStoreError("toggle", listName, err)
		metrics.RecordReviewOperation("toggle", resultFor(err))
		return false, err
	}

	metrics.RecordReviewOperation("toggle", "ok")

	// A list that cannot be read back is treated as private so its events
	// stay off the public feed.
	public := false
	if l, err := s.lists.GetList(ctx, listName); err == nil {
		public = l.Visibility
	}
	s.changed(ctx, events.New(events.ReviewVisibility, listName, c.UserID).WithReview(idx, &now).WithVisibility(public), true)
	return now, nil
}

// AllReviews flattens every review of every list, ordered by list name and
// then by index.
func (s *Service) AllReviews(ctx context.Context) ([]models.ReviewEntry, error) {
	all, err := s.lists.AllLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("all reviews: %w", err)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	out := []models.ReviewEntry{}
	for i := range all {
		for idx, r := range all[i].Reviews {
			out = append(out, models.ReviewEntry{
				ListName:    all[i].Name,
				ReviewIndex: idx,
				Rating:      r.Rating,
				Comment:     r.Comment,
				Hidden:      r.Hidden,
				UserID:      r.UserID,
				UserName:    r.UserName,
				CreatedAt:   r.CreatedAt,
			})
		}
	}
	return out, nil
}

// InvalidateOnEvent drops cached public listings. It is registered as an
// events.Handler so changes made on other replicas are picked up.
func (s *Service) InvalidateOnEvent(events.Event) {
	s.public.Clear()
}

// changed drops the public cache when the change was visible to it, then
// publishes ev. Publish failures are logged and never returned.
func (s *Service) changed(ctx context.Context, ev events.Event, touchesPublic bool) {
	if touchesPublic {
		s.public.Clear()
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), ev); err != nil {
		logging.Ctx(ctx).Warn().Err(err).
			Str("event_type", string(ev.Type)).
			Str("list", ev.ListName).
			Msg("failed to publish list event")
	}
}

func (s *Service) checkDestinations(ids []int) ([]int, error) {
	out := dedupe(ids)
	if unknown := s.catalog.Unknown(out); len(unknown) > 0 {
		parts := make([]string, len(unknown))
		for i, id := range unknown {
			parts[i] = strconv.Itoa(id)
		}
		return nil, invalid("Unknown destination IDs: " + strings.Join(parts, ", ") + ".")
	}
	return out, nil
}

func mapStoreError(op, name string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%s %q: %w", op, name, ErrNotFound)
	}
	return fmt.Errorf("%s %q: %w", op, name, err)
}

func resultFor(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrReviewNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrInvalid):
		return "invalid"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}

func validateName(name string) error {
	if name == "" {
		return invalid("List name is required.")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return invalid(fmt.Sprintf("List name must be at most %d characters.", MaxNameLength))
	}
	return nil
}

func validateDescription(desc string) error {
	if utf8.RuneCountInString(desc) > MaxDescriptionLength {
		return invalid(fmt.Sprintf("Description must be at most %d characters.", MaxDescriptionLength))
	}
	return nil
}

func dedupe(ids []int) []int {
	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func sortRecentFirst(ls []models.List) {
	sort.SliceStable(ls, func(i, j int) bool {
		if !ls[i].LastModified.Equal(ls[j].LastModified) {
			return ls[i].LastModified.After(ls[j].LastModified)
		}
		return ls[i].Name < ls[j].Name
	})
}

func summarize(l *models.List) models.PublicListSummary {
	visible := l.VisibleReviews()
	dests := l.Destinations
	if dests == nil {
		dests = []int{}
	}
	return models.PublicListSummary{
		Name:             l.Name,
		Description:      l.Description,
		CreatorName:      l.CreatorName,
		DestinationCount: len(dests),
		Destinations:     dests,
		AverageRating:    models.AverageRating(visible),
		ReviewCount:      len(visible),
		LastModified:     l.LastModified,
		Reviews:          visible,
	}
}
