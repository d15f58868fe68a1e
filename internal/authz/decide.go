// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package authz

import "github.com/tomtom215/wayfarer/internal/models"

// Action is something a caller wants to do to a resource.
type Action string

const (
	ActionRead       Action = "read"
	ActionUpdate     Action = "update"
	ActionDelete     Action = "delete"
	ActionReview     Action = "review"
	ActionViewHidden Action = "view_hidden" // see hidden reviews
	ActionModerate   Action = "moderate"    // hide reviews, manage users
)

// ReasonCode explains a Decision.
type ReasonCode string

const (
	ReasonOwner           ReasonCode = "owner"
	ReasonAdmin           ReasonCode = "admin"
	ReasonPublic          ReasonCode = "public"
	ReasonNotOwner        ReasonCode = "not_owner"
	ReasonPrivate         ReasonCode = "private"
	ReasonNotAdmin        ReasonCode = "not_admin"
	ReasonUnauthenticated ReasonCode = "unauthenticated"
)

// Caller is the requesting user. The zero value is a guest.
type Caller struct {
	UserID string
	Admin  bool
}

// CallerFromUser builds a Caller; a nil user is a guest.
func CallerFromUser(u *models.User) Caller {
	if u == nil {
		return Caller{}
	}
	return Caller{UserID: u.ID, Admin: u.Admin}
}

// Authenticated reports whether the caller is signed in.
func (c Caller) Authenticated() bool {
	return c.UserID != ""
}

// Resource is the thing being accessed. OwnerID is empty for system-wide
// resources such as the user directory.
type Resource struct {
	OwnerID string
	Public  bool
}

// ListResource describes a list.
func ListResource(l *models.List) Resource {
	return Resource{OwnerID: l.CreatedBy, Public: l.Visibility}
}

// SystemResource is a resource only admins may moderate.
var SystemResource = Resource{}

// Decision is the outcome of Decide.
type Decision struct {
	Allowed bool
	Reason  ReasonCode
}

func allow(r ReasonCode) Decision { return Decision{Allowed: true, Reason: r} }
func deny(r ReasonCode) Decision  { return Decision{Allowed: false, Reason: r} }

// Decide is the single authorization policy for lists, reviews and admin
// actions.
//
//   - read: the owner, or anyone when the list is public
//   - update, delete: the owner only
//   - review: anyone signed in when public, otherwise the owner only
//   - view_hidden: the owner or an admin
//   - moderate: admins only
func Decide(c Caller, res Resource, a Action) Decision {
	isOwner := c.Authenticated() && res.OwnerID != "" && c.UserID == res.OwnerID

	switch a {
	case ActionRead:
		switch {
		case isOwner:
			return allow(ReasonOwner)
		case res.Public:
			return allow(ReasonPublic)
		case !c.Authenticated():
			return deny(ReasonUnauthenticated)
		default:
			return deny(ReasonPrivate)
		}

	case ActionUpdate, ActionDelete:
		switch {
		case !c.Authenticated():
			return deny(ReasonUnauthenticated)
		case isOwner:
			return allow(ReasonOwner)
		default:
			return deny(ReasonNotOwner)
		}

	case ActionReview:
		switch {
		case !c.Authenticated():
			return deny(ReasonUnauthenticated)
		case isOwner:
			return allow(ReasonOwner)
		case res.Public:
			return allow(ReasonPublic)
		default:
			return deny(ReasonPrivate)
		}

	case ActionViewHidden:
		switch {
		case !c.Authenticated():
			return deny(ReasonUnauthenticated)
		case isOwner:
			return allow(ReasonOwner)
		case c.Admin:
			return allow(ReasonAdmin)
		default:
			return deny(ReasonNotOwner)
		}

	case ActionModerate:
		switch {
		case !c.Authenticated():
			return deny(ReasonUnauthenticated)
		case c.Admin:
			return allow(ReasonAdmin)
		default:
			return deny(ReasonNotAdmin)
		}
	}

	return deny(ReasonNotOwner)
}
