// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package authz holds Wayfarer's authorization rules.

Two layers apply:

  - Route gates. A Casbin RBAC enforcer with an embedded model and policy
    decides whether a role ("user" or "admin") may call a route family
    (/api/secure/*, /api/admin/*). Decisions are cached per role, path and
    action.
  - Resource rules. Decide answers whether a caller may read, change,
    review or moderate a particular list, and why.

Example:

	d := authz.Decide(caller, authz.ListResource(list), authz.ActionUpdate)
	if !d.Allowed {
	    // d.Reason is not_owner, private, not_admin or unauthenticated
	}

The model and policy can be replaced with files through CASBIN_MODEL_PATH and
CASBIN_POLICY_PATH.
*/
package authz
