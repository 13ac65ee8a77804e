// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

/*
Package authz decides what a role may do, using a Casbin RBAC model.

The model and policy are embedded (model.conf, policy.csv). Subjects are
role names from the models package, objects are API resources and actions
are read, write, delete or moderate:

	anonymous  read recipes, tags, ingredients and users; register; log in
	user       inherits anonymous; own account, recipes, favorites, cart,
	           subscriptions and shopping list download
	admin      inherits user; create tags and ingredients; moderate any recipe

Ownership is not a policy concern. CanModify combines the author check with
the "moderate" permission so admins can edit or delete any recipe.

Decisions are cached per (role, object, action) and counted in
foodgram_authz_decisions_total.
*/
package authz
