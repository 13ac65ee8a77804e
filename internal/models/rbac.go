// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

/*
rbac.go - Role constants

Role Hierarchy:
  - anonymous: unauthenticated visitor, read-only catalog and recipes
  - user: registered account, manages own recipes, favorites, cart and subscriptions
  - admin: catalog management and moderation of any recipe (inherits user)

The Casbin policy in internal/authz/policy.csv uses the same names.
*/

package models

// Role constants.
const (
	RoleAnonymous = "anonymous"
	RoleUser      = "user"
	RoleAdmin     = "admin"
)

// ValidRoles lists the roles an account can hold.
var ValidRoles = []string{RoleUser, RoleAdmin}

// IsValidRole reports whether role can be assigned to an account.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
