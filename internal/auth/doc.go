// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

/*
Package auth implements token authentication for the Foodgram API.

Login exchanges an e-mail and password for a signed HS256 JWT. Clients send it
back as either header form:

	Authorization: Token <jwt>
	Authorization: Bearer <jwt>

Components:

  - JWTManager: issues and validates tokens (golang-jwt/jwt v5). Every token
    carries a random jti so it can be revoked individually.
  - RevocationStore: remembers revoked jti values until the token would have
    expired anyway. Backed by BadgerDB TTL entries; an empty path keeps the
    store in memory.
  - LoginThrottle: per e-mail token bucket (golang.org/x/time/rate) that slows
    down password guessing.
  - PasswordPolicy / HashPassword / CheckPassword: bcrypt hashing and the
    registration password rules.
  - Service: login and logout flows over a CredentialStore.
  - Middleware: Authenticate rejects requests without a valid token,
    Optional treats a missing or invalid token as an anonymous viewer.

The authenticated Subject is stored in the request context; handlers read it
with SubjectFromContext.
*/
package auth
