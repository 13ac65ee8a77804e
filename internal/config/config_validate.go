// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package config

import (
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"time"
)

const (
	minSecretLength      = 32
	maxRateLimitRequests = 100000
)

var (
	exportFormats = []string{"pdf", "txt"}
	logLevels     = []string{"trace", "debug", "info", "warn", "warning", "error"}
	logFormats    = []string{"json", "console"}

	// placeholders are values copied from examples and never replaced.
	placeholders = []string{"REPLACE", "CHANGEME", "CHANGE_ME", "YOUR_SECRET", "YOUR_PASSWORD", "PLACEHOLDER", "EXAMPLE"}
)

// problems collects every configuration error so a single start attempt
// reports all of them.
type problems []error

func (p *problems) check(ok bool, format string, args ...any) {
	if !ok {
		*p = append(*p, fmt.Errorf(format, args...))
	}
}

// Validate returns all configuration problems joined, or nil.
func (c *Config) Validate() error {
	var p problems

	p.check(c.Database.Path != "", "DUCKDB_PATH is required")
	p.check(c.Database.Threads >= 0, "DUCKDB_THREADS must not be negative")

	p.check(c.Server.Port >= 1 && c.Server.Port <= 65535, "HTTP_PORT must be between 1 and 65535")
	p.check(c.Server.Timeout > 0, "HTTP_TIMEOUT must be positive")

	p.check(c.API.DefaultPageSize >= 1, "API_DEFAULT_PAGE_SIZE must be at least 1")
	p.check(c.API.MaxPageSize >= c.API.DefaultPageSize, "API_MAX_PAGE_SIZE must be >= API_DEFAULT_PAGE_SIZE")
	p.check(c.API.MediaDir != "", "MEDIA_DIR is required")
	p.check(strings.HasPrefix(c.API.MediaURL, "/") && strings.HasSuffix(c.API.MediaURL, "/"),
		"MEDIA_URL must start and end with '/'")
	p.check(c.API.MaxImageBytes >= 1, "MAX_IMAGE_BYTES must be positive")

	c.validateSecurity(&p)

	p.check(slices.Contains(exportFormats, c.Export.DefaultFormat),
		"EXPORT_DEFAULT_FORMAT must be one of: %s", strings.Join(exportFormats, ", "))
	p.check(slices.Contains(logLevels, c.Logging.Level),
		"LOG_LEVEL must be one of: %s", strings.Join(logLevels, ", "))
	p.check(c.Logging.Format == "" || slices.Contains(logFormats, c.Logging.Format),
		"LOG_FORMAT must be one of: %s", strings.Join(logFormats, ", "))

	return errors.Join(p...)
}

func (c *Config) validateSecurity(p *problems) {
	s := &c.Security

	switch {
	case s.JWTSecret == "":
		p.check(false, "JWT_SECRET is required")
	case len(s.JWTSecret) < minSecretLength:
		p.check(false, "JWT_SECRET must be at least %d characters", minSecretLength)
	case containsPlaceholder(s.JWTSecret):
		p.check(false, "JWT_SECRET contains a placeholder value; generate one with: openssl rand -base64 32")
	}
	p.check(s.TokenTTL >= time.Minute, "TOKEN_TTL must be at least 1m")

	// Browsers send tokens cross-origin, so production needs explicit origins.
	p.check(!(c.IsProduction() && c.hasWildcardCORS()),
		"CORS_ORIGINS=* is not allowed in production; list the frontend origins or set ENVIRONMENT=development")

	if !s.RateLimitDisabled {
		p.check(s.RateLimitReqs >= 1 && s.RateLimitReqs <= maxRateLimitRequests,
			"RATE_LIMIT_REQUESTS must be between 1 and %d", maxRateLimitRequests)
		p.check(s.RateLimitWindow >= time.Second && s.RateLimitWindow <= time.Hour,
			"RATE_LIMIT_WINDOW must be between 1s and 1h")
	}

	p.check(s.LoginAttempts >= 1, "LOGIN_ATTEMPTS must be at least 1")
	p.check(s.LoginWindow >= time.Second, "LOGIN_WINDOW must be at least 1s")

	if s.AdminEmail == "" && s.AdminPassword == "" {
		return
	}
	if s.AdminEmail == "" || s.AdminPassword == "" {
		p.check(false, "ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
		return
	}
	if _, err := mail.ParseAddress(s.AdminEmail); err != nil {
		p.check(false, "ADMIN_EMAIL is not a valid address: %w", err)
	}
	p.check(s.AdminUsername != "", "ADMIN_USERNAME is required when ADMIN_EMAIL is set")
	p.check(!c.IsProduction() || !containsPlaceholder(s.AdminPassword), "ADMIN_PASSWORD contains a placeholder value")
}

func (c *Config) hasWildcardCORS() bool {
	return slices.Contains(c.Security.CORSOrigins, "*")
}

// ShouldWarnAboutCORS reports whether any origin is allowed.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS()
}

// IsProduction reports whether ENVIRONMENT is production or prod.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Server.Environment) {
	case "production", "prod":
		return true
	}
	return false
}

// IsDevelopment also holds when ENVIRONMENT is unset.
func (c *Config) IsDevelopment() bool {
	switch strings.ToLower(c.Server.Environment) {
	case "", "development", "dev":
		return true
	}
	return false
}

func containsPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	return slices.ContainsFunc(placeholders, func(p string) bool {
		return strings.Contains(upper, p)
	})
}
