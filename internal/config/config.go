// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

// Package config loads Foodgram configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values from defaultConfig
//  2. Config File: optional YAML file (config.yaml or CONFIG_PATH)
//  3. Environment Variables: override any mapped setting
//
// Config is immutable after Load and safe for concurrent reads.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Export   ExportConfig   `koanf:"export"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = runtime.NumCPU
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// APIConfig holds pagination and media settings
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`

	// MediaURL is the public URL prefix recipe images are served under.
	MediaURL string `koanf:"media_url"`
	// MediaDir is where uploaded recipe images are written.
	MediaDir string `koanf:"media_dir"`
	// MaxImageBytes caps the decoded size of an uploaded recipe image.
	MaxImageBytes int64 `koanf:"max_image_bytes"`
}

// SecurityConfig holds authentication, authorization and abuse protection settings.
type SecurityConfig struct {
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`

	// TokenStorePath is the BadgerDB directory for revoked tokens.
	// Empty keeps revocations in memory only.
	TokenStorePath string `koanf:"token_store_path"`

	// PolicyPath overrides the embedded Casbin RBAC policy with a CSV file.
	PolicyPath string `koanf:"policy_path"`

	// Admin bootstrap account, created at startup when email and password are set.
	AdminEmail    string `koanf:"admin_email"`
	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`

	// LoginAttempts login attempts per e-mail are allowed every LoginWindow.
	LoginAttempts int           `koanf:"login_attempts"`
	LoginWindow   time.Duration `koanf:"login_window"`
}

// ExportConfig controls shopping list downloads.
type ExportConfig struct {
	// DefaultFormat is used when the request does not ask for one: pdf or txt.
	DefaultFormat string `koanf:"default_format"`
	// FontPath is an optional UTF-8 TTF font for PDF output. Without it the
	// core Helvetica font is used with cp1252 translation.
	FontPath string `koanf:"font_path"`
}

// CatalogConfig points at JSON files seeded into the catalog at startup.
type CatalogConfig struct {
	IngredientsFile string `koanf:"ingredients_file"`
	TagsFile        string `koanf:"tags_file"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// HasAdminBootstrap reports whether an admin account should be ensured at startup.
func (c *Config) HasAdminBootstrap() bool {
	return c.Security.AdminEmail != "" && c.Security.AdminPassword != ""
}

// Load reads configuration using layered Koanf loading and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
