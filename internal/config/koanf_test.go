// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "k3p9v1x8q2w7e4r6t5y0u1i2o3p4a5s6"

// setRequiredEnv sets the minimum environment for LoadWithKoanf to succeed.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("ENVIRONMENT", "development")
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Database.Path != "/data/foodgram.duckdb" {
		t.Errorf("Database.Path = %q, want /data/foodgram.duckdb", cfg.Database.Path)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.API.DefaultPageSize != 6 {
		t.Errorf("API.DefaultPageSize = %d, want 6", cfg.API.DefaultPageSize)
	}
	if cfg.API.MediaURL != "/media/" {
		t.Errorf("API.MediaURL = %q, want /media/", cfg.API.MediaURL)
	}
	if cfg.Security.TokenTTL != 7*24*time.Hour {
		t.Errorf("Security.TokenTTL = %v, want 168h", cfg.Security.TokenTTL)
	}
	if cfg.Export.DefaultFormat != "pdf" {
		t.Errorf("Export.DefaultFormat = %q, want pdf", cfg.Export.DefaultFormat)
	}
	if cfg.Security.JWTSecret != "" {
		t.Error("JWTSecret must not have a default")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"DUCKDB_PATH", "database.path"},
		{"HTTP_PORT", "server.port"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_reqs"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"EXPORT_DEFAULT_FORMAT", "export.default_format"},
		{"CATALOG_INGREDIENTS_FILE", "catalog.ingredients_file"},
		{"log_level", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("no file", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty", got)
		}
	})

	t.Run("CONFIG_PATH wins", func(t *testing.T) {
		custom := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(custom, []byte("server: {}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv(ConfigPathEnvVar, custom)
		if got := findConfigFile(); got != custom {
			t.Errorf("findConfigFile() = %q, want %q", got, custom)
		}
	})

	t.Run("falls back to config.yaml", func(t *testing.T) {
		if err := os.WriteFile("config.yaml", []byte("server: {}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = os.Remove("config.yaml") })
		t.Setenv(ConfigPathEnvVar, "/non/existent.yaml")
		if got := findConfigFile(); got != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", got)
		}
	})
}

func TestLoadWithKoanf_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://a.example.org, https://b.example.org")
	t.Setenv("TOKEN_TTL", "12h")
	t.Setenv("EXPORT_DEFAULT_FORMAT", "txt")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Security.TokenTTL != 12*time.Hour {
		t.Errorf("Security.TokenTTL = %v, want 12h", cfg.Security.TokenTTL)
	}
	if cfg.Export.DefaultFormat != "txt" {
		t.Errorf("Export.DefaultFormat = %q, want txt", cfg.Export.DefaultFormat)
	}
	want := []string{"https://a.example.org", "https://b.example.org"}
	if strings.Join(cfg.Security.CORSOrigins, "|") != strings.Join(want, "|") {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want default 0.0.0.0", cfg.Server.Host)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	setRequiredEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  path: /tmp/foodgram-test.duckdb
api:
  default_page_size: 10
  max_page_size: 50
catalog:
  ingredients_file: /srv/ingredients.json
security:
  cors_origins:
    - https://foodgram.example.org
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("API_MAX_PAGE_SIZE", "40")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/foodgram-test.duckdb" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.API.DefaultPageSize != 10 {
		t.Errorf("API.DefaultPageSize = %d, want 10", cfg.API.DefaultPageSize)
	}
	if cfg.API.MaxPageSize != 40 {
		t.Errorf("API.MaxPageSize = %d, want 40 (env overrides file)", cfg.API.MaxPageSize)
	}
	if cfg.Catalog.IngredientsFile != "/srv/ingredients.json" {
		t.Errorf("Catalog.IngredientsFile = %q", cfg.Catalog.IngredientsFile)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "https://foodgram.example.org" {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
}

func TestLoadWithKoanf_ValidationError(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "short")

	_, err := LoadWithKoanf()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("error = %v, want mention of JWT_SECRET", err)
	}
}

func TestEnvValue_Lists(t *testing.T) {
	tests := []struct {
		name, value string
		wantKey     string
		wantItems   []string
	}{
		{"CORS_ORIGINS", "https://a.example.org,https://b.example.org", "security.cors_origins", []string{"https://a.example.org", "https://b.example.org"}},
		{"CORS_ORIGINS", " , ", "", nil},
		{"HTTP_PORT", "9000", "server.port", nil},
	}
	for _, tt := range tests {
		key, value := envValue(tt.name, tt.value)
		if key != tt.wantKey {
			t.Errorf("envValue(%q) key = %q, want %q", tt.name, key, tt.wantKey)
			continue
		}
		if tt.wantItems == nil {
			continue
		}
		items, ok := value.([]string)
		if !ok || strings.Join(items, "|") != strings.Join(tt.wantItems, "|") {
			t.Errorf("envValue(%q) value = %#v, want %v", tt.name, value, tt.wantItems)
		}
	}
}
