// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

// Package main is the entry point for the Foodgram server.
//
// Foodgram is a recipe sharing service: users publish recipes, follow
// authors, keep favorites and fill a shopping cart whose ingredients are
// aggregated into a downloadable shopping list.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, optional config.yaml and environment (Koanf v2)
//  2. Database: DuckDB schema migrations, catalog seeding and admin bootstrap
//  3. Authentication: JWT issuer, BadgerDB revocation store and login throttle
//  4. Authorization: Casbin RBAC policy
//  5. Activity bus: Watermill in-process pub/sub
//  6. HTTP Server: chi router with the REST API, media files and /metrics
//
// Long-running parts run under a suture supervisor tree: the activity bus in
// the messaging layer, the HTTP server and the periodic janitor in the api
// layer.
//
// # Configuration
//
// For a first admin account set ADMIN_EMAIL, ADMIN_USERNAME and
// ADMIN_PASSWORD. JWT_SECRET must hold 32 or more characters.
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The HTTP server drains
// in-flight requests, the bus flushes its handlers and the database is
// checkpointed and closed.
//
// # Example Usage
//
//	export JWT_SECRET=$(openssl rand -base64 48)
//	export ADMIN_EMAIL=chef@example.com
//	export ADMIN_USERNAME=chef
//	export ADMIN_PASSWORD='Saffron-Rice-77'
//	export CATALOG_INGREDIENTS_FILE=/data/ingredients.json
//	./foodgram
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/foodgram/internal/api"
	"github.com/tomtom215/foodgram/internal/auth"
	"github.com/tomtom215/foodgram/internal/authz"
	"github.com/tomtom215/foodgram/internal/config"
	"github.com/tomtom215/foodgram/internal/database"
	"github.com/tomtom215/foodgram/internal/events"
	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/media"
	"github.com/tomtom215/foodgram/internal/metrics"
	"github.com/tomtom215/foodgram/internal/models"
	"github.com/tomtom215/foodgram/internal/shopping"
	"github.com/tomtom215/foodgram/internal/supervisor"
	"github.com/tomtom215/foodgram/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	shutdownTimeout = 10 * time.Second
	janitorInterval = 15 * time.Minute
)

//nolint:gocyclo // sequential startup
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	metrics.SetBuildInfo(version)
	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Str("environment", cfg.Server.Environment).
		Str("export_format", cfg.Export.DefaultFormat).
		Msg("Starting Foodgram")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := bootstrap(ctx, cfg, db); err != nil {
		// Fatal skips deferred calls.
		if closeErr := db.Close(); closeErr != nil {
			logging.Error().Err(closeErr).Msg("Error closing database")
		}
		logging.Fatal().Err(err).Msg("Failed to bootstrap database")
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}

	revocations, err := auth.OpenRevocationStore(cfg.Security.TokenStorePath)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Security.TokenStorePath).Msg("Failed to open token revocation store")
	}
	defer func() {
		if err := revocations.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing token revocation store")
		}
	}()
	if cfg.Security.TokenStorePath == "" && !cfg.IsDevelopment() {
		logging.Warn().Msg("TOKEN_STORE_PATH is empty: logged-out tokens become valid again after a restart")
	}

	throttle := auth.NewLoginThrottle(cfg.Security.LoginAttempts, cfg.Security.LoginWindow)
	authService := auth.NewService(db, jwtManager, revocations, throttle)

	enforcerCfg := authz.DefaultEnforcerConfig()
	enforcerCfg.PolicyPath = cfg.Security.PolicyPath
	enforcer, err := authz.NewEnforcer(enforcerCfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize RBAC enforcer")
	}
	defer enforcer.Close()

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); set explicit origins in production")
	}

	bus, err := events.NewBus(events.DefaultBusConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create activity bus")
	}
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing activity bus")
		}
	}()

	exporter, err := shopping.NewExporter(shopping.NewAggregator(db), cfg.Export.DefaultFormat, cfg.Export.FontPath)
	if err != nil {
		logging.Fatal().Err(err).Str("font_path", cfg.Export.FontPath).Msg("Failed to initialize shopping list exporter")
	}

	handler := api.NewHandler(api.HandlerDeps{
		Store:    db,
		Auth:     authService,
		Enforcer: enforcer,
		Media:    media.NewStore(&cfg.API),
		Exporter: exporter,
		Events:   bus,
		Config:   cfg,
	})
	router := api.NewRouter(handler, api.NewChiMiddleware(api.NewChiMiddlewareConfig(&cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMessagingService(services.NewRunnerService("activity-bus", bus))
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))
	tree.AddAPIService(services.NewPeriodicService("janitor", janitorInterval,
		services.Task{
			Name: "login-throttle-cleanup",
			Run: func(context.Context) error {
				if removed := throttle.Cleanup(); removed > 0 {
					logging.Debug().Int("removed", removed).Msg("Dropped idle login throttle buckets")
				}
				return nil
			},
		},
		services.Task{Name: "database-checkpoint", Run: db.Checkpoint},
	))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
		cancel()
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("supervised", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Foodgram stopped")
}

// bootstrap seeds the catalog files and ensures the admin account.
func bootstrap(ctx context.Context, cfg *config.Config, db *database.DB) error {
	if err := db.SeedCatalog(ctx, cfg.Catalog.IngredientsFile, cfg.Catalog.TagsFile); err != nil {
		return err
	}

	if !cfg.HasAdminBootstrap() {
		logging.Info().Msg("No admin bootstrap configured (ADMIN_EMAIL/ADMIN_PASSWORD unset)")
		return nil
	}
	hash, err := auth.HashPassword(cfg.Security.AdminPassword)
	if err != nil {
		return err
	}
	created, err := db.EnsureAdmin(ctx, &models.NewUser{
		Email:        cfg.Security.AdminEmail,
		Username:     cfg.Security.AdminUsername,
		FirstName:    "Site",
		LastName:     "Administrator",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return err
	}
	if created {
		logging.Info().Str("email", cfg.Security.AdminEmail).Msg("Admin account created")
	}
	return nil
}
