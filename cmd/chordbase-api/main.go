// Package main is the entry point for the chordbase-api server.
// Note: Authentication, sessions, and passwords are handled by the
// external auth provider; billing is handled by Stripe. Profiles,
// usage limits, and the chord catalog live here.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/chordbase/chordbase-api/internal/auth"
	"github.com/chordbase/chordbase-api/internal/config"
	"github.com/chordbase/chordbase-api/internal/database"
	"github.com/chordbase/chordbase-api/internal/http/handlers"
	"github.com/chordbase/chordbase-api/internal/http/mw"
	"github.com/chordbase/chordbase-api/internal/http/routes"
	"github.com/chordbase/chordbase-api/internal/logging"
	"github.com/chordbase/chordbase-api/internal/repository"
	"github.com/chordbase/chordbase-api/internal/service"
	"github.com/chordbase/chordbase-api/internal/version"
)

func main() {
	// Initialize logger with TTY detection, source paths, and format control
	logger := logging.SetDefault()

	v := version.Get()
	logger.Info("starting chordbase-api",
		"version", v.Version,
		"commit", v.Commit,
		"built", v.Date,
		"go_version", v.GoVersion,
	)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := database.MigrateWithLogger(db, logger); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	schemaVersion, err := database.GetLatestSchemaVersion(db)
	if err != nil {
		logger.Warn("failed to get schema version", "error", err)
	} else if schemaVersion != "" {
		migrationCount, _ := database.GetMigrationCount(db)
		logger.Info("database schema ready", "schema_version", schemaVersion, "migrations_applied", migrationCount)
	}

	repos := repository.NewRepositories(db)

	services, err := service.NewServices(cfg, repos, logger)
	if err != nil {
		logger.Error("failed to initialize services", "error", err)
		os.Exit(1)
	}

	// Token verifier for protected routes
	var verifier *auth.Verifier
	if cfg.AuthEnabled() {
		verifier, err = auth.NewVerifier(cfg.JWTSecret)
		if err != nil {
			logger.Error("failed to create token verifier", "error", err)
			os.Exit(1)
		}
		logger.Info("bearer authentication enabled")
	} else {
		logger.Warn("JWT_SECRET not set - protected routes will reject all requests")
	}

	// Create router
	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Request size limit (1MB) - prevent large payload attacks
	router.Use(middleware.RequestSize(1 * 1024 * 1024))

	// Global rate limit by IP
	router.Use(httprate.LimitByIP(100, time.Minute))

	// Huma API config with OpenAPI docs and bearer security scheme
	humaConfig := huma.DefaultConfig("Chordbase API", v.Version)
	humaConfig.Info.Description = "Guitar learning backend: chord catalog with fretboard diagrams, user profiles, and per-tier usage limits."
	humaConfig.Servers = []*huma.Server{
		{URL: cfg.BaseURL, Description: "API Server"},
	}
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		mw.SecurityScheme: {
			Type:        "http",
			Scheme:      "bearer",
			Description: "Auth-provider access token. Include it in the Authorization header as `Bearer <token>`.",
		},
	}

	api := humachi.New(router, humaConfig)
	if verifier != nil {
		api.UseMiddleware(mw.HumaAuth(api, verifier))
	} else {
		api.UseMiddleware(rejectProtected(api))
	}

	routes.Register(api, &routes.Handlers{
		Chord:   handlers.NewChordHandler(services.Chord, logger),
		Limits:  handlers.NewLimitsHandler(services.Profile, logger),
		Profile: handlers.NewProfileHandler(services.Profile, logger),
		DB:      db,
	})

	// Webhooks verify their own signatures, so they bypass bearer auth.
	if cfg.StripeWebhookSecret != "" {
		stripeWebhook := handlers.NewStripeWebhookHandler(cfg, services.Profile, logger)
		router.Post("/api/v1/webhooks/stripe", stripeWebhook.HandleWebhook)
		logger.Info("stripe webhook endpoint enabled")
	}
	if cfg.AuthWebhookSecret != "" {
		authWebhook := handlers.NewAuthWebhookHandler(cfg, services.Profile, logger)
		router.Post("/api/v1/webhooks/auth", authWebhook.HandleWebhook)
		logger.Info("auth webhook endpoint enabled")
	}

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
		<-sigChan

		logger.Info("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("starting server", "port", cfg.Port, "base_url", cfg.BaseURL)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// rejectProtected denies protected operations when no verifier is
// configured, instead of letting them through unauthenticated.
func rejectProtected(api huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		op := ctx.Operation()
		if op != nil {
			for _, secReq := range op.Security {
				if _, ok := secReq[mw.SecurityScheme]; ok {
					huma.WriteErr(api, ctx, http.StatusUnauthorized, "authentication is not configured")
					return
				}
			}
		}
		next(ctx)
	}
}
