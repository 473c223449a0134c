package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dmuriuki/taskforge-api/internal/config"
	"github.com/dmuriuki/taskforge-api/internal/platform/postgres"
	taskcache "github.com/dmuriuki/taskforge-api/internal/platform/redis"
	"github.com/dmuriuki/taskforge-api/internal/service"
	"github.com/dmuriuki/taskforge-api/internal/service/auth"
	"github.com/dmuriuki/taskforge-api/internal/store"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB
	cache  redis.UniversalClient

	// Stores (using interfaces for proper abstraction)
	taskStore store.TaskStore
	userStore store.UserStore
	pageCache store.TaskPageCache

	// Service interfaces
	taskService        service.TaskService
	credentialVerifier auth.CredentialVerifier
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger,
// database and cache connections that must be established before
// application initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	cache redis.UniversalClient,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		cache:  cache,
	}

	// Initialize stores
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.userStore = postgres.NewPostgresUserStore(db, bcrypt.DefaultCost, logger)

	// Response cache is optional; without Redis the task service runs uncached
	if cache != nil {
		app.pageCache = taskcache.NewTaskPageCache(cache, cfg.Redis.CacheTTL, logger)
	}

	// Initialize credential verifier for basic auth on write endpoints
	verifier, err := auth.NewVerifier(app.userStore, auth.NewBcryptVerifier(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create credential verifier: %w", err)
	}
	app.credentialVerifier = verifier

	// Initialize task service
	app.taskService, err = service.NewTaskService(app.taskStore, app.pageCache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	// Provision the optional bootstrap user for basic auth
	if err := app.seedUser(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed user: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("Error closing Redis connection", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
