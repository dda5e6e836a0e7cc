// Package cli provides common initialization and rendering utilities
// for cmd/fintrack.
package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"fintrack/internal/api"
	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/notify"
	"fintrack/internal/query"
	"fintrack/internal/services"
	"fintrack/internal/session"
	"fintrack/internal/storage"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitStore opens the local SQLite store at the given path.
// Returns the store or exits the process on failure.
func InitStore(logger *log.Logger, dbPath string) *storage.Store {
	store, err := storage.Open(dbPath)
	if err != nil {
		logger.Error("Failed to open local store", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return store
}

// OpenSession loads any persisted session from the store.
// Returns the session or exits the process on failure.
func OpenSession(ctx context.Context, logger *log.Logger, store *storage.Store) *session.Session {
	sess, err := session.Open(ctx, store)
	if err != nil {
		logger.Error("Failed to open session", "error", err)
		os.Exit(1)
	}
	return sess
}

// App bundles everything a command needs once initialization is done.
type App struct {
	Config   *config.Config
	Logger   *log.Logger
	Store    *storage.Store
	Session  *session.Session
	Client   *api.Client
	Cache    *query.Cache
	Queries  *services.Queries
	Mutator  *services.Mutator
	Notifier notify.Notifier
}

// Bootstrap wires the full client stack: env file, config, logger,
// store, session, API client, cache, and services.
func Bootstrap(ctx context.Context) *App {
	LoadEnvFile()

	cfg := config.Load()
	logger := log.New(log.ParseLevel(cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	store := InitStore(logger, cfg.SessionDBPath())
	sess := OpenSession(ctx, logger, store)

	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, sess)
	cache := query.New()
	notifier := notify.NewLog(logger.WithComponent("notify").Logger)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Session:  sess,
		Client:   client,
		Cache:    cache,
		Queries:  services.NewQueries(client, cache),
		Mutator:  services.NewMutator(client, cache, notifier),
		Notifier: notifier,
	}
}

// Close releases the app's resources.
func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		a.Logger.Warn("Failed to close local store", "error", err)
	}
}
