// Package main is the entry point for the Tharaday API server.
// It wires together configuration, the database connection, and the HTTP router.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/aoideee/tharaday-api/internal/config"
	"github.com/aoideee/tharaday-api/internal/data"
)

// appVersion is the current version of the API, shown in logs.
const appVersion = "1.0.0"

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config *config.Config // Layered configuration (defaults, file, env, flags)
	logger *slog.Logger   // Structured logger that writes to stdout
	store  data.Store     // Nil when no database URL is configured
}

// main is the application entry point.
// It loads configuration, opens the database pool, wires up dependencies, and
// starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Command-line flags override whatever the file and environment supplied.
	flag.IntVar(&cfg.Port, "port", cfg.Port, "Server port")
	flag.StringVar(&cfg.Env, "env", cfg.Env, "Environment(development|staging|production)")
	flag.StringVar(&cfg.DB.DSN, "db-dsn", cfg.DB.DSN, "PostgreSQL DSN")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)

	app := &applicationDependencies{
		config: cfg,
		logger: logger,
	}

	db, err := data.Open(data.DBConfig{
		DSN:          cfg.DB.DSN,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxIdleTime:  cfg.DB.MaxIdleTime,
	})
	switch {
	case errors.Is(err, data.ErrMissingDatabaseURL):
		// Keep serving: data routes answer with missing_database_url.
		logger.Warn("no database configured; data routes will fail", "env_var", "DATABASE_URL")
	case err != nil:
		logger.Error(err.Error())
		os.Exit(1)
	default:
		defer db.Close()

		// A failed ping is not fatal; /health reports reachability.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(ctx); err != nil {
			logger.Warn("database not reachable at startup", "error", err)
		} else {
			logger.Info("database connection pool established")
		}
		cancel()

		app.store = data.NewModels(db)
	}

	if err := app.serve(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// newLogger builds the slog logger selected by the log configuration.
func newLogger(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
