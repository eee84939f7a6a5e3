// cmd/api/server.go
// This file contains serve(), which runs the HTTP server until SIGINT or
// SIGTERM and then drains in-flight requests.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// newServer builds the http.Server from the server configuration. Errors
// from net/http itself go through the application logger.
func (app *applicationDependencies) newServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.Port),
		Handler:      app.routes(),
		IdleTimeout:  app.config.Server.IdleTimeout,
		ReadTimeout:  app.config.Server.ReadTimeout,
		WriteTimeout: app.config.Server.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}
}

// serve starts the server and blocks until it has shut down. A signal gives
// in-flight requests the configured shutdown timeout to finish.
func (app *applicationDependencies) serve() error {
	apiServer := app.newServer()

	shutdownErr := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		s := <-quit
		app.logger.Info("shutting down server",
			"signal", s.String(),
			"timeout", app.config.Server.ShutdownTimeout)

		ctx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
		defer cancel()

		shutdownErr <- apiServer.Shutdown(ctx)
	}()

	app.logger.Info("starting tharaday api",
		"version", appVersion,
		"address", apiServer.Addr,
		"environment", app.config.Env,
		"database", app.store != nil,
		"rate_limit", app.config.Limiter.Enabled,
		"cors_origins", len(app.config.CORS.AllowedOrigins))

	err := apiServer.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	app.logger.Info("server stopped", "address", apiServer.Addr)
	return nil
}
