// cmd/api/errors.go
// This file contains all error-response helpers for the application.
// Every error body is a JSON object whose "error" key holds either a short
// machine-readable kind (e.g. "db_error") or a human-readable message, with
// an optional "message" key carrying detail.
package main

import (
	"log/slog"
	"net/http"

	"github.com/aoideee/tharaday-api/internal/data"
)

// logError logs an internal error at ERROR level with the request method,
// URL and request id for context.
func (app *applicationDependencies) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
		slog.String("request_id", requestIDFromContext(r.Context())),
	)
}

// errorResponse sends a JSON error envelope with the given status code.
// It is the low-level building block used by all the specific error helpers below.
func (app *applicationDependencies) errorResponse(w http.ResponseWriter, r *http.Request, status int, data envelope) {
	err := app.writeJSON(w, status, data, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// serverErrorResponse logs an unexpected failure (e.g. a recovered panic) and
// sends a generic message to the client.
func (app *applicationDependencies) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, envelope{
		"error":   "internal_error",
		"message": "the server encountered a problem and could not process your request",
	})
}

// dbErrorResponse reports a failed statement. The driver message is passed
// through so clients can see which constraint or column was involved.
func (app *applicationDependencies) dbErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, envelope{
		"error":   "db_error",
		"message": err.Error(),
	})
}

// missingDatabaseResponse is sent by every data route when no database URL
// is configured.
func (app *applicationDependencies) missingDatabaseResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusInternalServerError, envelope{"error": data.ErrMissingDatabaseURL.Error()})
}

// notFoundResponse sends a 404 for paths the router does not know.
func (app *applicationDependencies) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, envelope{"error": "not_found"})
}

// recordNotFoundResponse sends a 404 naming the entity, e.g. "Book not found".
func (app *applicationDependencies) recordNotFoundResponse(w http.ResponseWriter, r *http.Request, e *data.Entity) {
	app.errorResponse(w, r, http.StatusNotFound, envelope{"error": e.Singular + " not found"})
}

// methodNotAllowedResponse sends a 405 Method Not Allowed error.
func (app *applicationDependencies) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, envelope{"error": "method_not_allowed"})
}

// badRequestResponse sends a 400 with the caller's message in the error key.
func (app *applicationDependencies) badRequestResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponse(w, r, http.StatusBadRequest, envelope{"error": message})
}

// invalidForeignKeyResponse reports a reference to a row that does not exist.
func (app *applicationDependencies) invalidForeignKeyResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponse(w, r, http.StatusBadRequest, envelope{
		"error":   "invalid_fkey",
		"message": message,
	})
}

// duplicateResponse sends a 409 Conflict for unique violations.
func (app *applicationDependencies) duplicateResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponse(w, r, http.StatusConflict, envelope{
		"error":   "duplicate",
		"message": message,
	})
}

// bodyTooLargeResponse sends a 413 when the request body exceeds 1 MB.
func (app *applicationDependencies) bodyTooLargeResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusRequestEntityTooLarge, envelope{"error": errBodyTooLarge.Error()})
}

// rateLimitExceededResponse sends a 429 Too Many Requests error.
func (app *applicationDependencies) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusTooManyRequests, envelope{"error": "rate limit exceeded"})
}
