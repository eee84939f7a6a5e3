// cmd/api/resource.go
// This file contains the generic CRUD handlers shared by every entity route.
// Each handler is built from a *data.Entity descriptor so the per-route files
// only decide which descriptor is mounted at which path.
package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/tharaday-api/internal/data"
)

// getStore returns the data store, or ErrMissingDatabaseURL when the server
// was started without a database.
func (app *applicationDependencies) getStore() (data.Store, error) {
	if app.store == nil {
		return nil, data.ErrMissingDatabaseURL
	}
	return app.store, nil
}

// handle registers h for method and path, wrapped with request metrics.
func (app *applicationDependencies) handle(router *httprouter.Router, method, path string, h http.HandlerFunc) {
	router.Handle(method, path, app.instrument(path, h))
}

// mountEntity registers the list route for e, plus create, update and delete
// when e has writable fields. Lookup tables only get GET; other methods fall
// through to the router's 405 handler.
func (app *applicationDependencies) mountEntity(router *httprouter.Router, path string, e *data.Entity) {
	app.handle(router, http.MethodGet, path, app.listHandler(e))
	if !e.Writable() {
		return
	}
	app.handle(router, http.MethodPost, path, app.createHandler(e))
	app.handle(router, http.MethodPatch, path, app.updateHandler(e))
	app.handle(router, http.MethodDelete, path, app.deleteHandler(e))
}

// listHandler responds with every row of e as a JSON array.
func (app *applicationDependencies) listHandler(e *data.Entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := app.getStore()
		if err != nil {
			app.handleDataError(w, r, e, err)
			return
		}

		records, err := store.List(r.Context(), e)
		if err != nil {
			app.handleDataError(w, r, e, err)
			return
		}

		err = app.writeJSON(w, http.StatusOK, records, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
	}
}

// createHandler validates the body against every field of e, inserts one
// row, and responds 201 with the stored row.
func (app *applicationDependencies) createHandler(e *data.Entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := app.getStore()
		if err != nil {
			app.handleDataError(w, r, e, err)
			return
		}

		input, err := app.readBody(w, r)
		if err != nil {
			app.handleDataError(w, r, e, err)
			return
		}

		changes, err := e.ValidateCreate(input)
		if err != nil {
			app.handleDataError(w, r, e, err)
			return
		}

		record, err := store.Insert(r.Context(), e, changes)
		if err != nil {
			app.handleDataError(w, r, e, err)
			return
		}

		err = app.writeJSON(w, http.StatusCreated, record, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
	}
}

// updateHandler applies the fields present in the body to the row whose id
// is given in the body. Absent fields are left untouched.
func (app *applicationDependencies) updateHandler(e *data.Entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := app.getStore()
		if err != nil {
			app.handleDataError(w, r, e, err)
			return
		}

		input, err := app.readBody(w, r)
		if err != nil {
			app.handleDataError(w, r, e, err)
			return
		}

		id, changes, err := e.ValidatePatch(input)
		if err != nil {
			app.handleDataError(w, r, e, err)
			return
		}

		record, err := store.Update(r.Context(), e, id, changes)
		if err != nil {
			app.handleDataError(w, r, e, err)
			return
		}

		err = app.writeJSON(w, http.StatusOK, record, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
	}
}

// deleteHandler removes the row named by the "id" query parameter. Deleting
// a row that does not exist still answers 204.
func (app *applicationDependencies) deleteHandler(e *data.Entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := app.getStore()
		if err != nil {
			app.handleDataError(w, r, e, err)
			return
		}

		// Query().Get returns the first value when id is repeated.
		id, err := data.ParseID(r.URL.Query().Get("id"))
		if err != nil {
			app.handleDataError(w, r, e, err)
			return
		}

		err = store.Delete(r.Context(), e, id)
		if err != nil {
			app.handleDataError(w, r, e, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// handleDataError maps errors from the body reader, the validators and the
// store onto HTTP responses.
func (app *applicationDependencies) handleDataError(w http.ResponseWriter, r *http.Request, e *data.Entity, err error) {
	var (
		validationErr *data.ValidationError
		constraintErr *data.ConstraintError
	)

	switch {
	case errors.Is(err, data.ErrMissingDatabaseURL):
		app.missingDatabaseResponse(w, r)
	case errors.Is(err, errBodyTooLarge):
		app.bodyTooLargeResponse(w, r)
	case errors.As(err, &validationErr):
		app.badRequestResponse(w, r, validationErr.Error())
	case errors.Is(err, data.ErrIDRequired), errors.Is(err, data.ErrInvalidID):
		app.badRequestResponse(w, r, err.Error())
	case errors.Is(err, data.ErrNoFields):
		app.badRequestResponse(w, r, "No fields to update")
	case errors.Is(err, data.ErrRecordNotFound):
		app.recordNotFoundResponse(w, r, e)
	case errors.As(err, &constraintErr) && errors.Is(err, data.ErrInvalidForeignKey):
		app.invalidForeignKeyResponse(w, r, constraintErr.Message)
	case errors.As(err, &constraintErr) && errors.Is(err, data.ErrDuplicate):
		app.duplicateResponse(w, r, constraintErr.Message)
	default:
		app.dbErrorResponse(w, r, err)
	}
}
