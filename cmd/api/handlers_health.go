// cmd/api/handlers_health.go
// @description Health check (DB connectivity).
// @methods GET
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *applicationDependencies) healthRoutes(router *httprouter.Router) {
	app.handle(router, http.MethodGet, "/health", app.healthcheckHandler)
}

// healthcheckHandler runs SELECT 1 against the database and reports
// {"ok": true} when it answers.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	store, err := app.getStore()
	if err != nil {
		app.missingDatabaseResponse(w, r)
		return
	}

	ok, err := store.Ping(r.Context())
	if err != nil {
		app.dbErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"ok": ok}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
