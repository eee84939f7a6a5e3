// cmd/api/handlers_routes.go
// @description Route directory as JSON. The HTML version is served at /.
// @methods GET
package main

import (
	"bytes"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/tharaday-api/internal/directory"
)

func (app *applicationDependencies) directoryRoutes(router *httprouter.Router) {
	app.handle(router, http.MethodGet, "/routes", app.listRoutesHandler)
	app.handle(router, http.MethodGet, "/", app.indexHandler)
}

// listRoutesHandler serves the listing generated by cmd/routegen.
func (app *applicationDependencies) listRoutesHandler(w http.ResponseWriter, r *http.Request) {
	listing, err := directory.Embedded()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, listing, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// indexHandler renders the same listing as an HTML page.
func (app *applicationDependencies) indexHandler(w http.ResponseWriter, r *http.Request) {
	listing, err := directory.Embedded()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// Render into a buffer first so a template error can still become a 500.
	var buf bytes.Buffer
	if err := directory.RenderHTML(&buf, listing.Routes); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
