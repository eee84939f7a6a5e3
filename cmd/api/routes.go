// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router
// wrapped in the middleware chain.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → requestID → enableCORS → rateLimit → router
//
// enableCORS answers every OPTIONS request itself, so preflights are never
// rate limited and never touch the database. Each handlers_<name>.go file
// mounts one path and carries the annotations read by cmd/routegen.
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	app.authorsRoutes(router)
	app.booksRoutes(router)
	app.itemsRoutes(router)
	app.publishersRoutes(router)
	app.usersRoutes(router)

	app.tagsRoutes(router)
	app.statusesRoutes(router)
	app.prioritiesRoutes(router)
	app.rolesRoutes(router)
	app.itemTypesRoutes(router)

	app.healthRoutes(router)
	app.directoryRoutes(router)
	app.metricsRoutes(router)

	return app.recoverPanic(app.requestID(app.enableCORS(app.rateLimit(router))))
}
