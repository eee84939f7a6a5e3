// cmd/api/handlers_authors.go
// @description Authors CRUD.
// @methods GET, POST, PATCH, DELETE
package main

import (
	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/tharaday-api/internal/data"
)

// authorsRoutes mounts /authors.
func (app *applicationDependencies) authorsRoutes(router *httprouter.Router) {
	app.mountEntity(router, "/authors", data.Authors)
}
