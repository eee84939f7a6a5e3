// cmd/api/handlers_publishers.go
// @description Publishers CRUD.
// @methods GET, POST, PATCH, DELETE
package main

import (
	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/tharaday-api/internal/data"
)

// publishersRoutes mounts /publishers.
func (app *applicationDependencies) publishersRoutes(router *httprouter.Router) {
	app.mountEntity(router, "/publishers", data.Publishers)
}
