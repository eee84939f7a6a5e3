// cmd/api/handlers_items.go
// @description Items CRUD.
// @methods GET, POST, PATCH, DELETE
package main

import (
	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/tharaday-api/internal/data"
)

func (app *applicationDependencies) itemsRoutes(router *httprouter.Router) {
	app.mountEntity(router, "/items", data.Items)
}
