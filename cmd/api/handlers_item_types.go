// cmd/api/handlers_item_types.go
package main

import (
	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/tharaday-api/internal/data"
)

func (app *applicationDependencies) itemTypesRoutes(router *httprouter.Router) {
	app.mountEntity(router, "/item-types", data.ItemTypes)
}
