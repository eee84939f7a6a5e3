// cmd/api/handlers_statuses.go
// @description List statuses.
// @methods GET
package main

import (
	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/tharaday-api/internal/data"
)

// statusesRoutes mounts /statuses.
func (app *applicationDependencies) statusesRoutes(router *httprouter.Router) {
	app.mountEntity(router, "/statuses", data.Statuses)
}
