// cmd/api/handlers_priorities.go
// @description List active priorities.
// @methods GET
package main

import (
	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/tharaday-api/internal/data"
)

// prioritiesRoutes mounts /priorities.
func (app *applicationDependencies) prioritiesRoutes(router *httprouter.Router) {
	app.mountEntity(router, "/priorities", data.Priorities)
}
