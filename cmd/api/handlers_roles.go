// cmd/api/handlers_roles.go
// @description List active roles.
// @methods GET
package main

import (
	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/tharaday-api/internal/data"
)

// rolesRoutes mounts /roles (active rows only).
func (app *applicationDependencies) rolesRoutes(router *httprouter.Router) {
	app.mountEntity(router, "/roles", data.Roles)
}
