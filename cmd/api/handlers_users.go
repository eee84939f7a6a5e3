// cmd/api/handlers_users.go
// @description Users CRUD.
// @methods GET, POST, PATCH, DELETE
package main

import (
	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/tharaday-api/internal/data"
)

// usersRoutes mounts /users. A second user with an existing email is
// rejected with 409 duplicate.
func (app *applicationDependencies) usersRoutes(router *httprouter.Router) {
	app.mountEntity(router, "/users", data.Users)
}
