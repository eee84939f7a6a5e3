// cmd/api/handlers_tags.go
// @description List tags.
// @methods GET
package main

import (
	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/tharaday-api/internal/data"
)

func (app *applicationDependencies) tagsRoutes(router *httprouter.Router) {
	app.mountEntity(router, "/tags", data.Tags)
}
