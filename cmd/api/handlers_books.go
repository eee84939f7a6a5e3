// cmd/api/handlers_books.go
// @description Books CRUD.
// @methods GET, POST, PATCH, DELETE
package main

import (
	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/tharaday-api/internal/data"
)

// booksRoutes mounts /books. The list joins tag, status, priority, author
// and publisher names onto each row.
func (app *applicationDependencies) booksRoutes(router *httprouter.Router) {
	app.mountEntity(router, "/books", data.Books)
}
