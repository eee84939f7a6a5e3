// Package directory builds the endpoint listing served at /routes and /.
//
// Every route is mounted by a file named handlers_<name>.go whose leading
// comment block (the one directly above the package clause) may carry two
// annotations:
//
//	// @description Books CRUD.
//	// @methods GET, POST, PATCH, DELETE
//
// @desc and @method are accepted as aliases and tags are case-insensitive.
// The listing is generated at build time by cmd/routegen and embedded here.
package directory

import (
	"bytes"
	_ "embed"
	"fmt"
	"go/parser"
	"go/token"
	"io"
	"io/fs"
	"regexp"
	"slices"
	"strings"

	"github.com/goccy/go-json"
)

// DefaultDescription is used for routes without an @description annotation.
const DefaultDescription = "No description yet."

// HandlerPrefix and HandlerSuffix bracket the route name in a handler file name.
const (
	HandlerPrefix = "handlers_"
	HandlerSuffix = ".go"
)

// Route is one entry of the listing.
type Route struct {
	Path        string   `json:"path"`
	Description string   `json:"description"`
	Methods     []string `json:"methods"`
}

// Listing is the document stored in routes.json.
type Listing struct {
	Routes []Route `json:"routes"`
}

// Meta holds the annotations found in a handler file. Zero values mean the
// annotation was absent.
type Meta struct {
	Description string
	Methods     []string
}

var (
	descRx    = regexp.MustCompile(`(?i)^@(?:description|desc)\s+(.+)$`)
	methodsRx = regexp.MustCompile(`(?i)^@methods?\s+(.+)$`)
	splitRx   = regexp.MustCompile(`[,\s]+`)
)

//go:embed routes.json
var embedded []byte

// Embedded returns the listing compiled into the binary.
func Embedded() (Listing, error) {
	var listing Listing
	if err := json.Unmarshal(embedded, &listing); err != nil {
		return Listing{}, fmt.Errorf("decode embedded routes: %w", err)
	}
	return listing, nil
}

// ParseMeta reads the annotations from the leading comment block of a Go
// source file. When a tag appears more than once the last one wins.
func ParseMeta(filename string, src []byte) (Meta, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.PackageClauseOnly|parser.ParseComments)
	if err != nil {
		return Meta{}, err
	}

	var meta Meta
	if f.Doc == nil {
		return meta, nil
	}

	for _, line := range strings.Split(f.Doc.Text(), "\n") {
		line = strings.TrimSpace(line)
		if m := descRx.FindStringSubmatch(line); m != nil {
			meta.Description = strings.TrimSpace(m[1])
			continue
		}
		if m := methodsRx.FindStringSubmatch(line); m != nil {
			meta.Methods = splitMethods(m[1])
		}
	}
	return meta, nil
}

func splitMethods(s string) []string {
	var methods []string
	for _, part := range splitRx.Split(s, -1) {
		if part = strings.TrimSpace(part); part != "" {
			methods = append(methods, strings.ToUpper(part))
		}
	}
	return methods
}

// RouteName extracts the route name from a handler file name:
// "handlers_item_types.go" gives "item-types". Test files and other files are
// rejected.
func RouteName(filename string) (string, bool) {
	if !strings.HasPrefix(filename, HandlerPrefix) ||
		!strings.HasSuffix(filename, HandlerSuffix) ||
		strings.HasSuffix(filename, "_test.go") {
		return "", false
	}

	name := strings.TrimSuffix(strings.TrimPrefix(filename, HandlerPrefix), HandlerSuffix)
	if name == "" {
		return "", false
	}
	return strings.ReplaceAll(name, "_", "-"), true
}

// NewRoute applies the defaults to meta for the route called name.
func NewRoute(name string, meta Meta) Route {
	route := Route{
		Path:        "/" + name,
		Description: meta.Description,
		Methods:     meta.Methods,
	}
	if route.Description == "" {
		route.Description = DefaultDescription
	}
	if len(route.Methods) == 0 {
		route.Methods = []string{"GET"}
	}
	return route
}

// Scan reads every handler file at the root of fsys and returns the listing
// sorted by path. Route names in exclude are skipped.
func Scan(fsys fs.FS, exclude ...string) ([]Route, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	routes := []Route{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := RouteName(entry.Name())
		if !ok || slices.Contains(exclude, name) {
			continue
		}

		src, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, err
		}
		meta, err := ParseMeta(entry.Name(), src)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}
		routes = append(routes, NewRoute(name, meta))
	}

	slices.SortFunc(routes, func(a, b Route) int {
		return strings.Compare(a.Path, b.Path)
	})
	return routes, nil
}

// Encode writes listing in the routes.json format: two-space indentation and
// a trailing newline.
func Encode(w io.Writer, listing Listing) error {
	if listing.Routes == nil {
		listing.Routes = []Route{}
	}

	js, err := json.MarshalIndent(listing, "", "  ")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	_, err = io.Copy(w, bytes.NewReader(js))
	return err
}
