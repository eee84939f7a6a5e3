// Package data provides the entity descriptors, input validation and
// database interaction logic for the catalog API.
package data

import "strings"

// FieldKind selects the validation and coercion rule applied to a field.
type FieldKind int

const (
	// RequiredText is trimmed and must not be empty.
	RequiredText FieldKind = iota
	// OptionalText is trimmed and stored as NULL when empty.
	OptionalText
	// RequiredRef is a foreign key: a finite integral number that must be
	// supplied.
	RequiredRef
	// OptionalNumber is stored as NULL when blank, otherwise must be finite.
	OptionalNumber
)

// Field describes one writable column of an entity.
type Field struct {
	Name   string // key in the request body
	Kind   FieldKind
	Column string
}

func text(name string) Field { return Field{Name: name, Kind: RequiredText, Column: name} }
func optText(name string) Field { return Field{Name: name, Kind: OptionalText, Column: name} }
func ref(name string) Field { return Field{Name: name, Kind: RequiredRef, Column: name} }
func optNumber(name string) Field { return Field{Name: name, Kind: OptionalNumber, Column: name} }

// Entity describes a table served by the generic CRUD handlers. Read-only
// lookup tables are entities without writable fields.
type Entity struct {
	// Name prefixes validation messages, e.g. "books: name required".
	Name string
	// Singular is used in the not-found message, e.g. "Book not found".
	Singular string
	Table    string
	// Fields lists writable columns in the order they are validated and
	// written.
	Fields []Field
	// AtLeastOne requires at least one OptionalText field to be non-null on
	// create.
	AtLeastOne bool
	// ListQuery is the fixed SELECT used by List.
	ListQuery string
	// FKeyMessage is reported when an insert or update references a missing
	// row.
	FKeyMessage string
	// DuplicateMessage, when set, turns unique violations into ErrDuplicate.
	DuplicateMessage string
}

// Columns returns id followed by every writable column.
func (e *Entity) Columns() []string {
	cols := make([]string, 0, len(e.Fields)+1)
	cols = append(cols, "id")
	for _, f := range e.Fields {
		cols = append(cols, f.Column)
	}
	return cols
}

// Writable reports whether the entity accepts POST/PATCH/DELETE.
func (e *Entity) Writable() bool {
	return len(e.Fields) > 0
}

func (e *Entity) returning() string {
	return strings.Join(e.Columns(), ", ")
}

// lookup builds a read-only descriptor over an id/name/is_active table.
func lookup(name, table string) *Entity {
	return &Entity{
		Name:  name,
		Table: table,
		ListQuery: `
			SELECT id, name, is_active
			FROM ` + table + `
			WHERE is_active = true
			ORDER BY name ASC`,
	}
}
