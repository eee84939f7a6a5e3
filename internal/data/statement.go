package data

import (
	"fmt"
	"strings"
)

// Statement pairs SQL text with its positional arguments.
type Statement struct {
	SQL  string
	Args []any
}

// InsertStatement builds an INSERT over every writable column, returning the
// created row.
func (e *Entity) InsertStatement(changes Changes) Statement {
	cols := make([]string, 0, len(changes))
	placeholders := make([]string, 0, len(changes))
	args := make([]any, 0, len(changes))

	for i, a := range changes {
		cols = append(cols, a.Column)
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, a.Value)
	}

	var sql strings.Builder
	sql.WriteString("INSERT INTO ")
	sql.WriteString(e.Table)
	sql.WriteString(" (")
	sql.WriteString(strings.Join(cols, ", "))
	sql.WriteString(") VALUES (")
	sql.WriteString(strings.Join(placeholders, ", "))
	sql.WriteString(") RETURNING ")
	sql.WriteString(e.returning())

	return Statement{SQL: sql.String(), Args: args}
}

// UpdateStatement builds an UPDATE touching only the supplied columns. The
// SET clause follows the entity's field order regardless of the order of
// changes, and id is always the last argument.
func (e *Entity) UpdateStatement(id int64, changes Changes) (Statement, error) {
	if len(changes) == 0 {
		return Statement{}, ErrNoFields
	}

	sets := make([]string, 0, len(changes))
	args := make([]any, 0, len(changes)+1)
	paramNum := 1

	for _, f := range e.Fields {
		value, ok := changes.Get(f.Column)
		if !ok {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", f.Column, paramNum))
		args = append(args, value)
		paramNum++
	}
	if len(sets) == 0 {
		return Statement{}, ErrNoFields
	}
	args = append(args, id)

	var sql strings.Builder
	sql.WriteString("UPDATE ")
	sql.WriteString(e.Table)
	sql.WriteString(" SET ")
	sql.WriteString(strings.Join(sets, ", "))
	sql.WriteString(fmt.Sprintf(" WHERE id = $%d RETURNING ", paramNum))
	sql.WriteString(e.returning())

	return Statement{SQL: sql.String(), Args: args}, nil
}

// DeleteStatement removes the row with the given id. A missing row is not an
// error.
func (e *Entity) DeleteStatement(id int64) Statement {
	return Statement{
		SQL:  "DELETE FROM " + e.Table + " WHERE id = $1",
		Args: []any{id},
	}
}
