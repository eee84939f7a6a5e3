// internal/data/models.go
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aoideee/tharaday-api/internal/metrics"
)

// Record is one row keyed by column name, ready to be encoded as JSON.
type Record map[string]any

// Store is the data access used by the HTTP handlers. Every method runs a
// single statement.
type Store interface {
	List(ctx context.Context, e *Entity) ([]Record, error)
	Insert(ctx context.Context, e *Entity, changes Changes) (Record, error)
	Update(ctx context.Context, e *Entity, id int64, changes Changes) (Record, error)
	Delete(ctx context.Context, e *Entity, id int64) error
	Ping(ctx context.Context) (bool, error)
}

// DBConfig carries the pool settings used by Open.
type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

// Open creates a PostgreSQL connection pool. It returns
// ErrMissingDatabaseURL when no DSN is configured and does not contact the
// server; reachability is reported by Ping.
func Open(cfg DBConfig) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, ErrMissingDatabaseURL
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.MaxIdleTime)

	return db, nil
}

// Models implements Store over a *sql.DB connection pool.
type Models struct {
	DB *sql.DB // Shared database connection pool
}

// NewModels constructs a Models value wired up to the given pool.
func NewModels(db *sql.DB) *Models {
	return &Models{DB: db}
}

// List runs the entity's fixed SELECT.
func (m *Models) List(ctx context.Context, e *Entity) ([]Record, error) {
	start := time.Now()
	rows, err := m.DB.QueryContext(ctx, e.ListQuery)
	if err != nil {
		observe("select", e.Table, start, err)
		return nil, err
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	observe("select", e.Table, start, err)
	return records, err
}

// Insert writes a new row and returns it, including the generated id.
func (m *Models) Insert(ctx context.Context, e *Entity, changes Changes) (Record, error) {
	stmt := e.InsertStatement(changes)
	record, err := m.queryOne(ctx, "insert", e.Table, stmt)
	if err != nil {
		return nil, translateWriteError(e, err)
	}
	return record, nil
}

// Update applies changes to the row with the given id. It returns
// ErrRecordNotFound when no row matched.
func (m *Models) Update(ctx context.Context, e *Entity, id int64, changes Changes) (Record, error) {
	stmt, err := e.UpdateStatement(id, changes)
	if err != nil {
		return nil, err
	}

	record, err := m.queryOne(ctx, "update", e.Table, stmt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrRecordNotFound
	case err != nil:
		return nil, translateWriteError(e, err)
	}
	return record, nil
}

// Delete removes the row with the given id. Deleting a row that does not
// exist is not an error.
func (m *Models) Delete(ctx context.Context, e *Entity, id int64) error {
	stmt := e.DeleteStatement(id)
	start := time.Now()
	_, err := m.DB.ExecContext(ctx, stmt.SQL, stmt.Args...)
	observe("delete", e.Table, start, err)
	return err
}

// Ping runs a trivial query to prove the database answers.
func (m *Models) Ping(ctx context.Context) (bool, error) {
	start := time.Now()
	var ok int
	err := m.DB.QueryRowContext(ctx, "SELECT 1 AS ok").Scan(&ok)
	observe("ping", "", start, err)
	if err != nil {
		return false, err
	}
	return ok == 1, nil
}

// queryOne runs a statement expected to return at most one row. It returns
// sql.ErrNoRows when the statement matched nothing.
func (m *Models) queryOne(ctx context.Context, op, table string, stmt Statement) (Record, error) {
	start := time.Now()
	rows, err := m.DB.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		observe(op, table, start, err)
		return nil, err
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	observe(op, table, start, err)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, sql.ErrNoRows
	}
	return records[0], nil
}

func observe(op, table string, start time.Time, err error) {
	errType := ""
	if err != nil {
		errType = errorType(err)
	}
	metrics.RecordDBQuery(op, table, time.Since(start), errType)
}

// scanRecords reads every row into a Record. The result is never nil so an
// empty table encodes as [].
func scanRecords(rows *sql.Rows) ([]Record, error) {
	cols, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	records := []Record{}
	for rows.Next() {
		values := make([]any, len(cols))
		dest := make([]any, len(cols))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		record := make(Record, len(cols))
		for i, col := range cols {
			record[col.Name()] = normalize(col.DatabaseTypeName(), values[i])
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// normalize converts driver values that would not encode naturally: NUMERIC
// arrives as text and must become a number, other byte slices become strings.
func normalize(dbType string, v any) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	s := string(b)
	if dbType == "NUMERIC" {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}
