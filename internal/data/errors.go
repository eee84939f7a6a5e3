package data

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrMissingDatabaseURL is returned when no connection string is
	// configured. Handlers check for it before any statement runs.
	ErrMissingDatabaseURL = errors.New("missing_database_url")

	// ErrRecordNotFound is returned when an update matches no row.
	ErrRecordNotFound = errors.New("record not found")

	// ErrIDRequired is returned when the identity is absent or zero.
	ErrIDRequired = errors.New("id required")

	// ErrInvalidID is returned when the identity is not a number.
	ErrInvalidID = errors.New("id must be a number")

	// ErrNoFields is returned when a patch names no known field.
	ErrNoFields = errors.New("no fields to update")

	// ErrInvalidForeignKey classifies foreign key violations.
	ErrInvalidForeignKey = errors.New("invalid_fkey")

	// ErrDuplicate classifies unique violations.
	ErrDuplicate = errors.New("duplicate")
)

// PostgreSQL SQLSTATE codes recognised by translateWriteError.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

// ValidationError reports the first field of a request that failed its rule.
type ValidationError struct {
	Entity  string
	Field   string
	Message string
}

// Error renders the message as sent to clients, e.g.
// "books: tag_id must be a number".
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Entity, e.Message)
	}
	return fmt.Sprintf("%s: %s %s", e.Entity, e.Field, e.Message)
}

// ConstraintError is an integrity violation translated into a domain
// outcome. Kind is ErrInvalidForeignKey or ErrDuplicate.
type ConstraintError struct {
	Kind    error
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

// Unwrap exposes Kind so callers can use errors.Is.
func (e *ConstraintError) Unwrap() error {
	return e.Kind
}

// translateWriteError maps driver errors raised by INSERT or UPDATE
// statements onto ConstraintError. Other errors pass through unchanged.
func translateWriteError(e *Entity, err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case codeForeignKeyViolation:
		msg := e.FKeyMessage
		if msg == "" {
			msg = "Referenced row does not exist"
		}
		return &ConstraintError{Kind: ErrInvalidForeignKey, Message: msg, Err: err}
	case codeUniqueViolation:
		if e.DuplicateMessage != "" {
			return &ConstraintError{Kind: ErrDuplicate, Message: e.DuplicateMessage, Err: err}
		}
	}
	return err
}

// errorType labels a failed statement for metrics.
func errorType(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return "other"
}
