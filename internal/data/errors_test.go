package data

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateWriteError(t *testing.T) {
	fkey := &pq.Error{Code: "23503", Message: "insert or update violates foreign key constraint"}
	unique := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
	other := &pq.Error{Code: "22001", Message: "value too long"}

	tests := []struct {
		name        string
		entity      *Entity
		err         error
		wantKind    error
		wantMessage string
	}{
		{
			name:        "book foreign key",
			entity:      Books,
			err:         fkey,
			wantKind:    ErrInvalidForeignKey,
			wantMessage: "Tag, status, priority, author, or publisher does not exist",
		},
		{
			name:        "wrapped foreign key",
			entity:      Items,
			err:         fmt.Errorf("query: %w", fkey),
			wantKind:    ErrInvalidForeignKey,
			wantMessage: "Type, status, or priority does not exist",
		},
		{
			name:        "user duplicate",
			entity:      Users,
			err:         unique,
			wantKind:    ErrDuplicate,
			wantMessage: "User already exists",
		},
		{
			name:   "book duplicate passes through",
			entity: Books,
			err:    unique,
		},
		{
			name:   "other driver error",
			entity: Users,
			err:    other,
		},
		{
			name:   "plain error",
			entity: Users,
			err:    errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateWriteError(tt.entity, tt.err)

			if tt.wantKind == nil {
				assert.Equal(t, tt.err, got)
				return
			}

			var cErr *ConstraintError
			require.True(t, errors.As(got, &cErr))
			assert.ErrorIs(t, got, tt.wantKind)
			assert.Equal(t, tt.wantMessage, cErr.Message)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	assert.Equal(t, "books: name required",
		(&ValidationError{Entity: "books", Field: "name", Message: "required"}).Error())
	assert.Equal(t, "authors: at least one field required",
		(&ValidationError{Entity: "authors", Message: "at least one field required"}).Error())
}

func TestErrorType(t *testing.T) {
	assert.Equal(t, "23503", errorType(&pq.Error{Code: "23503"}))
	assert.Equal(t, "other", errorType(errors.New("boom")))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, int64(412), normalize("NUMERIC", []byte("412")))
	assert.Equal(t, 12.5, normalize("NUMERIC", []byte("12.5")))
	assert.Equal(t, "Dune", normalize("TEXT", []byte("Dune")))
	assert.Equal(t, int64(3), normalize("INT8", int64(3)))
	assert.Nil(t, normalize("NUMERIC", nil))
}

func TestOpenRequiresDSN(t *testing.T) {
	_, err := Open(DBConfig{DSN: "  "})
	assert.ErrorIs(t, err, ErrMissingDatabaseURL)
}
