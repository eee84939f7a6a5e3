package main

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/tharaday-api/internal/data"
)

const validBook = `{"name": "Dune", "tag_id": 1, "status_id": 2, "priority_id": 1, "author_id": 5, "publisher_id": 3}`

func TestMissingDatabase(t *testing.T) {
	h := newTestApp(t, nil).routes()

	tests := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodGet, "/books", ""},
		{http.MethodGet, "/tags", ""},
		{http.MethodPost, "/authors", `{"last_name": "Herbert"}`},
		{http.MethodPatch, "/users", `{"id": 1, "name": "Ann"}`},
		{http.MethodDelete, "/items?id=1", ""},
		{http.MethodGet, "/health", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, map[string]any{"error": "missing_database_url"}, decodeObject(t, rec))
		})
	}
}

func TestOptionsNeverTouchesStore(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("database unreachable")

	for _, app := range []*applicationDependencies{newTestApp(t, nil), newTestApp(t, store)} {
		rec := do(t, app.routes(), http.MethodOptions, "/books", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, corsAllowMethods, rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, corsAllowHeaders, rec.Header().Get("Access-Control-Allow-Headers"))
	}
	assert.Zero(t, store.calls)
}

func TestCreateBook(t *testing.T) {
	store := newMemStore()
	h := newTestApp(t, store).routes()

	rec := do(t, h, http.MethodPost, "/books", validBook)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	book := decodeObject(t, rec)
	assert.Equal(t, float64(1), book["id"])
	assert.Equal(t, "Dune", book["name"])
	assert.Contains(t, book, "pages")
	assert.Nil(t, book["pages"])
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		want   string
	}{
		{"missing tag", "/books", `{"name": "Dune"}`, "books: tag_id required"},
		{"bad tag", "/books", strings.Replace(validBook, `"tag_id": 1`, `"tag_id": "abc"`, 1), "books: tag_id must be a number"},
		{"missing before malformed", "/books", `{"name": "Dune", "tag_id": "abc", "status_id": 1}`, "books: priority_id required"},
		{"zero tag", "/books", strings.Replace(validBook, `"tag_id": 1`, `"tag_id": 0`, 1), "books: tag_id required"},
		{"bad pages", "/books", strings.TrimSuffix(validBook, "}") + `, "pages": "many"}`, "books: pages must be a number"},
		{"empty author", "/authors", `{}`, "authors: at least one field required"},
		{"array body", "/publishers", `[1, 2]`, "publishers: at least one field required"},
		{"malformed body", "/items", `{"name":`, "items: name required"},
		{"missing email", "/users", `{"name": "Ann", "role_id": 1, "status_id": 1}`, "users: email required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			rec := do(t, newTestApp(t, store).routes(), http.MethodPost, tt.target, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, map[string]any{"error": tt.want}, decodeObject(t, rec))
			assert.Zero(t, store.calls, "no statement may run on invalid input")
		})
	}
}

func TestCreateThenList_CoercedFields(t *testing.T) {
	store := newMemStore()
	h := newTestApp(t, store).routes()

	body := `{"name": " Dune ", "tag_id": "1", "status_id": " 2 ", "priority_id": 1,
		"author_id": "5", "publisher_id": 3, "pages": "412"}`
	rec := do(t, h, http.MethodPost, "/books", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeObject(t, rec)

	rec = do(t, h, http.MethodGet, "/books", "")
	require.Equal(t, http.StatusOK, rec.Code)
	books := decodeArray(t, rec)
	require.Len(t, books, 1)

	want := map[string]any{
		"id":           float64(1),
		"name":         "Dune",
		"tag_id":       float64(1),
		"status_id":    float64(2),
		"priority_id":  float64(1),
		"author_id":    float64(5),
		"publisher_id": float64(3),
		"pages":        float64(412),
	}
	assert.Equal(t, want, created)
	assert.Equal(t, want, books[0])

	rec = do(t, h, http.MethodPost, "/authors", `{"last_name": " Herbert ", "first_name": "  ", "country": ""}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/authors", "")
	require.Equal(t, http.StatusOK, rec.Code)
	authors := decodeArray(t, rec)
	require.Len(t, authors, 1)
	assert.Equal(t, map[string]any{
		"id":         float64(2),
		"last_name":  "Herbert",
		"first_name": nil,
		"country":    nil,
	}, authors[0])
}

func TestCreateFromStringBody(t *testing.T) {
	store := newMemStore()
	body := `"{\"last_name\": \"Herbert\"}"`

	rec := do(t, newTestApp(t, store).routes(), http.MethodPost, "/authors", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	author := decodeObject(t, rec)
	assert.Equal(t, "Herbert", author["last_name"])
	assert.Nil(t, author["first_name"])
	assert.Nil(t, author["country"])
}

func TestUpdateBook(t *testing.T) {
	store := newMemStore()
	h := newTestApp(t, store).routes()

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/books", validBook).Code)

	tests := []struct {
		name     string
		body     string
		wantCode int
		want     map[string]any
	}{
		{"missing id", `{"pages": 10}`, http.StatusBadRequest, map[string]any{"error": "id required"}},
		{"bad id", `{"id": "x", "pages": 10}`, http.StatusBadRequest, map[string]any{"error": "id must be a number"}},
		{"no fields", `{"id": 1}`, http.StatusBadRequest, map[string]any{"error": "No fields to update"}},
		{"null reference", `{"id": 1, "tag_id": null}`, http.StatusBadRequest, map[string]any{"error": "books: tag_id required"}},
		{"unknown row", `{"id": 999, "pages": 10}`, http.StatusNotFound, map[string]any{"error": "Book not found"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPatch, "/books", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.want, decodeObject(t, rec))
		})
	}

	rec := do(t, h, http.MethodPatch, "/books", `{"id": 1, "pages": 412}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	book := decodeObject(t, rec)
	assert.Equal(t, float64(412), book["pages"])
	assert.Equal(t, "Dune", book["name"])
}

func TestDelete(t *testing.T) {
	store := newMemStore()
	h := newTestApp(t, store).routes()

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/items",
		`{"name": "Lamp", "type_id": 1, "status_id": 1, "priority_id": 1}`).Code)

	// A second delete of the same id is indistinguishable from the first.
	for range 2 {
		rec := do(t, h, http.MethodDelete, "/items?id=1", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	}
	assert.Empty(t, decodeArray(t, do(t, h, http.MethodGet, "/items", "")))

	rec := do(t, h, http.MethodDelete, "/items", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"error": "id required"}, decodeObject(t, rec))

	rec = do(t, h, http.MethodDelete, "/items?id=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"error": "id must be a number"}, decodeObject(t, rec))

	rec = do(t, h, http.MethodDelete, "/items?id=7&id=abc", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestStoreErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		want     map[string]any
	}{
		{
			name: "foreign key",
			err: &data.ConstraintError{
				Kind:    data.ErrInvalidForeignKey,
				Message: "Role or status does not exist",
				Err:     errors.New("pq: insert or update violates foreign key constraint"),
			},
			wantCode: http.StatusBadRequest,
			want:     map[string]any{"error": "invalid_fkey", "message": "Role or status does not exist"},
		},
		{
			name: "duplicate",
			err: &data.ConstraintError{
				Kind:    data.ErrDuplicate,
				Message: "User already exists",
				Err:     errors.New("pq: duplicate key value violates unique constraint"),
			},
			wantCode: http.StatusConflict,
			want:     map[string]any{"error": "duplicate", "message": "User already exists"},
		},
		{
			name:     "other",
			err:      errors.New("connection reset"),
			wantCode: http.StatusInternalServerError,
			want:     map[string]any{"error": "db_error", "message": "connection reset"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			store.err = tt.err

			rec := do(t, newTestApp(t, store).routes(), http.MethodPost, "/users",
				`{"name": "Ann", "email": "ann@example.com", "role_id": 1, "status_id": 9}`)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.want, decodeObject(t, rec))
		})
	}
}

func TestListLookups(t *testing.T) {
	store := newMemStore()
	store.rows["item_types"] = []data.Record{{"id": int64(1), "name": "Lamp", "is_active": true}}
	h := newTestApp(t, store).routes()

	rec := do(t, h, http.MethodGet, "/item-types", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []map[string]any{{"id": float64(1), "name": "Lamp", "is_active": true}}, decodeArray(t, rec))

	rec = do(t, h, http.MethodGet, "/roles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	rec = do(t, h, http.MethodPost, "/tags", `{"name": "x"}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(t, newTestApp(t, nil).routes(), http.MethodPut, "/books", `{}`)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, map[string]any{"error": "method_not_allowed"}, decodeObject(t, rec))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLookupsRejectWrites(t *testing.T) {
	store := newMemStore()
	h := newTestApp(t, store).routes()

	for _, method := range []string{http.MethodPost, http.MethodPatch, http.MethodDelete} {
		rec := do(t, h, method, "/tags", `{"id": 1, "name": "x"}`)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
	}
	assert.Zero(t, store.calls)
}

func TestNotFound(t *testing.T) {
	rec := do(t, newTestApp(t, nil).routes(), http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, map[string]any{"error": "not_found"}, decodeObject(t, rec))
}

func TestBodyTooLarge(t *testing.T) {
	body := `{"name": "` + strings.Repeat("a", maxBodyBytes) + `"}`

	rec := do(t, newTestApp(t, newMemStore()).routes(), http.MethodPost, "/publishers", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
