package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/tharaday-api/internal/config"
	"github.com/aoideee/tharaday-api/internal/data"
)

// memStore is an in-memory data.Store. When err is set every method fails
// with it.
type memStore struct {
	mu     sync.Mutex
	rows   map[string][]data.Record
	nextID int64
	err    error
	calls  int
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[string][]data.Record)}
}

func (s *memStore) List(_ context.Context, e *data.Entity) ([]data.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	records := []data.Record{}
	return append(records, s.rows[e.Table]...), nil
}

func (s *memStore) Insert(_ context.Context, e *data.Entity, changes data.Changes) (data.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	s.nextID++
	record := data.Record{"id": s.nextID}
	for _, a := range changes {
		record[a.Column] = a.Value
	}
	s.rows[e.Table] = append(s.rows[e.Table], record)
	return record, nil
}

func (s *memStore) Update(_ context.Context, e *data.Entity, id int64, changes data.Changes) (data.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	for _, record := range s.rows[e.Table] {
		if record["id"] == id {
			for _, a := range changes {
				record[a.Column] = a.Value
			}
			return record, nil
		}
	}
	return nil, data.ErrRecordNotFound
}

func (s *memStore) Delete(_ context.Context, e *data.Entity, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return s.err
	}
	rows := s.rows[e.Table][:0]
	for _, record := range s.rows[e.Table] {
		if record["id"] != id {
			rows = append(rows, record)
		}
	}
	s.rows[e.Table] = rows
	return nil
}

func (s *memStore) Ping(context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return false, s.err
	}
	return true, nil
}

// newTestApp returns an application with rate limiting disabled, logging
// discarded, and the given store (nil means no database configured).
func newTestApp(t *testing.T, store data.Store) *applicationDependencies {
	t.Helper()

	cfg := &config.Config{
		Port: 4000,
		Env:  "development",
		Limiter: config.LimiterConfig{
			RPS:     2,
			Burst:   4,
			Enabled: false,
		},
	}

	app := &applicationDependencies{
		config: cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if store != nil {
		app.store = store
	}
	return app
}

// do sends one request through the full middleware chain.
func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

func decodeArray(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var a []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a), rec.Body.String())
	return a
}
