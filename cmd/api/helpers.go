// cmd/api/helpers.go
// This file contains general-purpose helper functions for the application.
// Error-response helpers live in errors.go; only non-error utilities are here.
package main

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// maxBodyBytes caps request bodies at 1 MB.
const maxBodyBytes = 1_048_576

// envelope is the JSON object wrapper used for error and status responses,
// e.g. {"error": "invalid_fkey", "message": "..."}. Row lists are written
// as bare arrays.
type envelope map[string]any

// errBodyTooLarge is returned by readBody when the body exceeds maxBodyBytes.
var errBodyTooLarge = errors.New("request body must not be larger than 1MB")

// writeJSON marshals data to indented JSON, applies any custom headers,
// sets Content-Type to "application/json", writes the status code, and
// streams the body to the client.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

// readBody decodes the request body into an untyped record. A JSON object is
// used as is and a JSON string holding an object is decoded a second time;
// anything else, malformed JSON included, yields an empty record. Numbers are
// kept as json.Number so the data layer decides how to coerce them.
func (app *applicationDependencies) readBody(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			return nil, errBodyTooLarge
		}
		return nil, err
	}

	switch v := decodeValue(raw).(type) {
	case map[string]any:
		return v, nil
	case string:
		if m, ok := decodeValue([]byte(v)).(map[string]any); ok {
			return m, nil
		}
	}
	return map[string]any{}, nil
}

// decodeValue parses a single JSON value, returning nil when raw is empty,
// malformed or followed by trailing data.
func decodeValue(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil
	}
	return v
}
