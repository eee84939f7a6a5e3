package data

import (
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/aoideee/tharaday-api/internal/validator"
)

// Assignment is one validated column value.
type Assignment struct {
	Column string
	Value  any
}

// Changes lists validated assignments in the entity's field order.
type Changes []Assignment

// Get returns the value assigned to column.
func (c Changes) Get(column string) (any, bool) {
	for _, a := range c {
		if a.Column == column {
			return a.Value, true
		}
	}
	return nil, false
}

// Validation messages, completed with the field name by ValidationError.
const (
	msgRequired      = "required"
	msgMustBeNumber  = "must be a number"
	msgMustBeText    = "must be text"
	msgAtLeastOneSet = "at least one field required"
)

// ValidateCreate checks input against every field rule and returns the full
// set of assignments for an INSERT. Absent optional values become NULL.
func (e *Entity) ValidateCreate(input map[string]any) (Changes, error) {
	changes := make(Changes, 0, len(e.Fields))
	failures := make([]string, 0, len(e.Fields))
	nonNullText := 0

	for _, f := range e.Fields {
		raw, present := input[f.Name]
		value, msg := coerce(f, raw, present)
		failures = append(failures, msg)
		if f.Kind == OptionalText && value != nil {
			nonNullText++
		}
		changes = append(changes, Assignment{Column: f.Column, Value: value})
	}

	if err := e.firstError(e.Fields, failures); err != nil {
		return nil, err
	}
	if e.AtLeastOne && nonNullText == 0 {
		return nil, &ValidationError{Entity: e.Name, Message: msgAtLeastOneSet}
	}
	return changes, nil
}

// ValidatePatch extracts the identity and the assignments for the fields
// present in input. A field present with a null value is still subject to
// its rule; absent fields are left out.
func (e *Entity) ValidatePatch(input map[string]any) (int64, Changes, error) {
	id, err := ParseID(input["id"])
	if err != nil {
		return 0, nil, err
	}

	var (
		changes  Changes
		fields   []Field
		failures []string
	)
	for _, f := range e.Fields {
		raw, present := input[f.Name]
		if !present {
			continue
		}
		value, msg := coerce(f, raw, true)
		fields = append(fields, f)
		failures = append(failures, msg)
		changes = append(changes, Assignment{Column: f.Column, Value: value})
	}

	if err := e.firstError(fields, failures); err != nil {
		return 0, nil, err
	}
	if len(changes) == 0 {
		return 0, nil, ErrNoFields
	}
	return id, changes, nil
}

// firstError reports missing values before malformed ones: every "required"
// failure is checked ahead of any other, each pass in field order.
func (e *Entity) firstError(fields []Field, failures []string) error {
	v := validator.New()
	for i, f := range fields {
		v.Check(failures[i] != msgRequired, f.Name, msgRequired)
	}
	for i, f := range fields {
		v.Check(failures[i] == "", f.Name, failures[i])
	}
	if v.Valid() {
		return nil
	}
	field, msg, _ := v.First()
	return &ValidationError{Entity: e.Name, Field: field, Message: msg}
}

// ParseID reads an identity from a body value or query string. Absent,
// null, blank, false and zero identities are ErrIDRequired.
func ParseID(raw any) (int64, error) {
	if isBlank(raw) {
		return 0, ErrIDRequired
	}
	if b, ok := raw.(bool); ok {
		if !b {
			return 0, ErrIDRequired
		}
		return 0, ErrInvalidID
	}
	id, ok := integer(raw)
	if !ok {
		return 0, ErrInvalidID
	}
	if id == 0 {
		return 0, ErrIDRequired
	}
	return id, nil
}

// coerce applies the rule for f. msg is empty on success.
func coerce(f Field, raw any, present bool) (value any, msg string) {
	switch f.Kind {
	case RequiredText:
		s, ok := textValue(raw)
		if !ok {
			return nil, msgMustBeText
		}
		if s == "" {
			return nil, msgRequired
		}
		return s, ""

	case OptionalText:
		s, ok := textValue(raw)
		if !ok {
			return nil, msgMustBeText
		}
		if s == "" {
			return nil, ""
		}
		return s, ""

	case RequiredRef:
		if !present || isBlank(raw) || raw == false {
			return nil, msgRequired
		}
		n, ok := integer(raw)
		if !ok {
			return nil, msgMustBeNumber
		}
		// No row has id 0; treat it like a missing reference.
		if n == 0 {
			return nil, msgRequired
		}
		return n, ""

	case OptionalNumber:
		if !present || isBlank(raw) {
			return nil, ""
		}
		if n, ok := exactInt(raw); ok {
			return n, ""
		}
		n, ok := finite(raw)
		if !ok {
			return nil, msgMustBeNumber
		}
		if n == math.Trunc(n) && math.Abs(n) < math.MaxInt64 {
			return int64(n), ""
		}
		return n, ""
	}
	return nil, msgRequired
}

// textValue stringifies scalars and trims the result. Objects and arrays are
// rejected.
func textValue(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", true
	case string:
		return strings.TrimSpace(v), true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}

// isBlank reports null or a whitespace-only string.
func isBlank(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}
	return false
}

// finite parses numbers and numeric strings, rejecting NaN and infinities.
func finite(raw any) (float64, bool) {
	var f float64
	switch v := raw.(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// exactInt parses integral numbers and numeric strings without going through
// float64, so ids above 2^53 keep every digit.
func exactInt(raw any) (int64, bool) {
	var s string
	switch v := raw.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case json.Number:
		s = v.String()
	case string:
		s = strings.TrimSpace(v)
	default:
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// integer accepts finite values with no fractional part. Forms such as "5.0"
// or 1e3 fall back to the float path.
func integer(raw any) (int64, bool) {
	if n, ok := exactInt(raw); ok {
		return n, true
	}
	f, ok := finite(raw)
	if !ok || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
