package models

import (
	"encoding/json"
	"time"
)

// Row is a column-name keyed record as exchanged with the generic
// persistence layer. Values hold the handful of types the SQLite driver
// produces: string, int64, float64, bool, []byte and nil.
type Row map[string]any

// String returns the named column as a string, tolerating []byte values.
func (r Row) String(column string) string {
	switch v := r[column].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

// Int64 returns the named column as an int64, tolerating the numeric
// representations different drivers and JSON decoders produce.
func (r Row) Int64(column string) int64 {
	switch v := r[column].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// Bool returns the named column as a bool, treating non-zero integers as
// true (SQLite stores booleans as 0/1).
func (r Row) Bool(column string) bool {
	switch v := r[column].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

// Time parses the named column as an RFC3339 timestamp. The zero time is
// returned for absent or unparseable values.
func (r Row) Time(column string) time.Time {
	t, err := time.Parse(time.RFC3339, r.String(column))
	if err != nil {
		return time.Time{}
	}
	return t
}

// TimePtr is like Time but reports absence as nil, for nullable columns
// such as deleted_at.
func (r Row) TimePtr(column string) *time.Time {
	s := r.String(column)
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

// Has reports whether the column is present with a non-nil value.
func (r Row) Has(column string) bool {
	v, ok := r[column]
	return ok && v != nil
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// FormatTime renders a timestamp the way every persisted and transmitted
// timestamp in the app is rendered: RFC3339 in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTimePtr renders a nullable timestamp, mapping nil to nil so the
// column stays NULL.
func FormatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return FormatTime(*t)
}

// EncodeJSON marshals v for storage in a TEXT column. Marshal failures are
// not possible for the value shapes used here, so the error is swallowed
// into an empty JSON document.
func EncodeJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// DecodeIntSlice parses a JSON integer array stored in a TEXT column.
func DecodeIntSlice(s string) []int {
	if s == "" {
		return nil
	}
	var out []int
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}
