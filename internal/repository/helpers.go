package repository

import (
	"database/sql"
	"time"
)

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite
// storage: SQL NULL for a nil pointer, a formatted string otherwise.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// nullableFloatToValue converts a *float64 to a SQLite-storable value.
func nullableFloatToValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// nowUTC returns the current UTC time truncated to the second, the
// resolution RFC3339 round-trips at.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
