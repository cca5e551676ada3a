package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/simibol/planpoint/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string, loc *time.Location) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.ParseInLocation(layout, s.String, loc)
	if err != nil {
		return nil
	}
	if layout == time.RFC3339 {
		t = t.In(loc)
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	if layout == time.RFC3339 {
		return t.UTC().Format(layout)
	}
	return t.Format(layout)
}

// formatInstant stores an instant as UTC RFC3339.
func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseInstant reads an RFC3339 column back into loc.
func parseInstant(s string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing instant %q: %w", s, err)
	}
	return t.In(loc), nil
}

// formatDate stores a calendar day. Zero dates become NULL.
func formatDate(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(domain.DateLayout)
}

// parseDate reads a nullable calendar day as midnight in loc.
func parseDate(s sql.NullString, loc *time.Location) (time.Time, error) {
	if !s.Valid || s.String == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(domain.DateLayout, s.String, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s.String, err)
	}
	return t, nil
}

// nullableIntToValue converts a *int to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the int value.
func nullableIntToValue(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableFloatToValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableBoolToValue(v *bool) interface{} {
	if v == nil {
		return nil
	}
	return boolToInt(*v)
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// locationOr falls back to UTC when no location is configured.
func locationOr(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

// stampTimes fills CreatedAt on first write. UpdatedAt is kept as given and
// only set when it is zero or earlier than CreatedAt.
func stampTimes(created, updated *time.Time) {
	now := time.Now().UTC()
	if created.IsZero() {
		*created = now
	}
	if updated.IsZero() || updated.Before(*created) {
		*updated = now
	}
}
