package postgres

import (
	"database/sql"
	"strings"
	"time"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

func nullableText(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return strings.TrimSpace(v.String)
}

func nullableBool(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	out := v.Bool
	return &out
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}

// nullableDate keeps only the calendar part of a DATE column so that the
// driver's session time zone never shifts the day.
func nullableDate(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	y, m, d := v.Time.Date()
	out := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &out
}

func nullableTimestamp(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	out := v.Time.UTC()
	return &out
}

// clockText renders a TIME or TIMESTAMPTZ column as scanned into text.
// Postgres returns TIME as "HH:MM:SS" which is trimmed to minutes.
func clockText(v sql.NullString) string {
	raw := nullableText(v)
	if len(raw) == len("15:04:05") && strings.Count(raw, ":") == 2 {
		return raw[:5]
	}
	return raw
}
