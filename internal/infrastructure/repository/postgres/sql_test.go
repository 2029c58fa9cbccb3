package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestNullableDate_DropsClockAndZone(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	got := nullableDate(sql.NullTime{Time: time.Date(2026, 3, 2, 0, 0, 0, 0, berlin), Valid: true})
	if got == nil {
		t.Fatalf("expected date")
	}
	if want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}

	if nullableDate(sql.NullTime{}) != nil {
		t.Fatalf("expected nil for NULL date")
	}
}

func TestClockText(t *testing.T) {
	cases := map[string]string{
		"14:30:00":                  "14:30",
		"09:05":                     "09:05",
		"2026-03-02T09:00:00+01:00": "2026-03-02T09:00:00+01:00",
		"":                          "",
	}
	for in, want := range cases {
		if got := clockText(sql.NullString{String: in, Valid: in != ""}); got != want {
			t.Fatalf("clockText(%q) = %q, want %q", in, got, want)
		}
	}
}
