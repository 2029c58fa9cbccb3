package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_ListBetween(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)

	query := regexp.QuoteMeta(`SELECT id::text AS id, title, description, date::text AS date, start_time, end_time, type, location, all_day FROM events WHERE date BETWEEN $1 AND $2 ORDER BY date ASC, start_time ASC NULLS LAST`)
	rows := sqlmock.NewRows([]string{"id", "title", "description", "date", "start_time", "end_time", "type", "location", "all_day"}).
		AddRow("e-1", "Training", nil, "2026-03-02", "2026-03-02T09:00:00+01:00", "2026-03-02T11:00:00+01:00", "team_training", "Salzburger Weg", false).
		AddRow("e-2", "Welcome dinner", "Team dinner", "2026-03-02", nil, nil, nil, nil, true)

	mock.ExpectQuery(query).
		WithArgs("2026-03-02", "2026-03-08").
		WillReturnRows(rows)

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	events, err := repo.ListBetween(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "team_training", events[0].Type)
	assert.Equal(t, "2026-03-02T09:00:00+01:00", events[0].StartTime)
	assert.Equal(t, "", events[1].StartTime)
	assert.Equal(t, "Team dinner", events[1].Description)
	assert.True(t, events[1].AllDay)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_ListBetweenError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)

	mock.ExpectQuery(`FROM events`).WillReturnError(errors.New("timeout"))

	_, err := repo.ListBetween(context.Background(), time.Now(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list events between")
}
