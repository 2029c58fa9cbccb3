package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
	"github.com/riskibarqy/itp-onboarding/internal/domain/schedule"
	qb "github.com/riskibarqy/itp-onboarding/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) ListBetween(ctx context.Context, from, to time.Time) ([]schedule.Event, error) {
	query, args, err := qb.Select(
		"id::text AS id",
		"title",
		"description",
		"date::text AS date",
		"start_time",
		"end_time",
		"type",
		"location",
		"all_day",
	).
		From("events").
		Where(qb.Between("date", from.Format(prospect.DateLayout), to.Format(prospect.DateLayout))).
		OrderBy("date ASC", "start_time ASC NULLS LAST").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list events between %s and %s: %w", from.Format(prospect.DateLayout), to.Format(prospect.DateLayout), err)
	}

	out := make([]schedule.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, schedule.Event{
			ID:          row.ID,
			Title:       row.Title,
			Description: nullableText(row.Description),
			Date:        row.Date,
			StartTime:   nullableText(row.StartTime),
			EndTime:     nullableText(row.EndTime),
			Type:        nullableText(row.Type),
			Location:    nullableText(row.Location),
			AllDay:      row.AllDay,
		})
	}

	return out, nil
}
