package schedule

import (
	"context"
	"time"
)

// Event is a read-only calendar entry. StartTime and EndTime are stored as
// written: either a wall clock "HH:MM[:SS]" or an RFC 3339 timestamp.
type Event struct {
	ID          string
	Title       string
	Description string
	Date        string
	StartTime   string
	EndTime     string
	Type        string
	Location    string
	AllDay      bool
}

type Repository interface {
	// ListBetween returns events whose date falls in [from, to], ordered by
	// date then start time.
	ListBetween(ctx context.Context, from, to time.Time) ([]Event, error)
}
