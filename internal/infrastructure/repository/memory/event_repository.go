package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
	"github.com/riskibarqy/itp-onboarding/internal/domain/schedule"
)

type EventRepository struct {
	mu     sync.RWMutex
	events []schedule.Event
}

func NewEventRepository(events []schedule.Event) *EventRepository {
	return &EventRepository{events: append([]schedule.Event(nil), events...)}
}

func (r *EventRepository) ListBetween(_ context.Context, from, to time.Time) ([]schedule.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lo := from.Format(prospect.DateLayout)
	hi := to.Format(prospect.DateLayout)
	out := make([]schedule.Event, 0, len(r.events))
	for _, item := range r.events {
		if item.Date < lo || item.Date > hi {
			continue
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})

	return out, nil
}
