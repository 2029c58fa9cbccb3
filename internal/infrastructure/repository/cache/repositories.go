package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/itp-onboarding/internal/domain/location"
	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
	"github.com/riskibarqy/itp-onboarding/internal/domain/schedule"
	basecache "github.com/riskibarqy/itp-onboarding/internal/platform/cache"
)

// Prospects are not cached here: onboarding writes change them on every step.

type EventRepository struct {
	next  schedule.Repository
	cache *basecache.Store[[]schedule.Event]
}

func NewEventRepository(next schedule.Repository, ttl time.Duration) *EventRepository {
	return &EventRepository{next: next, cache: basecache.NewStore[[]schedule.Event](ttl)}
}

func (r *EventRepository) ListBetween(ctx context.Context, from, to time.Time) ([]schedule.Event, error) {
	key := "event:range:" + from.Format(prospect.DateLayout) + ":" + to.Format(prospect.DateLayout)
	items, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]schedule.Event, error) {
		return r.next.ListBetween(ctx, from, to)
	})
	if err != nil {
		return nil, err
	}
	// Callers get their own slice so they cannot mutate the cached one.
	return append([]schedule.Event(nil), items...), nil
}

type LocationRepository struct {
	next  location.Repository
	cache *basecache.Store[[]location.Location]
}

func NewLocationRepository(next location.Repository, ttl time.Duration) *LocationRepository {
	return &LocationRepository{next: next, cache: basecache.NewStore[[]location.Location](ttl)}
}

func (r *LocationRepository) ListBySite(ctx context.Context, site string) ([]location.Location, error) {
	key := "location:site:" + site
	items, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]location.Location, error) {
		return r.next.ListBySite(ctx, site)
	})
	if err != nil {
		return nil, err
	}
	return append([]location.Location(nil), items...), nil
}
