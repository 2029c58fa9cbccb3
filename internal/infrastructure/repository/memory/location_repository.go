package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/itp-onboarding/internal/domain/location"
)

type LocationRepository struct {
	mu     sync.RWMutex
	bySite map[string][]location.Location
}

func NewLocationRepository(items []location.Location) *LocationRepository {
	bySite := make(map[string][]location.Location)
	for _, item := range items {
		bySite[item.Site] = append(bySite[item.Site], item)
	}

	return &LocationRepository{bySite: bySite}
}

func (r *LocationRepository) ListBySite(_ context.Context, site string) ([]location.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.bySite[site]
	out := make([]location.Location, 0, len(items))
	out = append(out, items...)

	return out, nil
}
