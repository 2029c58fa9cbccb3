package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
)

type ProspectRepository struct {
	mu        sync.RWMutex
	prospects map[string]prospect.Prospect
	now       func() time.Time
}

func NewProspectRepository(items []prospect.Prospect) *ProspectRepository {
	prospects := make(map[string]prospect.Prospect, len(items))
	for _, item := range items {
		prospects[item.ID] = item
	}

	return &ProspectRepository{prospects: prospects, now: time.Now}
}

func (r *ProspectRepository) Get(_ context.Context, id string) (prospect.Prospect, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.prospects[id]
	return item, ok, nil
}

func (r *ProspectRepository) ApplyOnboarding(_ context.Context, id string, update prospect.Update) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.prospects[id]
	if !ok {
		return fmt.Errorf("%w: id=%s", prospect.ErrNotFound, id)
	}

	item.Apply(update)
	item.UpdatedAt = r.now().UTC()
	r.prospects[id] = item

	return nil
}
