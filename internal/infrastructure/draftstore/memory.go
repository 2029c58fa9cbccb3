package draftstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/itp-onboarding/internal/domain/onboarding"
	"github.com/riskibarqy/itp-onboarding/internal/platform/cache"
)

// MemoryStore keeps drafts in a process-local TTL map.
type MemoryStore struct {
	store *cache.Store[onboarding.Draft]
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{store: cache.NewStore[onboarding.Draft](ttl)}
}

func (s *MemoryStore) Load(ctx context.Context, prospectID string) (onboarding.Draft, bool, error) {
	draft, ok := s.store.Get(ctx, draftKey(prospectID))
	return draft, ok, nil
}

func (s *MemoryStore) Save(ctx context.Context, draft onboarding.Draft) error {
	if strings.TrimSpace(draft.ProspectID) == "" {
		return fmt.Errorf("%w: prospect id is required", onboarding.ErrInvalidDraft)
	}
	s.store.Set(ctx, draftKey(draft.ProspectID), draft)
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, prospectID string) error {
	s.store.Delete(ctx, draftKey(prospectID))
	return nil
}
