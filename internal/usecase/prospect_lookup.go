package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
)

// loadProspect resolves a prospect by ID. IDs that are not UUIDs can never
// match a row, so they are reported as not found without a query.
func loadProspect(ctx context.Context, repo prospect.Repository, id string) (prospect.Prospect, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return prospect.Prospect{}, fmt.Errorf("%w: prospect not found", ErrNotFound)
	}

	item, exists, err := repo.Get(ctx, id)
	if err != nil {
		return prospect.Prospect{}, fmt.Errorf("get prospect: %w", err)
	}
	if !exists {
		return prospect.Prospect{}, fmt.Errorf("%w: prospect not found", ErrNotFound)
	}
	return item, nil
}
