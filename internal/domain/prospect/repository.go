package prospect

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("prospect not found")

// Update is one onboarding write: the step counter is always stored, patch
// entries only when present, and CompletedAt only on submit.
type Update struct {
	Step        int
	Patch       Patch
	CompletedAt *time.Time
}

type Repository interface {
	Get(ctx context.Context, id string) (Prospect, bool, error)
	ApplyOnboarding(ctx context.Context, id string, update Update) error
}
