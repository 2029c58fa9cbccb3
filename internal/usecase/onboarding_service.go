package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
)

type SaveOnboardingInput struct {
	ProspectID string
	Step       int
	Submit     bool
	Patch      prospect.Patch
}

type OnboardingService struct {
	prospectRepo prospect.Repository
	now          func() time.Time
}

func NewOnboardingService(prospectRepo prospect.Repository) *OnboardingService {
	return &OnboardingService{
		prospectRepo: prospectRepo,
		now:          time.Now,
	}
}

// Save stores the step counter and the patch fields present in the input.
// Submitting stamps the completion time. Completed prospects are not locked.
func (s *OnboardingService) Save(ctx context.Context, input SaveOnboardingInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.OnboardingService.Save")
	defer span.End()

	input.ProspectID = strings.TrimSpace(input.ProspectID)
	if input.ProspectID == "" {
		return fmt.Errorf("%w: missing prospectId", ErrInvalidInput)
	}
	if input.Step < 0 {
		return fmt.Errorf("%w: step must be >= 0", ErrInvalidInput)
	}

	if _, err := loadProspect(ctx, s.prospectRepo, input.ProspectID); err != nil {
		return err
	}

	update := prospect.Update{
		Step:  input.Step,
		Patch: input.Patch,
	}
	if input.Submit {
		completedAt := s.now().UTC()
		update.CompletedAt = &completedAt
	}

	if err := s.prospectRepo.ApplyOnboarding(ctx, input.ProspectID, update); err != nil {
		if errors.Is(err, prospect.ErrNotFound) {
			return fmt.Errorf("%w: prospect not found", ErrNotFound)
		}
		return fmt.Errorf("apply onboarding update: %w", err)
	}
	return nil
}
