package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
	prospectmock "github.com/riskibarqy/itp-onboarding/internal/mocks/domain/prospect"
)

const testProspectID = "a1b2c3d4-e5f6-7890-abcd-ef1234567890"

func TestOnboardingService_Save_MissingProspectID(t *testing.T) {
	t.Parallel()

	repo := prospectmock.NewRepository(t)
	service := NewOnboardingService(repo)

	err := service.Save(context.Background(), SaveOnboardingInput{ProspectID: "  ", Step: 2})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if err.Error() != "invalid input: missing prospectId" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestOnboardingService_Save_NonUUIDIsNotFoundWithoutQuery(t *testing.T) {
	t.Parallel()

	repo := prospectmock.NewRepository(t)
	service := NewOnboardingService(repo)

	err := service.Save(context.Background(), SaveOnboardingInput{ProspectID: "nehemiah", Step: 2})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOnboardingService_Save_UnknownProspect(t *testing.T) {
	t.Parallel()

	repo := prospectmock.NewRepository(t)
	repo.On("Get", mock.Anything, testProspectID).Return(prospect.Prospect{}, false, nil).Once()
	service := NewOnboardingService(repo)

	err := service.Save(context.Background(), SaveOnboardingInput{ProspectID: testProspectID, Step: 2})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOnboardingService_Save_SubmitStampsCompletion(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 20, 18, 30, 0, 0, time.UTC)
	patch := prospect.NewPatch()
	if err := patch.Set(prospect.FieldEquipmentSize, "L"); err != nil {
		t.Fatalf("set patch: %v", err)
	}

	repo := prospectmock.NewRepository(t)
	repo.On("Get", mock.Anything, testProspectID).Return(prospect.Prospect{ID: testProspectID}, true, nil).Once()
	repo.On("ApplyOnboarding", mock.Anything, testProspectID, mock.MatchedBy(func(u prospect.Update) bool {
		size, _ := u.Patch.Get(prospect.FieldEquipmentSize)
		return u.Step == 4 && size == "L" && u.CompletedAt != nil && u.CompletedAt.Equal(now)
	})).Return(nil).Once()

	service := NewOnboardingService(repo)
	service.now = func() time.Time { return now }

	if err := service.Save(context.Background(), SaveOnboardingInput{
		ProspectID: testProspectID,
		Step:       4,
		Submit:     true,
		Patch:      patch,
	}); err != nil {
		t.Fatalf("save onboarding: %v", err)
	}
}

func TestOnboardingService_Save_WithoutSubmitLeavesCompletion(t *testing.T) {
	t.Parallel()

	repo := prospectmock.NewRepository(t)
	repo.On("Get", mock.Anything, testProspectID).Return(prospect.Prospect{ID: testProspectID}, true, nil).Once()
	repo.On("ApplyOnboarding", mock.Anything, testProspectID, mock.MatchedBy(func(u prospect.Update) bool {
		return u.Step == 2 && u.CompletedAt == nil && u.Patch.Len() == 0
	})).Return(nil).Once()

	if err := NewOnboardingService(repo).Save(context.Background(), SaveOnboardingInput{ProspectID: testProspectID, Step: 2}); err != nil {
		t.Fatalf("save onboarding: %v", err)
	}
}

func TestOnboardingService_Save_RepositoryFailure(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("connection reset")
	repo := prospectmock.NewRepository(t)
	repo.On("Get", mock.Anything, testProspectID).Return(prospect.Prospect{ID: testProspectID}, true, nil).Once()
	repo.On("ApplyOnboarding", mock.Anything, testProspectID, mock.Anything).Return(dbErr).Once()

	err := NewOnboardingService(repo).Save(context.Background(), SaveOnboardingInput{ProspectID: testProspectID, Step: 3})
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected persistence failure not to map to a client error")
	}
}

func TestOnboardingService_Save_NegativeStep(t *testing.T) {
	t.Parallel()

	repo := prospectmock.NewRepository(t)
	err := NewOnboardingService(repo).Save(context.Background(), SaveOnboardingInput{ProspectID: testProspectID, Step: -1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
