package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/itp-onboarding/internal/domain/document"
	"github.com/riskibarqy/itp-onboarding/internal/domain/onboarding"
	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
	"github.com/riskibarqy/itp-onboarding/internal/platform/logging"
)

// WizardState is what the onboarding page renders.
type WizardState struct {
	Prospect  prospect.Prospect
	Flow      onboarding.Flow
	Draft     onboarding.Draft
	Completed bool
}

func (s WizardState) Step() int {
	return s.Flow.Clamp(s.Draft.Step)
}

func (s WizardState) Current() onboarding.Step {
	step, _ := s.Flow.StepAt(s.Step())
	return step
}

func (s WizardState) Last() bool {
	return s.Step() == s.Flow.Total()
}

type WizardService struct {
	prospectRepo prospect.Repository
	onboarding   *OnboardingService
	uploads      *UploadService
	drafts       onboarding.DraftStore
	logger       *logging.Logger
	now          func() time.Time
}

func NewWizardService(
	prospectRepo prospect.Repository,
	onboardingSvc *OnboardingService,
	uploads *UploadService,
	drafts onboarding.DraftStore,
	logger *logging.Logger,
) *WizardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &WizardService{
		prospectRepo: prospectRepo,
		onboarding:   onboardingSvc,
		uploads:      uploads,
		drafts:       drafts,
		logger:       logger,
		now:          time.Now,
	}
}

// Load returns the wizard for a prospect. A completed prospect always gets
// the completed state; otherwise the stored draft and the server record are
// reconciled by timestamp.
func (s *WizardService) Load(ctx context.Context, prospectID string) (WizardState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WizardService.Load")
	defer span.End()

	state, err := s.begin(ctx, prospectID)
	if err != nil || state.Completed {
		return state, err
	}

	draft, found, err := s.drafts.Load(ctx, state.Prospect.ID)
	if err != nil {
		// the draft is only a cache; fall back to the server record
		s.logger.WarnContext(ctx, "load onboarding draft failed", "prospect_id", state.Prospect.ID, "error", err)
		found = false
	}
	state.Draft = onboarding.Reconcile(state.Prospect, draft, found)
	return state, nil
}

// Update mirrors the draft without touching the server record.
func (s *WizardService) Update(ctx context.Context, prospectID string, draft onboarding.Draft) (WizardState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WizardService.Update")
	defer span.End()

	state, err := s.begin(ctx, prospectID)
	if err != nil || state.Completed {
		return state, err
	}
	state.Draft = s.mirror(ctx, state, draft)
	return state, nil
}

// Continue validates the current step, persists the form with the next step
// number and advances. Validation or persistence failures keep the step.
func (s *WizardService) Continue(ctx context.Context, prospectID string, draft onboarding.Draft) (WizardState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WizardService.Continue")
	defer span.End()

	return s.advance(ctx, prospectID, draft, func(flow onboarding.Flow, current int, d onboarding.Draft) (int, error) {
		return flow.Continue(current, d)
	})
}

// Skip leaves the travel step unanswered.
func (s *WizardService) Skip(ctx context.Context, prospectID string, draft onboarding.Draft) (WizardState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WizardService.Skip")
	defer span.End()

	return s.advance(ctx, prospectID, draft, func(flow onboarding.Flow, current int, _ onboarding.Draft) (int, error) {
		return flow.Skip(current)
	})
}

func (s *WizardService) Back(ctx context.Context, prospectID string, draft onboarding.Draft) (WizardState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WizardService.Back")
	defer span.End()

	state, err := s.begin(ctx, prospectID)
	if err != nil || state.Completed {
		return state, err
	}
	draft.Step = state.Flow.Back(state.Flow.Clamp(draft.Step))
	state.Draft = s.mirror(ctx, state, draft)
	return state, nil
}

// Submit validates every step, stores the form as completed and clears the
// draft. The draft survives any failure.
func (s *WizardService) Submit(ctx context.Context, prospectID string, draft onboarding.Draft) (WizardState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WizardService.Submit")
	defer span.End()

	state, err := s.begin(ctx, prospectID)
	if err != nil || state.Completed {
		return state, err
	}
	draft.Step = state.Flow.Clamp(draft.Step)
	state.Draft = s.mirror(ctx, state, draft)

	if err := state.Flow.ValidateAll(state.Draft); err != nil {
		return state, err
	}
	patch, err := state.Draft.Patch(state.Flow.Minor())
	if err != nil {
		return state, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.onboarding.Save(ctx, SaveOnboardingInput{
		ProspectID: state.Prospect.ID,
		Step:       state.Flow.Total(),
		Submit:     true,
		Patch:      patch,
	}); err != nil {
		return state, err
	}

	if err := s.drafts.Clear(ctx, state.Prospect.ID); err != nil {
		s.logger.WarnContext(ctx, "clear onboarding draft failed", "prospect_id", state.Prospect.ID, "error", err)
	}
	state.Completed = true
	state.Draft.Step = state.Flow.Total()
	return state, nil
}

// AttachDocument uploads a file for one document slot and records its key on
// the draft. An upload error leaves the rest of the draft as submitted.
func (s *WizardService) AttachDocument(ctx context.Context, prospectID string, draft onboarding.Draft, input UploadInput) (WizardState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WizardService.AttachDocument")
	defer span.End()

	state, err := s.begin(ctx, prospectID)
	if err != nil || state.Completed {
		return state, err
	}

	input.ProspectID = state.Prospect.ID
	result, uploadErr := s.uploads.Upload(ctx, input)
	if uploadErr == nil {
		draft.SetDocument(result.DocumentType, result.Path)
	}
	state.Draft = s.mirror(ctx, state, draft)
	return state, uploadErr
}

type stepFunc func(flow onboarding.Flow, current int, draft onboarding.Draft) (int, error)

func (s *WizardService) advance(ctx context.Context, prospectID string, draft onboarding.Draft, next stepFunc) (WizardState, error) {
	state, err := s.begin(ctx, prospectID)
	if err != nil || state.Completed {
		return state, err
	}

	current := state.Flow.Clamp(draft.Step)
	draft.Step = current
	state.Draft = s.mirror(ctx, state, draft)

	target, err := next(state.Flow, current, state.Draft)
	if err != nil {
		return state, err
	}

	patch, err := state.Draft.Patch(state.Flow.Minor())
	if err != nil {
		return state, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.onboarding.Save(ctx, SaveOnboardingInput{
		ProspectID: state.Prospect.ID,
		Step:       target,
		Patch:      patch,
	}); err != nil {
		return state, err
	}

	draft = state.Draft
	draft.Step = target
	state.Draft = s.mirror(ctx, state, draft)
	return state, nil
}

func (s *WizardService) begin(ctx context.Context, prospectID string) (WizardState, error) {
	item, err := loadProspect(ctx, s.prospectRepo, prospectID)
	if err != nil {
		return WizardState{}, err
	}
	flow := onboarding.NewFlow(item.MinorAtTrialStart(s.now()))
	state := WizardState{
		Prospect:  item,
		Flow:      flow,
		Completed: item.Completed(),
	}
	if state.Completed {
		state.Draft = onboarding.DraftFromProspect(item)
		state.Draft.Step = flow.Total()
	}
	return state, nil
}

// mirror stamps and stores the draft. Store failures are logged only.
func (s *WizardService) mirror(ctx context.Context, state WizardState, draft onboarding.Draft) onboarding.Draft {
	draft.ProspectID = state.Prospect.ID
	draft.SavedAt = s.now().UTC()
	if err := s.drafts.Save(ctx, draft); err != nil {
		s.logger.WarnContext(ctx, "save onboarding draft failed", "prospect_id", state.Prospect.ID, "error", err)
	}
	return draft
}

// DocumentSlots lists the upload slots shown on a wizard step.
func DocumentSlots(step onboarding.Step, minor bool) []document.Type {
	switch step {
	case onboarding.StepDocuments:
		if minor {
			return []document.Type{document.TypePassport, document.TypeParent1Passport, document.TypeParent2Passport}
		}
		return []document.Type{document.TypePassport}
	case onboarding.StepConsentForms:
		return []document.Type{document.TypeVollmacht, document.TypeWellpassConsent}
	}
	return nil
}
