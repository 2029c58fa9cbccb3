package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/itp-onboarding/internal/domain/location"
	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
	"github.com/riskibarqy/itp-onboarding/internal/domain/schedule"
)

type PortalConfig struct {
	Location        *time.Location
	Site            string
	HiddenTypes     []string
	PreseasonNotice string
}

type WelcomePage struct {
	Prospect        prospect.Prospect
	TrialRange      string
	Week            schedule.Week
	Agenda          schedule.Agenda
	Locations       []location.Location
	ShowOnboarding  bool
	Completed       bool
	PreseasonNotice string
}

type PortalService struct {
	prospectRepo prospect.Repository
	eventRepo    schedule.Repository
	locationRepo location.Repository
	cfg          PortalConfig
	now          func() time.Time
}

func NewPortalService(
	prospectRepo prospect.Repository,
	eventRepo schedule.Repository,
	locationRepo location.Repository,
	cfg PortalConfig,
) *PortalService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &PortalService{
		prospectRepo: prospectRepo,
		eventRepo:    eventRepo,
		locationRepo: locationRepo,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (s *PortalService) Prospect(ctx context.Context, prospectID string) (prospect.Prospect, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PortalService.Prospect")
	defer span.End()

	return loadProspect(ctx, s.prospectRepo, prospectID)
}

// Welcome assembles the info page. The prospect and the site's locations load
// concurrently; events follow once the trial range is known.
func (s *PortalService) Welcome(ctx context.Context, prospectID string) (WelcomePage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PortalService.Welcome")
	defer span.End()

	var (
		item      prospect.Prospect
		locations []location.Location
	)
	p := pool.New().WithContext(ctx).WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		item, err = loadProspect(ctx, s.prospectRepo, prospectID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		locations, err = s.locationRepo.ListBySite(ctx, s.cfg.Site)
		if err != nil {
			return fmt.Errorf("list locations: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return WelcomePage{}, err
	}

	var events []schedule.Event
	if item.TrialStartDate != nil && item.TrialEndDate != nil && !item.TrialEndDate.Before(*item.TrialStartDate) {
		var err error
		events, err = s.eventRepo.ListBetween(ctx, *item.TrialStartDate, *item.TrialEndDate)
		if err != nil {
			return WelcomePage{}, fmt.Errorf("list events: %w", err)
		}
	}

	opts := schedule.Options{
		Location:    s.cfg.Location,
		Today:       s.now(),
		HiddenTypes: s.cfg.HiddenTypes,
	}
	return WelcomePage{
		Prospect:        item,
		TrialRange:      item.TrialRangeLabel(),
		Week:            schedule.BuildWeek(events, item.TrialStartDate, item.TrialEndDate, opts),
		Agenda:          schedule.BuildAgenda(events, item.TrialStartDate, item.TrialEndDate, opts),
		Locations:       location.Primary(locations),
		ShowOnboarding:  item.ShowsOnboarding(),
		Completed:       item.Completed(),
		PreseasonNotice: s.cfg.PreseasonNotice,
	}, nil
}
