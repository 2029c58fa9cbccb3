package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
	qb "github.com/riskibarqy/itp-onboarding/internal/platform/querybuilder"
)

const trialProspectsTable = "trial_prospects"

type ProspectRepository struct {
	db *sqlx.DB
}

func NewProspectRepository(db *sqlx.DB) *ProspectRepository {
	return &ProspectRepository{db: db}
}

func (r *ProspectRepository) Get(ctx context.Context, id string) (prospect.Prospect, bool, error) {
	query, args, err := qb.Select(trialProspectColumns...).
		From(trialProspectsTable).
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return prospect.Prospect{}, false, fmt.Errorf("build get trial prospect query: %w", err)
	}

	var row trialProspectTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prospect.Prospect{}, false, nil
		}
		return prospect.Prospect{}, false, fmt.Errorf("get trial prospect: %w", err)
	}

	return prospectFromRow(row), true, nil
}

func (r *ProspectRepository) ApplyOnboarding(ctx context.Context, id string, update prospect.Update) error {
	builder := qb.Update(trialProspectsTable).
		Set("onboarding_step", update.Step)
	for _, entry := range update.Patch.Entries() {
		builder.Set(string(entry.Field), columnValue(entry.Value))
	}
	if update.CompletedAt != nil {
		builder.Set("onboarding_completed_at", update.CompletedAt.UTC())
	}

	query, args, err := builder.
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build apply onboarding query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("apply onboarding: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("apply onboarding rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id=%s", prospect.ErrNotFound, id)
	}

	return nil
}

// columnValue sends civil dates as text so the DATE cast ignores the session zone.
func columnValue(value any) any {
	if t, ok := value.(time.Time); ok {
		return t.Format(prospect.DateLayout)
	}
	return value
}

func prospectFromRow(row trialProspectTableModel) prospect.Prospect {
	return prospect.Prospect{
		ID:                 row.ID,
		FirstName:          row.FirstName,
		LastName:           row.LastName,
		DateOfBirth:        nullableDate(row.DateOfBirth),
		Position:           nullableText(row.Position),
		Nationality:        nullableText(row.Nationality),
		CurrentClub:        nullableText(row.CurrentClub),
		Email:              nullableText(row.Email),
		Phone:              nullableText(row.Phone),
		ParentName:         nullableText(row.ParentName),
		ParentContact:      nullableText(row.ParentContact),
		TrialStartDate:     nullableDate(row.TrialStartDate),
		TrialEndDate:       nullableDate(row.TrialEndDate),
		TravelArrangements: nullableText(row.TravelArrangements),
		Status:             prospect.Status(row.Status),

		ArrivalDate:    nullableDate(row.ArrivalDate),
		ArrivalTime:    clockText(row.ArrivalTime),
		FlightNumber:   nullableText(row.FlightNumber),
		ArrivalAirport: nullableText(row.ArrivalAirport),
		NeedsPickup:    nullableBool(row.NeedsPickup),
		WhatsAppNumber: nullableText(row.WhatsAppNumber),

		EquipmentSize:       nullableText(row.EquipmentSize),
		SchengenLast180Days: nullableBool(row.SchengenLast180Days),
		SchengenEntryDate:   nullableDate(row.SchengenEntryDate),
		SchengenDaysSpent:   nullableInt(row.SchengenDaysSpent),
		IsUnder18:           nullableBool(row.IsUnder18),

		PassportFilePath:        nullableText(row.PassportFilePath),
		Parent1PassportFilePath: nullableText(row.Parent1PassportFilePath),
		Parent2PassportFilePath: nullableText(row.Parent2PassportFilePath),
		VollmachtFilePath:       nullableText(row.VollmachtFilePath),
		WellpassConsentFilePath: nullableText(row.WellpassConsentFilePath),

		OnboardingStep:        int(row.OnboardingStep.Int64),
		OnboardingCompletedAt: nullableTimestamp(row.OnboardingCompletedAt),
		CreatedAt:             row.CreatedAt.UTC(),
		UpdatedAt:             row.UpdatedAt.UTC(),
	}
}
