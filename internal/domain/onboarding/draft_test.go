package onboarding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/itp-onboarding/internal/domain/document"
	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
)

func TestDraftFromProspect_Defaults(t *testing.T) {
	d := DraftFromProspect(prospect.Prospect{ID: "p-1"})

	assert.Equal(t, "CGN", d.ArrivalAirport)
	assert.True(t, d.NeedsPickup)
	assert.Equal(t, 1, d.Step)
	assert.Nil(t, d.SchengenLast180Days)
}

func TestDraftFromProspect_CopiesStoredAnswers(t *testing.T) {
	noPickup := false
	days := 14
	arrival := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	d := DraftFromProspect(prospect.Prospect{
		ID:                "p-1",
		ArrivalDate:       &arrival,
		ArrivalAirport:    "DUS",
		NeedsPickup:       &noPickup,
		SchengenDaysSpent: &days,
		PassportFilePath:  "p-1/passport_1.pdf",
		OnboardingStep:    3,
	})

	assert.Equal(t, "2026-03-01", d.ArrivalDate)
	assert.Equal(t, "DUS", d.ArrivalAirport)
	assert.False(t, d.NeedsPickup)
	assert.Equal(t, "14", d.SchengenDaysSpent)
	assert.Equal(t, "p-1/passport_1.pdf", d.Document(document.TypePassport))
	assert.Equal(t, 3, d.Step)
}

func TestReconcile_NewestWins(t *testing.T) {
	updated := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p := prospect.Prospect{ID: "p-1", EquipmentSize: "L", UpdatedAt: updated}

	newer := Draft{ProspectID: "p-1", EquipmentSize: "M", SavedAt: updated.Add(time.Minute)}
	assert.Equal(t, "M", Reconcile(p, newer, true).EquipmentSize)

	older := Draft{ProspectID: "p-1", EquipmentSize: "M", SavedAt: updated.Add(-time.Minute)}
	assert.Equal(t, "L", Reconcile(p, older, true).EquipmentSize)

	assert.Equal(t, "L", Reconcile(p, Draft{}, false).EquipmentSize)
}

func TestDraftPatch(t *testing.T) {
	d := Draft{
		ArrivalDate:       "2026-03-01",
		ArrivalTime:       "14:05",
		ArrivalAirport:    "CGN",
		NeedsPickup:       true,
		EquipmentSize:     "M",
		SchengenDaysSpent: "21 days",
		PassportPath:      "p-1/passport_1.pdf",
	}

	patch, err := d.Patch(true)
	require.NoError(t, err)

	flight, ok := patch.Get(prospect.FieldFlightNumber)
	assert.True(t, ok)
	assert.Nil(t, flight)

	days, _ := patch.Get(prospect.FieldSchengenDaysSpent)
	assert.Equal(t, 21, days)

	under18, ok := patch.Get(prospect.FieldIsUnder18)
	assert.True(t, ok)
	assert.Equal(t, true, under18)

	assert.True(t, patch.Has(prospect.FieldPassportFilePath))
	assert.False(t, patch.Has(prospect.FieldVollmachtFilePath))
}

func TestDraftPatch_InvalidDate(t *testing.T) {
	_, err := Draft{ArrivalDate: "01/03/2026"}.Patch(false)
	assert.ErrorIs(t, err, ErrInvalidDraft)
}

func TestDraftPatch_CoversEveryField(t *testing.T) {
	spent := false
	d := Draft{
		ArrivalDate:         "2026-03-01",
		ArrivalTime:         "14:05",
		FlightNumber:        "LH 123",
		ArrivalAirport:      "CGN",
		WhatsAppNumber:      "+49 170 0000000",
		EquipmentSize:       "M",
		SchengenLast180Days: &spent,
		SchengenEntryDate:   "2026-02-20",
		SchengenDaysSpent:   "abc",
		PassportPath:        "p-1/passport_1.pdf",
		Parent1PassportPath: "p-1/parent1_passport_1.pdf",
		Parent2PassportPath: "p-1/parent2_passport_1.pdf",
		VollmachtPath:       "p-1/vollmacht_1.pdf",
		WellpassPath:        "p-1/wellpass_consent_1.pdf",
	}

	patch, err := d.Patch(false)
	require.NoError(t, err)
	assert.Equal(t, len(prospect.Fields), patch.Len())

	last180, _ := patch.Get(prospect.FieldSchengenLast180Days)
	assert.Equal(t, false, last180)
	days, ok := patch.Get(prospect.FieldSchengenDaysSpent)
	assert.True(t, ok)
	assert.Nil(t, days)
}

func TestBuildPatch_ReportsRejectedValue(t *testing.T) {
	tests := []struct {
		name  string
		entry prospect.Entry
		want  error
	}{
		{name: "unknown field", entry: prospect.Entry{Field: "shoe_size", Value: "44"}, want: prospect.ErrUnknownField},
		{name: "wrong bool type", entry: prospect.Entry{Field: prospect.FieldIsUnder18, Value: "yes"}, want: prospect.ErrInvalidFieldValue},
		{name: "wrong int type", entry: prospect.Entry{Field: prospect.FieldSchengenDaysSpent, Value: "21"}, want: prospect.ErrInvalidFieldValue},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := buildPatch([]prospect.Entry{
				{Field: prospect.FieldNeedsPickup, Value: true},
				tc.entry,
			})
			require.ErrorIs(t, err, ErrInvalidDraft)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
