package prospect

import (
	"strings"
	"time"
)

// DateLayout is the civil date format used for birth, trial and travel dates.
const DateLayout = "2006-01-02"

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusAccepted  Status = "accepted"
	StatusPlaced    Status = "placed"
	StatusDeclined  Status = "declined"
)

// Prospect is a trial candidate. Civil dates are stored at midnight UTC.
type Prospect struct {
	ID            string
	FirstName     string
	LastName      string
	DateOfBirth   *time.Time
	Position      string
	Nationality   string
	CurrentClub   string
	Email         string
	Phone         string
	ParentName    string
	ParentContact string

	TrialStartDate     *time.Time
	TrialEndDate       *time.Time
	TravelArrangements string
	Status             Status

	ArrivalDate    *time.Time
	ArrivalTime    string
	FlightNumber   string
	ArrivalAirport string
	NeedsPickup    *bool
	WhatsAppNumber string

	EquipmentSize       string
	SchengenLast180Days *bool
	SchengenEntryDate   *time.Time
	SchengenDaysSpent   *int
	IsUnder18           *bool

	PassportFilePath        string
	Parent1PassportFilePath string
	Parent2PassportFilePath string
	VollmachtFilePath       string
	WellpassConsentFilePath string

	OnboardingStep        int
	OnboardingCompletedAt *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (p Prospect) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p Prospect) Completed() bool {
	return p.OnboardingCompletedAt != nil && !p.OnboardingCompletedAt.IsZero()
}

// ShowsOnboarding reports whether the onboarding tab and preseason notice are visible.
func (p Prospect) ShowsOnboarding() bool {
	switch p.Status {
	case StatusAccepted, StatusPlaced:
		return true
	}
	return p.Completed()
}

// UnderAgeAt reports whether the prospect has not yet turned 18 on ref.
// An unknown birth date is treated as an adult.
func (p Prospect) UnderAgeAt(ref time.Time) bool {
	if p.DateOfBirth == nil {
		return false
	}
	dob := CivilDate(*p.DateOfBirth)
	return dob.AddDate(18, 0, 0).After(CivilDate(ref))
}

// MinorAtTrialStart evaluates UnderAgeAt against the trial start, or now when
// the trial has no start date yet.
func (p Prospect) MinorAtTrialStart(now time.Time) bool {
	ref := now
	if p.TrialStartDate != nil {
		ref = *p.TrialStartDate
	}
	return p.UnderAgeAt(ref)
}

func (p Prospect) TrialRangeLabel() string {
	if p.TrialStartDate == nil || p.TrialEndDate == nil {
		return ""
	}
	return p.TrialStartDate.Format("Jan 2") + " – " + p.TrialEndDate.Format("Jan 2")
}

// Apply copies the patch values onto the prospect. It mirrors what a SQL
// UPDATE of the same columns would do and is used by non-SQL backends.
func (p *Prospect) Apply(update Update) {
	p.OnboardingStep = update.Step
	for _, entry := range update.Patch.Entries() {
		applyEntry(p, entry)
	}
	if update.CompletedAt != nil {
		completedAt := *update.CompletedAt
		p.OnboardingCompletedAt = &completedAt
	}
}

// CivilDate truncates t to its calendar date at midnight UTC.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(value))
}

func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
