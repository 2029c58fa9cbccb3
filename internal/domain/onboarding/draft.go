package onboarding

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/itp-onboarding/internal/domain/document"
	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
)

var ErrInvalidDraft = errors.New("invalid onboarding draft")

// Draft is the local scratch copy of the wizard form for one prospect.
type Draft struct {
	ProspectID string `json:"prospect_id"`

	ArrivalDate    string `json:"arrival_date"`
	ArrivalTime    string `json:"arrival_time"`
	FlightNumber   string `json:"flight_number"`
	ArrivalAirport string `json:"arrival_airport"`
	NeedsPickup    bool   `json:"needs_pickup"`
	WhatsAppNumber string `json:"whatsapp_number"`

	EquipmentSize       string `json:"equipment_size"`
	SchengenLast180Days *bool  `json:"schengen_last_180_days"`
	SchengenEntryDate   string `json:"schengen_entry_date"`
	SchengenDaysSpent   string `json:"schengen_days_spent"`

	PassportPath        string `json:"passport_file_path,omitempty"`
	Parent1PassportPath string `json:"parent1_passport_file_path,omitempty"`
	Parent2PassportPath string `json:"parent2_passport_file_path,omitempty"`
	VollmachtPath       string `json:"vollmacht_file_path,omitempty"`
	WellpassPath        string `json:"wellpass_consent_file_path,omitempty"`

	Step    int       `json:"step"`
	SavedAt time.Time `json:"saved_at"`
}

// DraftFromProspect seeds a draft from the stored record. Arrival point
// defaults to CGN and pickup to yes.
func DraftFromProspect(p prospect.Prospect) Draft {
	d := Draft{
		ProspectID:          p.ID,
		ArrivalDate:         prospect.FormatDate(p.ArrivalDate),
		ArrivalTime:         p.ArrivalTime,
		FlightNumber:        p.FlightNumber,
		ArrivalAirport:      p.ArrivalAirport,
		NeedsPickup:         true,
		WhatsAppNumber:      p.WhatsAppNumber,
		EquipmentSize:       p.EquipmentSize,
		SchengenLast180Days: p.SchengenLast180Days,
		SchengenEntryDate:   prospect.FormatDate(p.SchengenEntryDate),
		PassportPath:        p.PassportFilePath,
		Parent1PassportPath: p.Parent1PassportFilePath,
		Parent2PassportPath: p.Parent2PassportFilePath,
		VollmachtPath:       p.VollmachtFilePath,
		WellpassPath:        p.WellpassConsentFilePath,
		Step:                p.OnboardingStep,
		SavedAt:             p.UpdatedAt,
	}
	if d.ArrivalAirport == "" {
		d.ArrivalAirport = "CGN"
	}
	if p.NeedsPickup != nil {
		d.NeedsPickup = *p.NeedsPickup
	}
	if p.SchengenDaysSpent != nil {
		d.SchengenDaysSpent = strconv.Itoa(*p.SchengenDaysSpent)
	}
	if d.Step < 1 {
		d.Step = 1
	}
	return d
}

// Reconcile picks the draft or the server record, whichever was written
// last. Drafts are never merged field by field.
func Reconcile(p prospect.Prospect, draft Draft, found bool) Draft {
	if !found || draft.ProspectID != p.ID || p.UpdatedAt.After(draft.SavedAt) {
		return DraftFromProspect(p)
	}
	return draft
}

// SetDocument records an uploaded object key on the draft.
func (d *Draft) SetDocument(docType document.Type, key string) {
	switch docType {
	case document.TypePassport:
		d.PassportPath = key
	case document.TypeParent1Passport:
		d.Parent1PassportPath = key
	case document.TypeParent2Passport:
		d.Parent2PassportPath = key
	case document.TypeVollmacht:
		d.VollmachtPath = key
	case document.TypeWellpassConsent:
		d.WellpassPath = key
	}
}

func (d Draft) Document(docType document.Type) string {
	switch docType {
	case document.TypePassport:
		return d.PassportPath
	case document.TypeParent1Passport:
		return d.Parent1PassportPath
	case document.TypeParent2Passport:
		return d.Parent2PassportPath
	case document.TypeVollmacht:
		return d.VollmachtPath
	case document.TypeWellpassConsent:
		return d.WellpassPath
	}
	return ""
}

// Patch builds the save payload: blank text becomes NULL, the days counter
// is parsed leniently, is_under_18 is always sent and document paths only
// when present.
func (d Draft) Patch(minor bool) (prospect.Patch, error) {
	text := func(value string) any {
		if value = strings.TrimSpace(value); value == "" {
			return nil
		}
		return value
	}

	var last180, daysSpent any
	if d.SchengenLast180Days != nil {
		last180 = *d.SchengenLast180Days
	}
	if days, ok := leadingInt(d.SchengenDaysSpent); ok {
		daysSpent = days
	}

	entries := []prospect.Entry{
		{Field: prospect.FieldArrivalDate, Value: text(d.ArrivalDate)},
		{Field: prospect.FieldArrivalTime, Value: text(d.ArrivalTime)},
		{Field: prospect.FieldFlightNumber, Value: text(d.FlightNumber)},
		{Field: prospect.FieldArrivalAirport, Value: text(d.ArrivalAirport)},
		{Field: prospect.FieldWhatsAppNumber, Value: text(d.WhatsAppNumber)},
		{Field: prospect.FieldEquipmentSize, Value: text(d.EquipmentSize)},
		{Field: prospect.FieldSchengenEntryDate, Value: text(d.SchengenEntryDate)},
		{Field: prospect.FieldNeedsPickup, Value: d.NeedsPickup},
		{Field: prospect.FieldSchengenLast180Days, Value: last180},
		{Field: prospect.FieldSchengenDaysSpent, Value: daysSpent},
		{Field: prospect.FieldIsUnder18, Value: minor},
	}
	for _, docType := range []document.Type{
		document.TypePassport,
		document.TypeParent1Passport,
		document.TypeParent2Passport,
		document.TypeVollmacht,
		document.TypeWellpassConsent,
	} {
		if path := d.Document(docType); path != "" {
			entries = append(entries, prospect.Entry{Field: docType.Field(), Value: path})
		}
	}
	return buildPatch(entries)
}

// buildPatch stops at the first value the whitelist rejects.
func buildPatch(entries []prospect.Entry) (prospect.Patch, error) {
	patch := prospect.NewPatch()
	for _, e := range entries {
		if err := patch.Set(e.Field, e.Value); err != nil {
			return prospect.Patch{}, errors.Join(ErrInvalidDraft, err)
		}
	}
	return patch, nil
}

// leadingInt reads the leading decimal digits of s, like a form's number
// input would.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// DraftStore keeps drafts keyed by prospect ID.
type DraftStore interface {
	Load(ctx context.Context, prospectID string) (Draft, bool, error)
	Save(ctx context.Context, draft Draft) error
	Clear(ctx context.Context, prospectID string) error
}
