package postgres

import (
	"database/sql"
	"time"
)

type trialProspectTableModel struct {
	ID                 string         `db:"id"`
	FirstName          string         `db:"first_name"`
	LastName           string         `db:"last_name"`
	DateOfBirth        sql.NullTime   `db:"date_of_birth"`
	Position           sql.NullString `db:"position"`
	Nationality        sql.NullString `db:"nationality"`
	CurrentClub        sql.NullString `db:"current_club"`
	Email              sql.NullString `db:"email"`
	Phone              sql.NullString `db:"phone"`
	ParentName         sql.NullString `db:"parent_name"`
	ParentContact      sql.NullString `db:"parent_contact"`
	TrialStartDate     sql.NullTime   `db:"trial_start_date"`
	TrialEndDate       sql.NullTime   `db:"trial_end_date"`
	TravelArrangements sql.NullString `db:"travel_arrangements"`
	Status             string         `db:"status"`

	ArrivalDate    sql.NullTime   `db:"arrival_date"`
	ArrivalTime    sql.NullString `db:"arrival_time"`
	FlightNumber   sql.NullString `db:"flight_number"`
	ArrivalAirport sql.NullString `db:"arrival_airport"`
	NeedsPickup    sql.NullBool   `db:"needs_pickup"`
	WhatsAppNumber sql.NullString `db:"whatsapp_number"`

	EquipmentSize       sql.NullString `db:"equipment_size"`
	SchengenLast180Days sql.NullBool   `db:"schengen_last_180_days"`
	SchengenEntryDate   sql.NullTime   `db:"schengen_entry_date"`
	SchengenDaysSpent   sql.NullInt64  `db:"schengen_days_spent"`
	IsUnder18           sql.NullBool   `db:"is_under_18"`

	PassportFilePath        sql.NullString `db:"passport_file_path"`
	Parent1PassportFilePath sql.NullString `db:"parent1_passport_file_path"`
	Parent2PassportFilePath sql.NullString `db:"parent2_passport_file_path"`
	VollmachtFilePath       sql.NullString `db:"vollmacht_file_path"`
	WellpassConsentFilePath sql.NullString `db:"wellpass_consent_file_path"`

	OnboardingStep        sql.NullInt64 `db:"onboarding_step"`
	OnboardingCompletedAt sql.NullTime  `db:"onboarding_completed_at"`
	CreatedAt             time.Time     `db:"created_at"`
	UpdatedAt             time.Time     `db:"updated_at"`
}

// trialProspectColumns is selected explicitly so TIME columns come back as text.
var trialProspectColumns = []string{
	"id::text AS id",
	"first_name",
	"last_name",
	"date_of_birth",
	"position",
	"nationality",
	"current_club",
	"email",
	"phone",
	"parent_name",
	"parent_contact",
	"trial_start_date",
	"trial_end_date",
	"travel_arrangements",
	"status",
	"arrival_date",
	"arrival_time::text AS arrival_time",
	"flight_number",
	"arrival_airport",
	"needs_pickup",
	"whatsapp_number",
	"equipment_size",
	"schengen_last_180_days",
	"schengen_entry_date",
	"schengen_days_spent",
	"is_under_18",
	"passport_file_path",
	"parent1_passport_file_path",
	"parent2_passport_file_path",
	"vollmacht_file_path",
	"wellpass_consent_file_path",
	"onboarding_step",
	"onboarding_completed_at",
	"created_at",
	"updated_at",
}

type eventTableModel struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Date        string         `db:"date"`
	StartTime   sql.NullString `db:"start_time"`
	EndTime     sql.NullString `db:"end_time"`
	Type        sql.NullString `db:"type"`
	Location    sql.NullString `db:"location"`
	AllDay      bool           `db:"all_day"`
}

type locationTableModel struct {
	ID       string         `db:"id"`
	Site     string         `db:"itp_site"`
	Category string         `db:"category"`
	Name     string         `db:"name"`
	Address  string         `db:"address"`
	MapsURL  sql.NullString `db:"maps_url"`
}
