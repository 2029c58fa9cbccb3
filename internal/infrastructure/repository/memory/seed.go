package memory

import (
	"time"

	"github.com/riskibarqy/itp-onboarding/internal/domain/location"
	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
	"github.com/riskibarqy/itp-onboarding/internal/domain/schedule"
)

const (
	DemoProspectID = "a1b2c3d4-e5f6-7890-abcd-ef1234567890"
	SiteCologne    = "Köln"
)

// seedOffset is CET; the demo trial week is before the March clock change.
const seedOffset = "+01:00"

func SeedProspects() []prospect.Prospect {
	created := time.Date(2026, 2, 16, 9, 0, 0, 0, time.UTC)
	return []prospect.Prospect{
		{
			ID:             DemoProspectID,
			FirstName:      "Nehemiah",
			LastName:       "Mason",
			DateOfBirth:    seedDate(2007, time.March, 15),
			Position:       "CM",
			Nationality:    "USA",
			CurrentClub:    "FC Dallas Academy",
			TrialStartDate: seedDate(2026, time.March, 2),
			TrialEndDate:   seedDate(2026, time.March, 8),
			Status:         prospect.StatusScheduled,
			CreatedAt:      created,
			UpdatedAt:      created,
		},
	}
}

func SeedEvents() []schedule.Event {
	return []schedule.Event{
		seedEvent("evt-0302-training", "2026-03-02", "Training", "09:00", "11:00", "team_training", "Salzburger Weg"),
		seedEvent("evt-0302-lunch", "2026-03-02", "Lunch", "12:00", "13:00", "other", "Spoho Mensa"),
		seedEvent("evt-0302-gym", "2026-03-02", "Gym", "14:00", "15:30", "gym", "BluePIT Lövenich"),

		seedEvent("evt-0303-training", "2026-03-03", "Training", "09:00", "11:00", "team_training", "Salzburger Weg"),
		seedEvent("evt-0303-lunch", "2026-03-03", "Lunch", "12:00", "13:00", "other", "Spoho Mensa"),
		seedEvent("evt-0303-german", "2026-03-03", "German Class", "14:00", "15:30", "language_class", "Sportinternat"),

		seedEvent("evt-0304-training", "2026-03-04", "Training", "09:00", "11:00", "team_training", "Salzburger Weg"),
		seedEvent("evt-0304-lunch", "2026-03-04", "Lunch", "12:00", "13:00", "other", "Spoho Mensa"),
		seedEvent("evt-0304-gym", "2026-03-04", "Gym", "14:00", "15:30", "gym", "BluePIT Lövenich"),

		seedEvent("evt-0305-training", "2026-03-05", "Training", "09:00", "11:00", "team_training", "Salzburger Weg"),
		seedEvent("evt-0305-lunch", "2026-03-05", "Lunch", "12:00", "13:00", "other", "Spoho Mensa"),
		seedEvent("evt-0305-german", "2026-03-05", "German Class", "14:00", "15:30", "language_class", "Sportinternat"),

		seedEvent("evt-0306-training", "2026-03-06", "Training", "09:00", "11:00", "team_training", "Salzburger Weg"),
		seedEvent("evt-0306-lunch", "2026-03-06", "Lunch", "12:00", "13:00", "other", "Spoho Mensa"),
		seedEvent("evt-0306-gym", "2026-03-06", "Gym", "14:00", "15:30", "gym", "BluePIT Lövenich"),

		seedEvent("evt-0307-match", "2026-03-07", "Match Day", "10:00", "12:00", "match", "Salzburger Weg"),
		seedEvent("evt-0307-lunch", "2026-03-07", "Lunch", "12:30", "13:30", "other", "Spoho Mensa"),
	}
}

func SeedLocations() []location.Location {
	return []location.Location{
		{ID: "loc-housing", Site: SiteCologne, Category: location.CategoryHousing, Name: "TBD", Address: "To be confirmed"},
		{ID: "loc-training", Site: SiteCologne, Category: location.CategoryTraining, Name: "Kunstrasenplätze Salzburger Weg", Address: "Salzburger Weg, 50858 Köln-Junkersdorf", MapsURL: "https://maps.google.com/?q=Salzburger+Weg+50858+Köln"},
		{ID: "loc-gym", Site: SiteCologne, Category: location.CategoryGym, Name: "BluePIT Lövenich", Address: "Dieselstraße 6, 50859 Köln", MapsURL: "https://maps.google.com/?q=Dieselstraße+6+50859+Köln"},
		{ID: "loc-language", Site: SiteCologne, Category: location.CategoryLanguageSchool, Name: "1. FC Köln Sportinternat", Address: "Olympiaweg 3, 50933 Köln", MapsURL: "https://maps.google.com/?q=Olympiaweg+3+50933+Köln"},
		{ID: "loc-dining", Site: SiteCologne, Category: location.CategoryDining, Name: "Spoho Mensa", Address: "Am Sportpark Müngersdorf 6, 50933 Köln", MapsURL: "https://maps.google.com/?q=Am+Sportpark+Müngersdorf+6+50933+Köln"},
		{ID: "loc-physio", Site: SiteCologne, Category: location.CategoryPhysio, Name: "ALC Physiolab", Address: "Goltsteinstrasse 87a, 50968 Köln", MapsURL: "https://maps.google.com/?q=Goltsteinstrasse+87a+50968+Köln"},
		{ID: "loc-station", Site: SiteCologne, Category: location.CategoryTrainStation, Name: "TBD", Address: "To be confirmed"},
		{ID: "loc-leisure", Site: SiteCologne, Category: location.CategoryLeisure, Name: "Kölner Dom", Address: "Domkloster 4, 50667 Köln", MapsURL: "https://maps.google.com/?q=Domkloster+4+50667+Köln"},
	}
}

func seedEvent(id, date, title, start, end, eventType, place string) schedule.Event {
	return schedule.Event{
		ID:          id,
		Title:       title,
		Description: "TRIAL_SEED_DATA",
		Date:        date,
		StartTime:   date + "T" + start + ":00" + seedOffset,
		EndTime:     date + "T" + end + ":00" + seedOffset,
		Type:        eventType,
		Location:    place,
	}
}

func seedDate(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
