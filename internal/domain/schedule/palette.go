package schedule

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Style struct {
	Color string
	Label string
}

const fallbackColor = "#9ca3af"

var palette = map[string]Style{
	"team_training":       {Color: "#22c55e", Label: "Team Training"},
	"individual_training": {Color: "#16a34a", Label: "Individual Training"},
	"training":            {Color: "#22c55e", Label: "Training"},
	"trial":               {Color: "#22c55e", Label: "Trial"},
	"prospect_trial":      {Color: "#22c55e", Label: "Trial"},
	"gym":                 {Color: "#3b82f6", Label: "Gym"},
	"match":               {Color: "#ED1C24", Label: "Match"},
	"tournament":          {Color: "#ED1C24", Label: "Tournament"},
	"video_session":       {Color: "#6366f1", Label: "Video Session"},
	"medical":             {Color: "#ef4444", Label: "Medical"},
	"meeting":             {Color: "#64748b", Label: "Meeting"},
	"airport_pickup":      {Color: "#06b6d4", Label: "Airport Pickup"},
	"team_activity":       {Color: "#a78bfa", Label: "Team Activity"},
	"language_class":      {Color: "#f59e0b", Label: "Language Class"},
	"visa":                {Color: "#64748b", Label: "Visa"},
	"other":               {Color: fallbackColor, Label: "Other"},
}

// StyleFor never fails: unknown categories get the neutral colour and a
// label derived from the category name.
func StyleFor(eventType string) Style {
	if style, ok := palette[eventType]; ok {
		return style
	}
	return Style{Color: fallbackColor, Label: humanize(eventType)}
}

func humanize(eventType string) string {
	words := strings.FieldsFunc(eventType, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	if len(words) == 0 {
		return "Other"
	}
	for i, w := range words {
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + w[size:]
	}
	return strings.Join(words, " ")
}
