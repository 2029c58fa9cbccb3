package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClock returns minutes since midnight in loc. Values containing "T" are
// RFC 3339 timestamps and are converted to loc; anything else is read as a
// literal wall clock.
func ParseClock(raw string, loc *time.Location) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if strings.Contains(raw, "T") {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return 0, false
		}
		if loc != nil {
			t = t.In(loc)
		}
		return t.Hour()*60 + t.Minute(), true
	}

	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// FormatClock renders raw as "HH:MM" in loc, or "" when it cannot be read.
func FormatClock(raw string, loc *time.Location) string {
	minutes, ok := ParseClock(raw, loc)
	if !ok {
		return ""
	}
	return formatMinutes(minutes)
}

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
