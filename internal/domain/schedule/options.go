package schedule

import (
	"sort"
	"time"
)

const (
	DefaultPxPerHour      = 48.0
	DefaultMinBlockHeight = 24.0
	fallbackStartHour     = 9
	fallbackEndHour       = 18
	maxHour               = 23
)

// Options controls how events are projected for display.
type Options struct {
	Location       *time.Location
	Today          time.Time
	HiddenTypes    []string
	PxPerHour      float64
	MinBlockHeight float64
}

func (o Options) normalized() Options {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.PxPerHour <= 0 {
		o.PxPerHour = DefaultPxPerHour
	}
	if o.MinBlockHeight <= 0 {
		o.MinBlockHeight = DefaultMinBlockHeight
	}
	return o
}

func (o Options) hidden() map[string]struct{} {
	out := make(map[string]struct{}, len(o.HiddenTypes))
	for _, t := range o.HiddenTypes {
		out[t] = struct{}{}
	}
	return out
}

func (o Options) todayKey() string {
	if o.Today.IsZero() {
		return ""
	}
	return o.Today.In(o.Location).Format(dateKeyLayout)
}

const dateKeyLayout = "2006-01-02"

// dateRange lists civil dates from start to end inclusive. ok is false when
// the range is missing or inverted.
func dateRange(start, end *time.Time) ([]time.Time, bool) {
	if start == nil || end == nil {
		return nil, false
	}
	from := civil(*start)
	to := civil(*end)
	if to.Before(from) {
		return nil, false
	}

	days := make([]time.Time, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, true
}

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// groupByDate buckets visible events by their Date field, keeping input order.
func groupByDate(events []Event, hidden map[string]struct{}) map[string][]Event {
	out := make(map[string][]Event)
	for _, e := range events {
		if _, skip := hidden[e.Type]; skip {
			continue
		}
		out[e.Date] = append(out[e.Date], e)
	}
	return out
}

// Entry is an event with its display fields resolved.
type Entry struct {
	Event
	Start        string
	End          string
	StartMinutes int
	EndMinutes   int
	HasStart     bool
	HasEnd       bool
	Style        Style
}

func (e Entry) Timed() bool {
	return e.HasStart && e.HasEnd
}

func newEntry(e Event, loc *time.Location) Entry {
	entry := Entry{Event: e, Style: StyleFor(e.Type)}
	entry.StartMinutes, entry.HasStart = ParseClock(e.StartTime, loc)
	entry.EndMinutes, entry.HasEnd = ParseClock(e.EndTime, loc)
	if entry.HasStart {
		entry.Start = formatMinutes(entry.StartMinutes)
	}
	if entry.HasEnd {
		entry.End = formatMinutes(entry.EndMinutes)
	}
	return entry
}

// sortEntries orders entries by start time; entries without a start lead.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.HasStart != b.HasStart {
			return !a.HasStart
		}
		return a.StartMinutes < b.StartMinutes
	})
}
