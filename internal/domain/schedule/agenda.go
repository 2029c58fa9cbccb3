package schedule

import "time"

type AgendaDay struct {
	Date    time.Time
	Key     string
	Label   string
	Today   bool
	Entries []Entry
}

func (d AgendaDay) Rest() bool {
	return len(d.Entries) == 0
}

type Agenda struct {
	Confirmed bool
	Days      []AgendaDay
}

// BuildAgenda lists each day of [start, end] with its events sorted by start.
func BuildAgenda(events []Event, start, end *time.Time, opts Options) Agenda {
	opts = opts.normalized()
	days, ok := dateRange(start, end)
	if !ok {
		return Agenda{}
	}

	byDate := groupByDate(events, opts.hidden())
	todayKey := opts.todayKey()

	agenda := Agenda{Confirmed: true, Days: make([]AgendaDay, 0, len(days))}
	for _, d := range days {
		key := d.Format(dateKeyLayout)
		day := AgendaDay{
			Date:  d,
			Key:   key,
			Label: d.Format("Monday, Jan 2"),
			Today: key == todayKey,
		}
		for _, e := range byDate[key] {
			day.Entries = append(day.Entries, newEntry(e, opts.Location))
		}
		sortEntries(day.Entries)
		agenda.Days = append(agenda.Days, day)
	}
	return agenda
}
