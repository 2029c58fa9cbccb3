package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Window is the inclusive range of hour rows shown on the grid.
type Window struct {
	StartHour int
	EndHour   int
}

func (w Window) Rows() int {
	return w.EndHour - w.StartHour + 1
}

type HourMark struct {
	Hour  int
	Label string
	Top   float64
}

// Block is a timed event placed on the grid. Lane and Lanes describe its
// horizontal slot among overlapping blocks of the same day.
type Block struct {
	Entry
	Top    float64
	Height float64
	Lane   int
	Lanes  int
}

func (b Block) LeftPercent() float64 {
	if b.Lanes <= 0 {
		return 0
	}
	return 100 * float64(b.Lane) / float64(b.Lanes)
}

func (b Block) WidthPercent() float64 {
	if b.Lanes <= 0 {
		return 100
	}
	return 100 / float64(b.Lanes)
}

type Day struct {
	Date    time.Time
	Key     string
	Weekday string
	Label   string
	Today   bool
	Blocks  []Block
	Untimed []Entry
}

type Week struct {
	Confirmed bool
	Window    Window
	Hours     []HourMark
	Height    float64
	Days      []Day
}

// BuildWeek lays events out on a day-by-hour grid for the inclusive range
// [start, end]. Events missing a start or end go to the day's untimed strip.
func BuildWeek(events []Event, start, end *time.Time, opts Options) Week {
	opts = opts.normalized()
	days, ok := dateRange(start, end)
	if !ok {
		return Week{}
	}

	byDate := groupByDate(events, opts.hidden())
	todayKey := opts.todayKey()

	week := Week{Confirmed: true, Days: make([]Day, 0, len(days))}
	var timed []Entry
	perDay := make([][]Entry, len(days))
	for i, d := range days {
		key := d.Format(dateKeyLayout)
		day := Day{
			Date:    d,
			Key:     key,
			Weekday: d.Format("Mon"),
			Label:   d.Format("Jan 2"),
			Today:   key == todayKey,
		}
		for _, e := range byDate[key] {
			entry := newEntry(e, opts.Location)
			if entry.Timed() {
				perDay[i] = append(perDay[i], entry)
				timed = append(timed, entry)
				continue
			}
			day.Untimed = append(day.Untimed, entry)
		}
		week.Days = append(week.Days, day)
	}

	week.Window = hourWindow(timed)
	pxPerMinute := opts.PxPerHour / 60
	for h := week.Window.StartHour; h <= week.Window.EndHour; h++ {
		week.Hours = append(week.Hours, HourMark{
			Hour:  h,
			Label: fmt.Sprintf("%02d:00", h),
			Top:   float64(h-week.Window.StartHour) * opts.PxPerHour,
		})
	}
	week.Height = float64(week.Window.Rows()) * opts.PxPerHour

	windowStart := week.Window.StartHour * 60
	for i := range week.Days {
		blocks := make([]Block, 0, len(perDay[i]))
		for _, entry := range perDay[i] {
			duration := entry.EndMinutes - entry.StartMinutes
			height := float64(duration) * pxPerMinute
			if height < opts.MinBlockHeight {
				height = opts.MinBlockHeight
			}
			blocks = append(blocks, Block{
				Entry:  entry,
				Top:    float64(entry.StartMinutes-windowStart) * pxPerMinute,
				Height: height,
			})
		}
		assignLanes(blocks)
		week.Days[i].Blocks = blocks
	}

	return week
}

// hourWindow pads the earliest start and latest end by one hour, clamped to
// [0, 23], and falls back to 09-18 when nothing is timed.
func hourWindow(entries []Entry) Window {
	if len(entries) == 0 {
		return Window{StartHour: fallbackStartHour, EndHour: fallbackEndHour}
	}

	minStart, maxEnd := entries[0].StartMinutes, entries[0].EndMinutes
	for _, e := range entries {
		minStart = min(minStart, e.StartMinutes, e.EndMinutes)
		maxEnd = max(maxEnd, e.StartMinutes, e.EndMinutes)
	}

	startHour := minStart/60 - 1
	endHour := maxEnd/60 + 1
	if startHour < 0 {
		startHour = 0
	}
	if endHour > maxHour {
		endHour = maxHour
	}
	return Window{StartHour: startHour, EndHour: endHour}
}

// assignLanes places each block in the first free lane; blocks that overlap
// transitively share a cluster and the cluster's lane count.
func assignLanes(blocks []Block) {
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].Top != blocks[j].Top {
			return blocks[i].Top < blocks[j].Top
		}
		return blocks[i].Height > blocks[j].Height
	})

	var laneEnds []float64
	clusterStart := 0
	clusterEnd := 0.0
	flush := func(upto int) {
		for k := clusterStart; k < upto; k++ {
			blocks[k].Lanes = len(laneEnds)
		}
	}

	for i := range blocks {
		b := &blocks[i]
		if i > 0 && b.Top >= clusterEnd {
			flush(i)
			laneEnds = laneEnds[:0]
			clusterStart = i
		}

		lane := -1
		for l, end := range laneEnds {
			if end <= b.Top {
				lane = l
				break
			}
		}
		if lane < 0 {
			lane = len(laneEnds)
			laneEnds = append(laneEnds, 0)
		}
		laneEnds[lane] = b.Top + b.Height
		b.Lane = lane
		clusterEnd = max(clusterEnd, b.Top+b.Height)
	}
	flush(len(blocks))
}
