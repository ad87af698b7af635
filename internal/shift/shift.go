// Package shift models the plant's weekly shift calendar.
//
// A week starts on Monday at 06:30 local time and holds nine shifts:
// a morning (06:30-14:50) and an evening (14:50-00:09 the next day, 00:09
// itself included) shift
// from Monday to Thursday, then a single Friday shift (06:30-15:50).
// Local time is fixed at UTC+1 with no daylight saving.
package shift

import "time"

// Location is the fixed plant time zone.
var Location = time.FixedZone("UTC+1", 60*60)

const (
	// TotalShifts is the number of shifts in a production week.
	TotalShifts = 9.0

	LabelMorning       = "morning"
	LabelEvening       = "evening"
	LabelFridayMorning = "morning (friday)"
	LabelOff           = "off-shift"
)

const (
	weekStartHour   = 6
	weekStartMinute = 30

	day = 24 * time.Hour
)

type window struct {
	label string
	start time.Duration
	end   time.Duration
	// closed windows still run at the exact end instant.
	closed bool
}

func (w window) over(since time.Duration) bool {
	if w.closed {
		return since > w.end
	}
	return since >= w.end
}

// windows are offsets from the Monday 06:30 week start.
var windows = buildWindows()

func buildWindows() []window {
	const (
		morningEnd = 8*time.Hour + 20*time.Minute  // 14:50
		eveningEnd = 17*time.Hour + 39*time.Minute // 00:09 next day
		fridayEnd  = 9*time.Hour + 20*time.Minute  // 15:50
	)

	ws := make([]window, 0, int(TotalShifts))
	for d := 0; d < 4; d++ {
		base := time.Duration(d) * day
		ws = append(ws,
			window{label: LabelMorning, start: base, end: base + morningEnd},
			window{label: LabelEvening, start: base + morningEnd, end: base + eveningEnd, closed: true},
		)
	}
	friday := 4 * day
	ws = append(ws, window{label: LabelFridayMorning, start: friday, end: friday + fridayEnd})

	return ws
}

// Now returns the current time in the plant zone.
func Now() time.Time {
	return time.Now().In(Location)
}

// StartOfWeek returns the Monday 06:30 on or before now. On a Monday
// before 06:30 the new week has not started yet and the previous
// Monday is returned.
func StartOfWeek(now time.Time) time.Time {
	now = now.In(Location)

	offset := (int(now.Weekday()) + 6) % 7 // Monday = 0
	monday := time.Date(now.Year(), now.Month(), now.Day()-offset,
		weekStartHour, weekStartMinute, 0, 0, Location)

	if now.Before(monday) {
		monday = monday.AddDate(0, 0, -7)
	}

	return monday
}

type Info struct {
	Label   string  `json:"label"`
	Elapsed float64 `json:"elapsed"`
}

// CurrentShiftInfo returns the running shift label and the number of
// shifts elapsed this week. A shift in progress counts as half done.
func CurrentShiftInfo(now time.Time) Info {
	since := now.Sub(StartOfWeek(now))

	info := Info{Label: LabelOff}
	for _, w := range windows {
		switch {
		case w.over(since):
			info.Elapsed++
		case since >= w.start:
			info.Label = w.label
			info.Elapsed += 0.5
		}
	}

	if info.Elapsed > TotalShifts {
		info.Elapsed = TotalShifts
	}

	return info
}
