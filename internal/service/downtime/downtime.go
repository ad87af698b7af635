// Package downtime rebuilds maintenance cycles (call, start of repair,
// end of repair) from the event log.
package downtime

import (
	"sort"
	"time"

	"shopfloor/internal/storage"
	"shopfloor/internal/unit"
)

type Cycle struct {
	StationID     string     `json:"station_id"`
	Unit          string     `json:"unit"`
	Cause         string     `json:"cause"`
	CallTime      *time.Time `json:"call_time,omitempty"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	WaitMinutes   int        `json:"wait_minutes"`
	RepairMinutes int        `json:"repair_minutes"`
}

func (c Cycle) LostMinutes() int {
	return c.WaitMinutes + c.RepairMinutes
}

// OpenedAt is the call time, or the start of repair when nobody called.
func (c Cycle) OpenedAt() time.Time {
	if c.CallTime != nil {
		return *c.CallTime
	}
	return c.StartTime
}

type phase int

const (
	idle phase = iota
	awaitingTechnician
	inRepair
)

type machine struct {
	phase phase
	cycle Cycle
}

// Result holds the completed cycles in chronological order of their end,
// plus the maintenance events that did not fit the expected sequence.
type Result struct {
	Cycles  []Cycle         `json:"cycles"`
	Ignored []storage.Event `json:"ignored,omitempty"`
}

// Reconstruct runs one state machine per station over the maintenance
// events. Events out of sequence (an end with nothing open, a second call
// or start while a cycle is running) are ignored and reported; no cycle is
// ever synthesized for them. Cycles still open at the end of the log are
// not returned.
func Reconstruct(events []storage.Event) Result {
	var res Result
	stations := make(map[string]*machine)

	for _, ev := range events {
		if !ev.Stage.IsMaintenance() {
			continue
		}

		m, ok := stations[ev.StationID]
		if !ok {
			m = &machine{}
			stations[ev.StationID] = m
		}

		switch {
		case ev.Stage == storage.StageCall && m.phase == idle:
			ts := ev.Timestamp
			m.cycle = Cycle{
				StationID: ev.StationID,
				Unit:      unit.StripDisplay(ev.UnitDisplay),
				Cause:     ev.Note,
				CallTime:  &ts,
			}
			m.phase = awaitingTechnician

		case ev.Stage == storage.StageIncidentStart && m.phase == awaitingTechnician:
			m.cycle.StartTime = ev.Timestamp
			m.phase = inRepair

		case ev.Stage == storage.StageIncidentStart && m.phase == idle:
			m.cycle = Cycle{
				StationID: ev.StationID,
				Unit:      unit.StripDisplay(ev.UnitDisplay),
				Cause:     ev.Note,
				StartTime: ev.Timestamp,
			}
			m.phase = inRepair

		case ev.Stage == storage.StageIncidentEnd && m.phase == inRepair:
			c := m.cycle
			c.EndTime = ev.Timestamp
			if c.CallTime != nil {
				c.WaitMinutes = minutes(c.StartTime.Sub(*c.CallTime))
			}
			c.RepairMinutes = minutes(c.EndTime.Sub(c.StartTime))
			res.Cycles = append(res.Cycles, c)
			*m = machine{}

		default:
			res.Ignored = append(res.Ignored, ev)
		}
	}

	return res
}

// minutes truncates to whole minutes, as the shop-floor report always has.
func minutes(d time.Duration) int {
	return int(d / time.Minute)
}

type Summary struct {
	Count         int `json:"count"`
	WaitMinutes   int `json:"wait_minutes"`
	RepairMinutes int `json:"repair_minutes"`
	LostMinutes   int `json:"lost_minutes"`
}

func Summarize(cycles []Cycle) Summary {
	var s Summary
	for _, c := range cycles {
		s.Count++
		s.WaitMinutes += c.WaitMinutes
		s.RepairMinutes += c.RepairMinutes
	}
	s.LostMinutes = s.WaitMinutes + s.RepairMinutes
	return s
}

type StationSummary struct {
	StationID string `json:"station_id"`
	Summary
}

// ByStation groups the totals per station, sorted by station id.
func ByStation(cycles []Cycle) []StationSummary {
	grouped := make(map[string][]Cycle)
	for _, c := range cycles {
		grouped[c.StationID] = append(grouped[c.StationID], c)
	}

	out := make([]StationSummary, 0, len(grouped))
	for id, cs := range grouped {
		out = append(out, StationSummary{StationID: id, Summary: Summarize(cs)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StationID < out[j].StationID })

	return out
}
