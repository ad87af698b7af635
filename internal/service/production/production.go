// Package production projects the event log onto stations and units.
// Every function is pure and expects events in log order.
package production

import (
	"time"

	"shopfloor/internal/storage"
	"shopfloor/internal/unit"
)

// SplitPure drops the maintenance events, leaving the production stages.
func SplitPure(events []storage.Event) []storage.Event {
	pure := make([]storage.Event, 0, len(events))
	for _, ev := range events {
		if !ev.Stage.IsMaintenance() {
			pure = append(pure, ev)
		}
	}
	return pure
}

// LatestByStation returns the last event of every station.
func LatestByStation(events []storage.Event) map[string]storage.Event {
	latest := make(map[string]storage.Event)
	for _, ev := range events {
		latest[ev.StationID] = ev
	}
	return latest
}

// LatestByUnit returns the last event of every unit serial. Callers pass
// pure production events.
func LatestByUnit(pure []storage.Event) map[string]storage.Event {
	latest := make(map[string]storage.Event)
	for _, ev := range pure {
		latest[ev.UnitSerial] = ev
	}
	return latest
}

type Counts struct {
	Series  int `json:"series"`
	Rework  int `json:"rework"`
	MIP     int `json:"mip"`
	Unknown int `json:"unknown"`
}

func (c *Counts) add(cat storage.Category) {
	switch cat {
	case storage.CategorySeries:
		c.Series++
	case storage.CategoryRework:
		c.Rework++
	case storage.CategoryMIP:
		c.MIP++
	default:
		c.Unknown++
	}
}

// CompletedByCategory counts the units whose latest state is complete.
// Completion is read off the final state, so re-running over a longer log
// never counts a unit twice.
func CompletedByCategory(latestByUnit map[string]storage.Event) Counts {
	var c Counts
	for serial, ev := range latestByUnit {
		if ev.Stage.Progress() >= storage.CompleteThreshold {
			c.add(unit.CategoryOf(serial))
		}
	}
	return c
}

type State string

const (
	StateIdle         State = "idle"
	StateFree         State = "free"
	StateProducing    State = "producing"
	StateCalling      State = "calling"
	StateIntervention State = "intervention"
)

// Card is what the live board shows for one station.
type Card struct {
	StationID        string           `json:"station_id"`
	State            State            `json:"state"`
	UnitSerial       string           `json:"unit_serial,omitempty"`
	UnitDisplay      string           `json:"unit_display,omitempty"`
	Category         storage.Category `json:"category,omitempty"`
	Stage            storage.Stage    `json:"stage,omitempty"`
	Progress         int              `json:"progress"`
	Note             string           `json:"note,omitempty"`
	Since            *time.Time       `json:"since,omitempty"`
	ElapsedMinutes   int              `json:"elapsed_minutes"`
	RemainingMinutes int              `json:"remaining_minutes"`
	ExpectedExit     *time.Time       `json:"expected_exit,omitempty"`
}

// StationCard combines the station's last event overall with its last
// production event. An open call wins over an intervention, which wins
// over production, which wins over idle.
func StationCard(station string, latestAll, latestPure map[string]storage.Event, now time.Time) Card {
	card := Card{StationID: station, State: StateIdle}

	abs, hasAbs := latestAll[station]
	prod, hasProd := latestPure[station]

	switch {
	case hasAbs && abs.Stage == storage.StageCall:
		card.State = StateCalling
		card.UnitSerial = abs.UnitSerial
		card.UnitDisplay = abs.UnitDisplay
		card.Note = abs.Note
		card.setSince(abs.Timestamp, now)

	case hasAbs && abs.Stage == storage.StageIncidentStart:
		card.State = StateIntervention
		card.UnitDisplay = storage.MaintenanceSerial
		if hasProd {
			card.UnitSerial = prod.UnitSerial
			card.UnitDisplay = prod.UnitDisplay
		}
		card.Note = abs.Note
		card.setSince(abs.Timestamp, now)

	case hasProd && prod.Stage.Progress() < 100:
		card.State = StateProducing
		card.UnitSerial = prod.UnitSerial
		card.UnitDisplay = prod.UnitDisplay
		card.Category = unit.CategoryOf(prod.UnitSerial)
		card.Stage = prod.Stage
		card.Progress = prod.Stage.Progress()
		card.RemainingMinutes = prod.Stage.RemainingMinutes()
		exit := now.Add(time.Duration(card.RemainingMinutes) * time.Minute)
		card.ExpectedExit = &exit
		card.setSince(prod.Timestamp, now)

	case hasProd:
		card.State = StateFree
	}

	return card
}

func (c *Card) setSince(ts, now time.Time) {
	c.Since = &ts
	c.ElapsedMinutes = int(now.Sub(ts).Minutes())
}

// Zone guesses which side of the station the open unit is on, to narrow
// the list of causes an operator can pick when calling for adjustment.
func Zone(latestPure map[string]storage.Event, station string) storage.CauseZone {
	ev, ok := latestPure[station]
	if !ok {
		return ""
	}

	switch ev.Stage {
	case storage.StageSetup, storage.StageStationA, storage.StageStationB1:
		return storage.ZoneLeft
	case storage.StageStationB2, storage.StageReport:
		return storage.ZoneRight
	default:
		return storage.ZoneGeneric
	}
}

// OpenUnit returns the unit a station is working on, if any: the latest
// production event when it is not done.
func OpenUnit(latestPure map[string]storage.Event, station string) (storage.Event, bool) {
	ev, ok := latestPure[station]
	if !ok || ev.Stage == storage.StageDone {
		return storage.Event{}, false
	}
	return ev, true
}
