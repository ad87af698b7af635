package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shopfloor/internal/shift"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

type Stage string

const (
	StageSetup         Stage = "setup"
	StageStationA      Stage = "station-A"
	StageStationB1     Stage = "station-B1"
	StageStationB2     Stage = "station-B2"
	StageReport        Stage = "report"
	StageTeardown      Stage = "teardown"
	StageDone          Stage = "done"
	StageCall          Stage = "adjustment-call"
	StageIncidentStart Stage = "incident-start"
	StageIncidentEnd   Stage = "incident-end"
)

// Maintenance events written by an adjuster do not reference a unit.
const (
	MaintenanceSerial  = "MAINTENANCE"
	MaintenanceDisplay = "System"
)

// CompleteThreshold is the progress at which a unit counts as produced.
const CompleteThreshold = 95

var stages = []Stage{
	StageSetup, StageStationA, StageStationB1, StageStationB2, StageReport,
	StageTeardown, StageDone, StageCall, StageIncidentStart, StageIncidentEnd,
}

var progress = map[Stage]int{
	StageSetup:     5,
	StageStationA:  15,
	StageStationB1: 30,
	StageStationB2: 65,
	StageReport:    90,
	StageTeardown:  95,
	StageDone:      100,
}

var remaining = map[Stage]int{
	StageSetup:     245,
	StageStationA:  210,
	StageStationB1: 175,
	StageStationB2: 85,
	StageReport:    45,
	StageTeardown:  25,
	StageDone:      0,
}

// defaultRemaining is shown for stages missing from the remaining-time table.
const defaultRemaining = 30

func ParseStage(s string) (Stage, error) {
	for _, st := range stages {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown stage %q", s)
}

// IsMaintenance reports whether the stage belongs to a downtime cycle
// rather than to the production of a unit.
func (s Stage) IsMaintenance() bool {
	return s == StageCall || s == StageIncidentStart || s == StageIncidentEnd
}

// Releasing stages end a station's claim on the unit they reference.
func (s Stage) IsReleasing() bool {
	return s == StageDone || s == StageIncidentEnd
}

func (s Stage) Progress() int {
	return progress[s]
}

func (s Stage) RemainingMinutes() int {
	if m, ok := remaining[s]; ok {
		return m
	}
	return defaultRemaining
}

// Event is one immutable row of the production log.
type Event struct {
	Seq         int64     `json:"seq"`
	UID         string    `json:"uid"`
	Timestamp   time.Time `json:"timestamp"`
	StationID   string    `json:"station_id"`
	UnitSerial  string    `json:"unit_serial"`
	UnitDisplay string    `json:"unit_display"`
	Stage       Stage     `json:"stage"`
	Note        string    `json:"note"`
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"

	rowFields       = 7
	legacyRowFields = 6
)

// Row encodes the event as the seven persisted columns:
// date, time, station, serial, display, stage, note.
func (e Event) Row() []string {
	ts := e.Timestamp.In(shift.Location)
	return []string{
		ts.Format(DateLayout),
		ts.Format(TimeLayout),
		e.StationID,
		e.UnitSerial,
		e.UnitDisplay,
		string(e.Stage),
		e.Note,
	}
}

// ParseRow decodes a persisted row. Legacy rows written before the note
// column existed have six fields and get an empty note.
func ParseRow(fields []string) (Event, error) {
	const op = "storage.ParseRow"

	if len(fields) != rowFields && len(fields) != legacyRowFields {
		return Event{}, fmt.Errorf("%s: expected %d fields, got %d", op, rowFields, len(fields))
	}

	ts, err := time.ParseInLocation(DateLayout+" "+TimeLayout,
		strings.TrimSpace(fields[0])+" "+strings.TrimSpace(fields[1]), shift.Location)
	if err != nil {
		return Event{}, fmt.Errorf("%s: timestamp: %w", op, err)
	}

	stage, err := ParseStage(strings.TrimSpace(fields[5]))
	if err != nil {
		return Event{}, fmt.Errorf("%s: %w", op, err)
	}

	ev := Event{
		Timestamp:   ts,
		StationID:   strings.TrimSpace(fields[2]),
		UnitSerial:  strings.TrimSpace(fields[3]),
		UnitDisplay: strings.TrimSpace(fields[4]),
		Stage:       stage,
	}
	if len(fields) == rowFields {
		ev.Note = fields[6]
	}

	return ev, nil
}
