// Package assignment stops two stations from working on the same unit.
//
// The check reads the log and decides; nothing is reserved. Two stations
// starting the same unit at the same moment can both pass.
package assignment

import (
	"errors"
	"fmt"

	"shopfloor/internal/storage"
)

var ErrUnitClaimed = errors.New("unit already claimed")

type ConflictError struct {
	UnitDisplay string
	Holder      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s is being worked on by %s", ErrUnitClaimed, e.UnitDisplay, e.Holder)
}

func (e *ConflictError) Unwrap() error {
	return ErrUnitClaimed
}

// Check allows station to start display unless the latest event for that
// exact label still holds the unit at another station.
func Check(events []storage.Event, station, display string) error {
	var (
		last  storage.Event
		found bool
	)
	for _, ev := range events {
		if ev.UnitDisplay == display {
			last, found = ev, true
		}
	}

	if !found || last.Stage.IsReleasing() || last.StationID == station {
		return nil
	}

	return &ConflictError{UnitDisplay: display, Holder: last.StationID}
}
