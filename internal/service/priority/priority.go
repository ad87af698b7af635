// Package priority resolves the supervisor's priority list against the log.
package priority

import (
	"shopfloor/internal/storage"
	"shopfloor/internal/unit"
)

type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

type Entry struct {
	Rank   int                  `json:"rank"`
	Item   storage.PriorityItem `json:"item"`
	Status Status               `json:"status"`
	Holder string               `json:"holder,omitempty"`
}

type Board map[storage.Category][]Entry

// Resolve ranks the items by declaration order within their type and
// looks up each unit's latest event. Units are matched on their parsed id,
// so "MSN-12" never matches an event for "MSN-123".
func Resolve(items []storage.PriorityItem, events []storage.Event) Board {
	latest := make(map[string]storage.Event)
	for _, ev := range events {
		ref := unit.ParseDisplay(ev.UnitDisplay)
		if ref.IsZero() {
			continue
		}
		latest[ref.ID] = ev
	}

	board := make(Board)
	for _, item := range items {
		e := Entry{
			Rank:   len(board[item.Type]) + 1,
			Item:   item,
			Status: StatusNotStarted,
		}

		if ev, ok := latest[unit.ParseDisplay(item.UnitLabel).ID]; ok {
			e.Holder = ev.StationID
			e.Status = StatusInProgress
			if ev.Stage == storage.StageDone {
				e.Status = StatusDone
			}
		}

		board[item.Type] = append(board[item.Type], e)
	}

	return board
}
