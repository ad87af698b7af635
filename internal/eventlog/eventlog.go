// Package eventlog is the append-only production log every projection is
// recomputed from.
package eventlog

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopfloor/internal/storage"
)

var ErrInvalidEvent = errors.New("invalid event")

// Store persists the log. AppendEvent must keep insertion order so that
// events sharing a timestamp stay in the order they were logged.
type Store interface {
	AppendEvent(ctx context.Context, ev storage.Event) error
	ListEvents(ctx context.Context) ([]storage.Event, error)
	ResetEvents(ctx context.Context) error
}

type Log struct {
	store Store
}

func New(store Store) *Log {
	return &Log{store: store}
}

// Append validates the required fields and hands the event to the store.
// A UID is generated when the caller did not provide one, so a retried
// request carrying the same UID is stored once.
func (l *Log) Append(ctx context.Context, ev storage.Event) (storage.Event, error) {
	const op = "eventlog.Append"

	if err := Validate(ev); err != nil {
		return storage.Event{}, fmt.Errorf("%s: %w", op, err)
	}
	if ev.UID == "" {
		ev.UID = uuid.NewString()
	}

	if err := l.store.AppendEvent(ctx, ev); err != nil {
		return storage.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return ev, nil
}

func Validate(ev storage.Event) error {
	switch {
	case ev.Timestamp.IsZero():
		return fmt.Errorf("%w: timestamp is required", ErrInvalidEvent)
	case strings.TrimSpace(ev.StationID) == "":
		return fmt.Errorf("%w: station is required", ErrInvalidEvent)
	}
	if _, err := storage.ParseStage(string(ev.Stage)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return nil
}

// Reset empties the whole log. It cannot be undone.
func (l *Log) Reset(ctx context.Context) error {
	const op = "eventlog.Reset"

	if err := l.store.ResetEvents(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Snapshot reads the store once and returns the events in log order:
// by timestamp, ties broken by insertion order.
func (l *Log) Snapshot(ctx context.Context) ([]storage.Event, error) {
	const op = "eventlog.Snapshot"

	events, err := l.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return Sorted(events), nil
}

// All returns a restartable sequence over the whole log.
func (l *Log) All(ctx context.Context) (iter.Seq[storage.Event], error) {
	events, err := l.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Values(events), nil
}

// Since returns a restartable sequence over the events at or after from.
func (l *Log) Since(ctx context.Context, from time.Time) (iter.Seq[storage.Event], error) {
	events, err := l.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Values(Window(events, from)), nil
}

// Sorted returns a copy of events in log order.
func Sorted(events []storage.Event) []storage.Event {
	out := slices.Clone(events)
	slices.SortStableFunc(out, func(a, b storage.Event) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		}
		return 0
	})
	return out
}

// Window keeps the events at or after from. Input order is preserved.
func Window(events []storage.Event, from time.Time) []storage.Event {
	out := make([]storage.Event, 0, len(events))
	for _, ev := range events {
		if !ev.Timestamp.Before(from) {
			out = append(out, ev)
		}
	}
	return out
}
