// Package dashboard recomputes every projection of the board from a
// single read of the log. Nothing is cached between calls.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"shopfloor/internal/catalog"
	"shopfloor/internal/eventlog"
	"shopfloor/internal/service/downtime"
	"shopfloor/internal/service/pacing"
	"shopfloor/internal/service/priority"
	"shopfloor/internal/service/production"
	"shopfloor/internal/shift"
	"shopfloor/internal/storage"
)

type EventSource interface {
	Snapshot(ctx context.Context) ([]storage.Event, error)
}

// Store holds the supervisor's settings.
type Store interface {
	GetObjective(ctx context.Context) (int, error)
	ListPriorities(ctx context.Context) ([]storage.PriorityItem, error)
	ListCauses(ctx context.Context) ([]storage.Cause, error)
}

var ErrUnknownStation = errors.New("unknown station")

type Service struct {
	log    *slog.Logger
	events EventSource
	store  Store

	stations         []string
	defaultObjective int
}

func NewService(log *slog.Logger, events EventSource, store Store, stations []string, defaultObjective int) *Service {
	if defaultObjective <= 0 {
		defaultObjective = storage.DefaultObjective
	}
	return &Service{
		log:              log,
		events:           events,
		store:            store,
		stations:         stations,
		defaultObjective: defaultObjective,
	}
}

type Snapshot struct {
	GeneratedAt time.Time         `json:"generated_at"`
	WeekStart   time.Time         `json:"week_start"`
	Shift       shift.Info        `json:"shift"`
	Completed   production.Counts `json:"completed"`
	Pace        pacing.Pace       `json:"pace"`
	Stations    []production.Card `json:"stations"`
	Priorities  priority.Board    `json:"priorities"`
}

// Snapshot builds the whole board at instant now. Station cards and
// completion counts only see the current shift week; the priority board
// scans the full log. An unreadable objective falls back to the default
// and unreadable priorities give an empty board; only a log failure is
// returned.
func (s *Service) Snapshot(ctx context.Context, now time.Time, whatIf *pacing.WhatIf) (Snapshot, error) {
	const op = "service.dashboard.Snapshot"

	var (
		events    []storage.Event
		objective int
		items     []storage.PriorityItem
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.events.Snapshot(gCtx)
		if err != nil {
			return fmt.Errorf("events: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		objective = s.Objective(gCtx)
		return nil
	})
	g.Go(func() error {
		var err error
		items, err = s.store.ListPriorities(gCtx)
		if err != nil {
			s.log.Warn("priorities unavailable", slog.String("op", op), slog.String("error", err.Error()))
			items = nil
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	return Build(now, events, objective, items, s.stations, whatIf), nil
}

// Objective returns the stored weekly target, or the default when none is
// stored or the store cannot be read.
func (s *Service) Objective(ctx context.Context) int {
	const op = "service.dashboard.Objective"

	v, err := s.store.GetObjective(ctx)
	switch {
	case err == nil && v > 0:
		return v
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		s.log.Warn("objective unavailable, using default", slog.String("op", op), slog.String("error", err.Error()))
	}
	return s.defaultObjective
}

type StationCauses struct {
	StationID string            `json:"station_id"`
	Zone      storage.CauseZone `json:"zone,omitempty"`
	Causes    []storage.Cause   `json:"causes"`
}

// StationCauses lists the causes an operator at station can report, based
// on where the unit in progress was last seen.
func (s *Service) StationCauses(ctx context.Context, station string) (StationCauses, error) {
	const op = "service.dashboard.StationCauses"

	if !slices.Contains(s.stations, station) {
		return StationCauses{}, fmt.Errorf("%s: %w: %s", op, ErrUnknownStation, station)
	}

	var (
		events []storage.Event
		causes []storage.Cause
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.events.Snapshot(gCtx)
		if err != nil {
			return fmt.Errorf("events: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		causes, err = s.store.ListCauses(gCtx)
		if err != nil {
			return fmt.Errorf("causes: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return StationCauses{}, fmt.Errorf("%s: %w", op, err)
	}

	zone := production.Zone(production.LatestByStation(production.SplitPure(events)), station)

	return StationCauses{
		StationID: station,
		Zone:      zone,
		Causes:    catalog.Suggest(causes, zone),
	}, nil
}

// Build is the pure part of Snapshot. events must be in log order.
func Build(now time.Time, events []storage.Event, objective int, items []storage.PriorityItem, stations []string, whatIf *pacing.WhatIf) Snapshot {
	weekStart := shift.StartOfWeek(now)
	info := shift.CurrentShiftInfo(now)

	week := eventlog.Window(events, weekStart)
	pure := production.SplitPure(week)
	latestAll := production.LatestByStation(week)
	latestPure := production.LatestByStation(pure)

	counts := production.CompletedByCategory(production.LatestByUnit(pure))

	cards := make([]production.Card, 0, len(stations))
	for _, st := range stations {
		cards = append(cards, production.StationCard(st, latestAll, latestPure, now))
	}

	return Snapshot{
		GeneratedAt: now,
		WeekStart:   weekStart,
		Shift:       info,
		Completed:   counts,
		Pace:        pacing.Evaluate(objective, info.Elapsed, counts.Series, whatIf),
		Stations:    cards,
		Priorities:  priority.Resolve(items, events),
	}
}

type DowntimeReport struct {
	Summary  downtime.Summary          `json:"summary"`
	Stations []downtime.StationSummary `json:"stations"`
	Cycles   []downtime.Cycle          `json:"cycles"`
	Ignored  int                       `json:"ignored"`
}

// Downtime reconstructs every maintenance cycle from the unfiltered log.
func (s *Service) Downtime(ctx context.Context) (DowntimeReport, error) {
	const op = "service.dashboard.Downtime"

	events, err := s.events.Snapshot(ctx)
	if err != nil {
		return DowntimeReport{}, fmt.Errorf("%s: %w", op, err)
	}

	res := downtime.Reconstruct(events)
	if n := len(res.Ignored); n > 0 {
		s.log.Warn("maintenance events out of sequence", slog.String("op", op), slog.Int("count", n))
	}

	return DowntimeReport{
		Summary:  downtime.Summarize(res.Cycles),
		Stations: downtime.ByStation(res.Cycles),
		Cycles:   res.Cycles,
		Ignored:  len(res.Ignored),
	}, nil
}
