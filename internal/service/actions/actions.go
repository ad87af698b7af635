// Package actions turns operator and adjuster requests into log events.
// Each request reads the log, checks the station is in a state that allows
// the action, then appends one event.
package actions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"shopfloor/internal/catalog"
	"shopfloor/internal/notify/mqtt"
	"shopfloor/internal/service/assignment"
	"shopfloor/internal/service/production"
	"shopfloor/internal/shift"
	"shopfloor/internal/storage"
	"shopfloor/internal/unit"
)

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrUnknownStation  = errors.New("unknown station")
	ErrStationBusy     = errors.New("station is waiting for or under adjustment")
	ErrStationOccupied = errors.New("station already has a unit in progress")
	ErrNoOpenUnit      = errors.New("no unit in progress at station")
	ErrNoCall          = errors.New("no adjustment call pending at station")
	ErrNoIntervention  = errors.New("no intervention in progress at station")
)

// ResumeNote is written on the event closing an intervention.
const ResumeNote = "resume"

type Action string

const (
	ActionStart   Action = "start"
	ActionAdvance Action = "advance"
	ActionRelease Action = "release"
	ActionCall    Action = "call"

	ActionAccept Action = "accept"
	ActionFinish Action = "finish"
	ActionStop   Action = "stop"
)

// advanceStages are the checkpoints an operator can log on an open unit.
var advanceStages = []storage.Stage{
	storage.StageStationA,
	storage.StageStationB1,
	storage.StageStationB2,
	storage.StageReport,
	storage.StageTeardown,
}

type Request struct {
	UID     string           `json:"uid,omitempty"`
	Station string           `json:"station"`
	Action  Action           `json:"action"`
	Type    storage.Category `json:"type,omitempty"`
	UnitID  string           `json:"unit_id,omitempty"`
	Stage   storage.Stage    `json:"stage,omitempty"`
	Causes  []string         `json:"causes,omitempty"`
	ToolRef string           `json:"tool_ref,omitempty"`
}

type EventLog interface {
	Append(ctx context.Context, ev storage.Event) (storage.Event, error)
	Snapshot(ctx context.Context) ([]storage.Event, error)
}

type Service struct {
	log      *slog.Logger
	events   EventLog
	notifier mqtt.Publisher
	stations func(string) bool
	now      func() time.Time
}

// NewService builds the action service. notifier may be nil. now defaults
// to the plant clock.
func NewService(log *slog.Logger, events EventLog, notifier mqtt.Publisher, cat catalog.Catalog, now func() time.Time) *Service {
	if now == nil {
		now = shift.Now
	}
	return &Service{
		log:      log,
		events:   events,
		notifier: notifier,
		stations: cat.HasStation,
		now:      now,
	}
}

// stationState is what a station looks like to someone standing at it.
type stationState struct {
	last     storage.Event
	hasLast  bool
	open     storage.Event
	hasOpen  bool
	existing *storage.Event
}

func (st stationState) busy() bool {
	return st.hasLast && (st.last.Stage == storage.StageCall || st.last.Stage == storage.StageIncidentStart)
}

func (s *Service) load(ctx context.Context, req Request) ([]storage.Event, stationState, error) {
	if strings.TrimSpace(req.Station) == "" {
		return nil, stationState{}, fmt.Errorf("%w: station is required", ErrInvalidRequest)
	}
	if !s.stations(req.Station) {
		return nil, stationState{}, fmt.Errorf("%w: %s", ErrUnknownStation, req.Station)
	}

	events, err := s.events.Snapshot(ctx)
	if err != nil {
		return nil, stationState{}, err
	}

	var st stationState
	if req.UID != "" {
		if i := slices.IndexFunc(events, func(ev storage.Event) bool { return ev.UID == req.UID }); i >= 0 {
			st.existing = &events[i]
		}
	}

	st.last, st.hasLast = production.LatestByStation(events)[req.Station]
	st.open, st.hasOpen = production.OpenUnit(production.LatestByStation(production.SplitPure(events)), req.Station)

	return events, st, nil
}

// Operator handles the production side: start a unit, log a checkpoint,
// release the unit, or call an adjuster.
func (s *Service) Operator(ctx context.Context, req Request) (storage.Event, error) {
	const op = "service.actions.Operator"

	events, st, err := s.load(ctx, req)
	if err != nil {
		return storage.Event{}, fmt.Errorf("%s: %w", op, err)
	}
	if st.existing != nil {
		return *st.existing, nil
	}

	ev := storage.Event{UID: req.UID, StationID: req.Station}

	switch req.Action {
	case ActionStart:
		if st.busy() {
			return storage.Event{}, fmt.Errorf("%s: %w", op, ErrStationBusy)
		}
		if st.hasOpen {
			return storage.Event{}, fmt.Errorf("%s: %w: %s", op, ErrStationOccupied, st.open.UnitDisplay)
		}
		if !slices.Contains(storage.Categories, req.Type) {
			return storage.Event{}, fmt.Errorf("%s: %w: unit type %q", op, ErrInvalidRequest, req.Type)
		}
		id := strings.TrimSpace(unit.StripDisplay(req.UnitID))
		if id == "" {
			return storage.Event{}, fmt.Errorf("%s: %w: unit id is required", op, ErrInvalidRequest)
		}

		display := unit.Display(id)
		if err := assignment.Check(events, req.Station, display); err != nil {
			return storage.Event{}, fmt.Errorf("%s: %w", op, err)
		}

		ev.UnitSerial = unit.NewSerial(req.Type, id)
		ev.UnitDisplay = display
		ev.Stage = storage.StageSetup

	case ActionAdvance:
		if !slices.Contains(advanceStages, req.Stage) {
			return storage.Event{}, fmt.Errorf("%s: %w: stage %q", op, ErrInvalidRequest, req.Stage)
		}
		if err := st.producing(); err != nil {
			return storage.Event{}, fmt.Errorf("%s: %w", op, err)
		}
		ev.UnitSerial, ev.UnitDisplay = st.open.UnitSerial, st.open.UnitDisplay
		ev.Stage = req.Stage

	case ActionRelease:
		if err := st.producing(); err != nil {
			return storage.Event{}, fmt.Errorf("%s: %w", op, err)
		}
		ev.UnitSerial, ev.UnitDisplay = st.open.UnitSerial, st.open.UnitDisplay
		ev.Stage = storage.StageDone

	case ActionCall:
		if err := st.producing(); err != nil {
			return storage.Event{}, fmt.Errorf("%s: %w", op, err)
		}
		note, err := causeNote(req)
		if err != nil {
			return storage.Event{}, fmt.Errorf("%s: %w", op, err)
		}
		ev.UnitSerial, ev.UnitDisplay = st.open.UnitSerial, st.open.UnitDisplay
		ev.Stage = storage.StageCall
		ev.Note = note

	default:
		return storage.Event{}, fmt.Errorf("%s: %w: operator action %q", op, ErrInvalidRequest, req.Action)
	}

	return s.append(ctx, op, ev)
}

// Adjuster handles the maintenance side: accept a pending call, finish an
// intervention, or stop a producing station without a prior call.
func (s *Service) Adjuster(ctx context.Context, req Request) (storage.Event, error) {
	const op = "service.actions.Adjuster"

	_, st, err := s.load(ctx, req)
	if err != nil {
		return storage.Event{}, fmt.Errorf("%s: %w", op, err)
	}
	if st.existing != nil {
		return *st.existing, nil
	}

	ev := storage.Event{
		UID:         req.UID,
		StationID:   req.Station,
		UnitSerial:  storage.MaintenanceSerial,
		UnitDisplay: storage.MaintenanceDisplay,
	}

	switch req.Action {
	case ActionAccept:
		if !st.hasLast || st.last.Stage != storage.StageCall {
			return storage.Event{}, fmt.Errorf("%s: %w", op, ErrNoCall)
		}
		ev.Stage = storage.StageIncidentStart
		ev.Note = st.last.Note

	case ActionFinish:
		if !st.hasLast || st.last.Stage != storage.StageIncidentStart {
			return storage.Event{}, fmt.Errorf("%s: %w", op, ErrNoIntervention)
		}
		ev.Stage = storage.StageIncidentEnd
		ev.Note = ResumeNote

	case ActionStop:
		if err := st.producing(); err != nil {
			return storage.Event{}, fmt.Errorf("%s: %w", op, err)
		}
		note, err := causeNote(req)
		if err != nil {
			return storage.Event{}, fmt.Errorf("%s: %w", op, err)
		}
		ev.Stage = storage.StageIncidentStart
		ev.Note = note

	default:
		return storage.Event{}, fmt.Errorf("%s: %w: adjuster action %q", op, ErrInvalidRequest, req.Action)
	}

	return s.append(ctx, op, ev)
}

func (st stationState) producing() error {
	if st.busy() {
		return ErrStationBusy
	}
	if !st.hasOpen {
		return ErrNoOpenUnit
	}
	return nil
}

func causeNote(req Request) (string, error) {
	causes := make([]string, 0, len(req.Causes))
	for _, c := range req.Causes {
		if c = strings.TrimSpace(c); c != "" {
			causes = append(causes, c)
		}
	}
	if len(causes) == 0 {
		return "", fmt.Errorf("%w: at least one cause is required", ErrInvalidRequest)
	}
	return catalog.FormatCauses(causes, req.ToolRef), nil
}

// append stamps the event, stores it and publishes it. A failed publish is
// logged; the event is already in the log.
func (s *Service) append(ctx context.Context, op string, ev storage.Event) (storage.Event, error) {
	ev.Timestamp = s.now().In(shift.Location).Truncate(time.Second)

	saved, err := s.events.Append(ctx, ev)
	if err != nil {
		return storage.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	if s.notifier != nil {
		if err := s.notifier.PublishEvent(saved); err != nil {
			s.log.Warn("failed to publish event",
				slog.String("op", op),
				slog.String("station", saved.StationID),
				slog.String("error", err.Error()),
			)
		}
	}

	return saved, nil
}
