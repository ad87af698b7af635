package save

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"shopfloor/internal/eventlog"
	"shopfloor/internal/service/actions"
	"shopfloor/internal/service/assignment"
	"shopfloor/internal/storage"
)

type OperatorActions interface {
	Operator(ctx context.Context, req actions.Request) (storage.Event, error)
}

type AdjusterActions interface {
	Adjuster(ctx context.Context, req actions.Request) (storage.Event, error)
}

type ConflictResponse struct {
	Error  string `json:"error"`
	Holder string `json:"holder,omitempty"`
}

func SaveOperatorEvent(log *slog.Logger, svc OperatorActions) http.HandlerFunc {
	return handle(log, "handlers.events.SaveOperatorEvent", svc.Operator)
}

func SaveAdjusterEvent(log *slog.Logger, svc AdjusterActions) http.HandlerFunc {
	return handle(log, "handlers.events.SaveAdjusterEvent", svc.Adjuster)
}

func handle(log *slog.Logger, op string, do func(context.Context, actions.Request) (storage.Event, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req actions.Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		ev, err := do(ctx, req)
		if err != nil {
			writeError(log, w, r, req, err)
			return
		}

		log.Info("event logged",
			slog.String("station", ev.StationID),
			slog.String("stage", string(ev.Stage)),
			slog.String("unit", ev.UnitDisplay),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, ev)
	}
}

func writeError(log *slog.Logger, w http.ResponseWriter, r *http.Request, req actions.Request, err error) {
	var conflict *assignment.ConflictError

	switch {
	case errors.As(err, &conflict):
		log.Warn("unit held by another station", slog.String("station", req.Station), slog.String("holder", conflict.Holder))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, ConflictResponse{Error: conflict.Error(), Holder: conflict.Holder})

	case errors.Is(err, actions.ErrUnknownStation):
		http.Error(w, "Station not found", http.StatusNotFound)

	case errors.Is(err, actions.ErrInvalidRequest), errors.Is(err, eventlog.ErrInvalidEvent):
		http.Error(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, actions.ErrStationBusy),
		errors.Is(err, actions.ErrStationOccupied),
		errors.Is(err, actions.ErrNoOpenUnit),
		errors.Is(err, actions.ErrNoCall),
		errors.Is(err, actions.ErrNoIntervention):
		log.Warn("action not allowed in current station state", slog.String("station", req.Station), slog.String("error", err.Error()))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, ConflictResponse{Error: err.Error()})

	default:
		log.Error("failed to log event", slog.String("station", req.Station), slog.String("error", err.Error()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
