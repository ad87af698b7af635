package update

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

type ObjectiveUpdater interface {
	SetObjective(ctx context.Context, value int) error
}

type Request struct {
	Objective int `json:"objective"`
}

func UpdateObjective(log *slog.Logger, updater ObjectiveUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.objective.UpdateObjective"

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("invalid request body")
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		if req.Objective <= 0 {
			http.Error(w, "objective must be positive", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := updater.SetObjective(ctx, req.Objective); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to update objective")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.With(slog.String("op", op), slog.Int("objective", req.Objective)).Info("objective updated")

		render.JSON(w, r, req)
	}
}
