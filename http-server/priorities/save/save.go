package save

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/render"

	"shopfloor/internal/storage"
	"shopfloor/internal/unit"
)

type PrioritySaver interface {
	AddPriority(ctx context.Context, item storage.PriorityItem) (int64, error)
}

type Request struct {
	Type     storage.Category `json:"type"`
	UnitID   string           `json:"unit_id"`
	Location string           `json:"location"`
}

// SavePriority appends a unit to the end of its type's priority list.
// The unit can be given as "123" or "MSN-123".
func SavePriority(log *slog.Logger, saver PrioritySaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.priorities.SavePriority"

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		id := strings.TrimSpace(unit.StripDisplay(strings.TrimSpace(req.UnitID)))
		location := strings.TrimSpace(req.Location)

		switch {
		case !slices.Contains(storage.Categories, req.Type):
			http.Error(w, "unknown unit type", http.StatusBadRequest)
			return
		case id == "" || location == "":
			http.Error(w, "unit id and location are required", http.StatusBadRequest)
			return
		}

		item := storage.PriorityItem{
			Type:      req.Type,
			UnitLabel: unit.Display(id),
			Station:   storage.AnyStation,
			Location:  location,
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		newID, err := saver.AddPriority(ctx, item)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				log.With(slog.String("op", op), slog.String("unit", item.UnitLabel)).Warn("priority already declared")
				http.Error(w, item.UnitLabel+" is already in the list", http.StatusConflict)
				return
			}
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to save priority")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		item.ID = newID

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, item)
	}
}
