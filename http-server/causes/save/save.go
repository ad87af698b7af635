package save

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"shopfloor/internal/catalog"
	"shopfloor/internal/storage"
)

type CauseSaver interface {
	AddCause(ctx context.Context, c storage.Cause) (int64, error)
}

type Request struct {
	Zone storage.CauseZone `json:"zone"`
	Name string            `json:"name"`
}

func SaveCause(log *slog.Logger, saver CauseSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.causes.SaveCause"

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		c := storage.Cause{
			Zone: storage.CauseZone(strings.ToUpper(strings.TrimSpace(string(req.Zone)))),
			Name: strings.TrimSpace(req.Name),
		}
		if err := catalog.ValidateCause(c); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := saver.AddCause(ctx, c)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				http.Error(w, "cause already exists", http.StatusConflict)
				return
			}
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to save cause")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		c.ID = id

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, c)
	}
}
