package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"shopfloor/internal/storage"
)

type CauseRemover interface {
	RemoveCause(ctx context.Context, id int64) error
}

func DeleteCause(log *slog.Logger, remover CauseRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.causes.DeleteCause"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid cause id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := remover.RemoveCause(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Cause not found", http.StatusNotFound)
				return
			}
			log.With(slog.String("op", op), slog.Int64("id", id), slog.String("error", err.Error())).Error("failed to delete cause")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
