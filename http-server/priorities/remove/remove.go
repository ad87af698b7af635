package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"shopfloor/internal/storage"
)

type PriorityRemover interface {
	RemovePriority(ctx context.Context, label string) error
	ResetPriorities(ctx context.Context) error
}

func DeletePriority(log *slog.Logger, remover PriorityRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.priorities.DeletePriority"

		label := chi.URLParam(r, "label")
		if label == "" {
			http.Error(w, "missing unit label", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := remover.RemovePriority(ctx, label); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Priority not found", http.StatusNotFound)
				return
			}
			log.With(slog.String("op", op), slog.String("label", label), slog.String("error", err.Error())).Error("failed to delete priority")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ResetPriorities clears every list.
func ResetPriorities(log *slog.Logger, remover PriorityRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.priorities.ResetPriorities"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := remover.ResetPriorities(ctx); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to reset priorities")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.With(slog.String("op", op)).Info("priorities cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}
