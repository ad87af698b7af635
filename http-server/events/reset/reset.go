package reset

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"shopfloor/internal/middleware/auth"
)

type LogResetter interface {
	Reset(ctx context.Context) error
}

// ResetEvents empties the production log. It cannot be undone.
func ResetEvents(log *slog.Logger, resetter LogResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.events.ResetEvents"

		role, _ := auth.RoleFrom(r.Context())
		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("role", role),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		if err := resetter.Reset(ctx); err != nil {
			log.Error("failed to reset production log", slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Warn("production log reset")
		w.WriteHeader(http.StatusNoContent)
	}
}
