package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"shopfloor/internal/service/dashboard"
)

type DowntimeProvider interface {
	Downtime(ctx context.Context) (dashboard.DowntimeReport, error)
}

// GetDowntime returns every completed maintenance cycle in the log with
// wait, repair and lost-time totals.
func GetDowntime(log *slog.Logger, provider DowntimeProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.downtime.GetDowntime"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rep, err := provider.Downtime(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to build downtime report")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, rep)
	}
}
