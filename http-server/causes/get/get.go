package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"shopfloor/internal/service/dashboard"
	"shopfloor/internal/storage"
)

type CauseLister interface {
	ListCauses(ctx context.Context) ([]storage.Cause, error)
}

type StationCauseProvider interface {
	StationCauses(ctx context.Context, station string) (dashboard.StationCauses, error)
}

type Response struct {
	Causes []storage.Cause `json:"causes"`
}

func GetCauses(log *slog.Logger, lister CauseLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.causes.GetCauses"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		causes, err := lister.ListCauses(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to fetch causes")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if causes == nil {
			causes = []storage.Cause{}
		}

		render.JSON(w, r, Response{Causes: causes})
	}
}

// GetStationCauses narrows the cause list to the side of the station where
// its unit in progress was last logged.
func GetStationCauses(log *slog.Logger, provider StationCauseProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.causes.GetStationCauses"

		station := chi.URLParam(r, "station")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		res, err := provider.StationCauses(ctx, station)
		if err != nil {
			if errors.Is(err, dashboard.ErrUnknownStation) {
				log.With(slog.String("op", op), slog.String("station", station)).Warn("station not found")
				http.Error(w, "Station not found", http.StatusNotFound)
				return
			}

			log.With(
				slog.String("op", op),
				slog.String("station", station),
				slog.String("error", err.Error()),
			).Error("failed to fetch station causes")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, res)
	}
}
