package get

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"shopfloor/internal/service/dashboard"
	"shopfloor/internal/service/pacing"
	"shopfloor/internal/shift"
)

type DashboardProvider interface {
	Snapshot(ctx context.Context, now time.Time, whatIf *pacing.WhatIf) (dashboard.Snapshot, error)
}

// GetDashboard renders one refresh of the board. ?simulate=<count> turns on
// the what-if mode, ?shifts=<elapsed> optionally overrides the shift clock.
func GetDashboard(log *slog.Logger, provider DashboardProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.dashboard.GetDashboard"

		whatIf, err := parseWhatIf(r)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("invalid what-if parameters")
			http.Error(w, "invalid simulate or shifts parameter", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		snap, err := provider.Snapshot(ctx, shift.Now(), whatIf)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to build dashboard")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, snap)
	}
}

func parseWhatIf(r *http.Request) (*pacing.WhatIf, error) {
	q := r.URL.Query()

	countStr := q.Get("simulate")
	if countStr == "" {
		if q.Has("shifts") {
			return nil, errors.New("shifts requires simulate")
		}
		return nil, nil
	}

	count, err := strconv.Atoi(countStr)
	if err != nil || count < 0 {
		return nil, fmt.Errorf("invalid simulate %q", countStr)
	}
	whatIf := &pacing.WhatIf{Count: count}

	if shiftsStr := q.Get("shifts"); shiftsStr != "" {
		shifts, err := strconv.ParseFloat(shiftsStr, 64)
		if err != nil || shifts < 0 || shifts > shift.TotalShifts {
			return nil, fmt.Errorf("invalid shifts %q", shiftsStr)
		}
		whatIf.ElapsedShifts = &shifts
	}

	return whatIf, nil
}
