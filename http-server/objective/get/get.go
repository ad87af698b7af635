package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

type ObjectiveProvider interface {
	Objective(ctx context.Context) int
}

type Response struct {
	Objective int `json:"objective"`
}

func GetObjective(log *slog.Logger, provider ObjectiveProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		render.JSON(w, r, Response{Objective: provider.Objective(ctx)})
	}
}
