package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"shopfloor/internal/storage"
)

type PriorityLister interface {
	ListPriorities(ctx context.Context) ([]storage.PriorityItem, error)
}

type Response struct {
	Priorities []storage.PriorityItem `json:"priorities"`
}

func GetPriorities(log *slog.Logger, lister PriorityLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.priorities.GetPriorities"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		items, err := lister.ListPriorities(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to fetch priorities")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if items == nil {
			items = []storage.PriorityItem{}
		}

		render.JSON(w, r, Response{Priorities: items})
	}
}
