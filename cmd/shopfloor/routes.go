package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getcauses "shopfloor/http-server/causes/get"
	removecause "shopfloor/http-server/causes/remove"
	savecause "shopfloor/http-server/causes/save"
	getdashboard "shopfloor/http-server/dashboard/get"
	downtimeexcel "shopfloor/http-server/downtime/excel"
	getdowntime "shopfloor/http-server/downtime/get"
	resetevents "shopfloor/http-server/events/reset"
	saveevent "shopfloor/http-server/events/save"
	getobjective "shopfloor/http-server/objective/get"
	updateobjective "shopfloor/http-server/objective/update"
	getpriorities "shopfloor/http-server/priorities/get"
	removepriority "shopfloor/http-server/priorities/remove"
	savepriority "shopfloor/http-server/priorities/save"
	"shopfloor/internal/config"
	"shopfloor/internal/eventlog"
	"shopfloor/internal/middleware/auth"
	"shopfloor/internal/service/actions"
	"shopfloor/internal/service/dashboard"
	"shopfloor/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, events *eventlog.Log, board *dashboard.Service, acts *actions.Service) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	adjusterOnly := auth.RequirePIN("Adjuster", auth.PINs{
		auth.RoleAdjuster:   cfg.Pins.Adjuster,
		auth.RoleSupervisor: cfg.Pins.Supervisor,
	})
	supervisorOnly := auth.RequirePIN("Supervisor", auth.PINs{
		auth.RoleSupervisor: cfg.Pins.Supervisor,
	})

	// live board, polled by the displays
	router.Get("/api/dashboard", getdashboard.GetDashboard(log, board))
	router.Get("/api/objective", getobjective.GetObjective(log, board))
	router.Get("/api/priorities", getpriorities.GetPriorities(log, storage))
	router.Get("/api/causes", getcauses.GetCauses(log, storage))
	router.Get("/api/stations/{station}/causes", getcauses.GetStationCauses(log, board))

	router.Post("/api/events/operator", saveevent.SaveOperatorEvent(log, acts))
	router.With(adjusterOnly).Post("/api/events/adjuster", saveevent.SaveAdjusterEvent(log, acts))

	router.With(supervisorOnly).Get("/api/downtime", getdowntime.GetDowntime(log, board))
	router.With(supervisorOnly).Get("/api/downtime/excel", downtimeexcel.DowntimeExcel(log, board))

	adminRouter := chi.NewRouter()
	adminRouter.Use(supervisorOnly)

	adminRouter.Put("/objective", updateobjective.UpdateObjective(log, storage))
	adminRouter.Post("/priorities", savepriority.SavePriority(log, storage))
	adminRouter.Delete("/priorities/{label}", removepriority.DeletePriority(log, storage))
	adminRouter.Delete("/priorities", removepriority.ResetPriorities(log, storage))
	adminRouter.Post("/causes", savecause.SaveCause(log, storage))
	adminRouter.Delete("/causes/{id}", removecause.DeleteCause(log, storage))
	adminRouter.Delete("/events", resetevents.ResetEvents(log, events))

	router.Mount("/api/admin", adminRouter)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})

	return router
}
