package excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"shopfloor/internal/service/dashboard"
	"shopfloor/internal/service/downtime/report"
)

type DowntimeProvider interface {
	Downtime(ctx context.Context) (dashboard.DowntimeReport, error)
}

func DowntimeExcel(log *slog.Logger, provider DowntimeProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.downtime.DowntimeExcel"

		// building the workbook takes longer than a JSON answer
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		rep, err := provider.Downtime(ctx)
		if err != nil {
			log.Error("failed to build downtime report", "op", op, "err", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		excelBytes, err := report.Excel(rep.Cycles)
		if err != nil {
			log.Error("failed to generate excel", "op", op, "err", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("Downtime_Report_%s.xlsx", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}
