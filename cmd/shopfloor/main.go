package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopfloor/internal/catalog"
	"shopfloor/internal/config"
	"shopfloor/internal/eventlog"
	"shopfloor/internal/notify/mqtt"
	"shopfloor/internal/service/actions"
	"shopfloor/internal/service/dashboard"
	"shopfloor/internal/storage/mysql"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Error("failed to load catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}

	storage, err := mysql.New(*cfg, log)
	if err != nil {
		log.Error("failed to open db", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := storage.Migrate(ctx); err != nil {
		cancel()
		log.Error("failed to migrate db", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := storage.SeedCauses(ctx, cat.Causes); err != nil {
		log.Warn("failed to seed causes", slog.String("error", err.Error()))
	}
	cancel()

	var publisher mqtt.Publisher
	if cfg.MQTT.Broker != "" {
		pub, err := mqtt.NewRealPublisher(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.TopicPrefix)
		if err != nil {
			// the board works without notifications
			log.Warn("mqtt disabled", slog.String("broker", cfg.MQTT.Broker), slog.String("error", err.Error()))
		} else {
			publisher = pub
			defer publisher.Close()
		}
	}

	events := eventlog.New(storage)
	dashboardService := dashboard.NewService(log, events, storage, cat.Stations, cfg.DefaultObjective)
	actionService := actions.NewService(log, events, publisher, cat, nil)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, storage, events, dashboardService, actionService),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop, cancelSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancelSignals()

	go func() {
		<-stop.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shut down server", slog.String("error", err.Error()))
		}
	}()

	log.Info("server started", slog.String("address", cfg.Address), slog.Int("stations", len(cat.Stations)))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("failed start server", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}

// errorTee sends every record to out and keeps a second copy of errors.
type errorTee struct {
	out  slog.Handler
	errs slog.Handler
}

func (t *errorTee) Enabled(ctx context.Context, lvl slog.Level) bool {
	return t.out.Enabled(ctx, lvl) || (lvl >= slog.LevelError && t.errs.Enabled(ctx, lvl))
}

func (t *errorTee) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if t.out.Enabled(ctx, r.Level) {
		err = t.out.Handle(ctx, r)
	}
	if r.Level >= slog.LevelError {
		// the copy is best effort
		_ = t.errs.Handle(ctx, r.Clone())
	}
	return err
}

func (t *errorTee) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &errorTee{out: t.out.WithAttrs(attrs), errs: t.errs.WithAttrs(attrs)}
}

func (t *errorTee) WithGroup(name string) slog.Handler {
	return &errorTee{out: t.out.WithGroup(name), errs: t.errs.WithGroup(name)}
}

// newLogger writes to out as JSON in dev and as text elsewhere, verbose
// outside prod. When errs is non-nil error records are copied to it.
func newLogger(env string, out, errs io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	if env != envLocal && env != envDev {
		opts.Level = slog.LevelInfo
	}

	var h slog.Handler = slog.NewTextHandler(out, opts)
	if env == envDev {
		h = slog.NewJSONHandler(out, opts)
	}

	if errs == nil {
		return slog.New(h)
	}
	return slog.New(&errorTee{
		out:  h,
		errs: slog.NewTextHandler(errs, &slog.HandlerOptions{Level: slog.LevelError}),
	})
}

func setupLogger(env string) *slog.Logger {
	errorFile, err := os.OpenFile("errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log := newLogger(env, os.Stdout, nil)
		log.Warn("error log file unavailable", slog.String("error", err.Error()))
		return log
	}
	return newLogger(env, os.Stdout, errorFile)
}
