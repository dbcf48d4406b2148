package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrJamesThe3rd/rounds/internal/config"
	"github.com/MrJamesThe3rd/rounds/internal/customer"
	customerStore "github.com/MrJamesThe3rd/rounds/internal/customer/store"
	"github.com/MrJamesThe3rd/rounds/internal/database"
	"github.com/MrJamesThe3rd/rounds/internal/earnings"
	earningsStore "github.com/MrJamesThe3rd/rounds/internal/earnings/store"
	"github.com/MrJamesThe3rd/rounds/internal/export"
	roundsHttp "github.com/MrJamesThe3rd/rounds/internal/http"
	customerHandler "github.com/MrJamesThe3rd/rounds/internal/http/customer"
	dashboardHandler "github.com/MrJamesThe3rd/rounds/internal/http/dashboard"
	exportHandler "github.com/MrJamesThe3rd/rounds/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/rounds/internal/http/importcsv"
	jobHandler "github.com/MrJamesThe3rd/rounds/internal/http/job"
	paymentHandler "github.com/MrJamesThe3rd/rounds/internal/http/payment"
	statsHandler "github.com/MrJamesThe3rd/rounds/internal/http/stats"
	zoneHandler "github.com/MrJamesThe3rd/rounds/internal/http/zone"
	"github.com/MrJamesThe3rd/rounds/internal/importer"
	"github.com/MrJamesThe3rd/rounds/internal/job"
	jobStore "github.com/MrJamesThe3rd/rounds/internal/job/store"
	"github.com/MrJamesThe3rd/rounds/internal/logging"
	"github.com/MrJamesThe3rd/rounds/internal/payment"
	paymentStore "github.com/MrJamesThe3rd/rounds/internal/payment/store"
	"github.com/MrJamesThe3rd/rounds/internal/zone"
	zoneStore "github.com/MrJamesThe3rd/rounds/internal/zone/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.New(cfg.Log.Level, cfg.Log.Format)

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(cfg.ConnectionString()); err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		customerService = customer.NewService(customerStore.New(db))
		jobService      = job.NewService(jobStore.New(db))
		zoneService     = zone.NewService(zoneStore.New(db))
		paymentService  = payment.NewService(paymentStore.New(db))
		earningsService = earnings.NewService(earningsStore.New(db))
		importService   = importer.NewService()
		exportService   = export.NewService(jobService)
	)

	router := roundsHttp.New(roundsHttp.Handlers{
		Dashboard: dashboardHandler.NewHandler(customerService, jobService, earningsService),
		Customers: customerHandler.NewHandler(customerService, jobService),
		Jobs:      jobHandler.NewHandler(jobService),
		Zones:     zoneHandler.NewHandler(zoneService),
		Payments:  paymentHandler.NewHandler(paymentService),
		Stats:     statsHandler.NewHandler(earningsService),
		Import:    importHandler.NewHandler(importService, customerService),
		Export:    exportHandler.NewHandler(exportService),
	}, roundsHttp.Options{
		Timeout:        cfg.Server.Timeout,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}
}
