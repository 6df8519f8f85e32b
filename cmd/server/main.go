package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/kenneldesk/kenneldesk/internal/config"
	"github.com/kenneldesk/kenneldesk/internal/repository/mongodb"
	"github.com/kenneldesk/kenneldesk/internal/repository/sheets"
	"github.com/kenneldesk/kenneldesk/internal/scheduler"
	"github.com/kenneldesk/kenneldesk/internal/server/handlers"
	"github.com/kenneldesk/kenneldesk/internal/server/router"
	"github.com/kenneldesk/kenneldesk/internal/service/aggregator"
	"github.com/kenneldesk/kenneldesk/internal/service/analysis"
	reportsvc "github.com/kenneldesk/kenneldesk/internal/service/reports"
	"github.com/kenneldesk/kenneldesk/pkg/clients/anthropic"
	"github.com/kenneldesk/kenneldesk/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
	if err != nil {
		baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
	}

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	aiClient := anthropic.NewClient(cfg.AI.AnthropicKey)

	aggregatorSvc := aggregator.NewService(sheetsRepo, baseLogger.Named("svc.aggregator"))
	orchestrator := analysis.NewOrchestrator(aiClient, baseLogger.Named("svc.analysis"))
	reportsSvc := reportsvc.NewService(aggregatorSvc, orchestrator, mongoRepo, baseLogger.Named("svc.reports"))

	reportHandler := handlers.NewReportHandler(reportsSvc, baseLogger.Named("handlers.reports"))
	engine := router.New(reportHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, reportsSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
