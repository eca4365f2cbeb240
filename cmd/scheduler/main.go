package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dhima/backoffice-workflows/internal/dispatch"
	"github.com/dhima/backoffice-workflows/internal/logging"
	"github.com/dhima/backoffice-workflows/internal/scheduler"
	"github.com/dhima/backoffice-workflows/internal/storage"
	"github.com/dhima/backoffice-workflows/pkg/config"
	"github.com/dhima/backoffice-workflows/platform/events"
)

func main() {
	cfg := config.FromEnv()

	logger, err := logging.FromConfig(cfg, "scheduler")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zl := logging.Zap(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := storage.Open(connectCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	store := storage.NewMySQLClient(db)
	publisher := events.NewPublisher(cfg.Brokers(), cfg.KafkaActionsTopic, zl)
	defer publisher.Close()

	dispatcher := dispatch.NewDispatcher(store, store, zl)
	engine := scheduler.NewEngine(cfg.SchedulerTick, store, dispatcher, publisher, zl)

	zl.Info("starting scheduler", zap.Duration("tick", cfg.SchedulerTick))
	if err := engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zl.Error("scheduler stopped", zap.Error(err))
		return
	}
	zl.Info("scheduler stopped")
}
