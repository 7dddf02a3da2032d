package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"arbmonitor-service/internal/application"
	"arbmonitor-service/internal/bootstrap"
	"arbmonitor-service/internal/config"
	"arbmonitor-service/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	logger := logx.L()
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, cleanup, err := bootstrap.BuildStore(ctx, cfg)
	if err != nil {
		logger.Fatal("bootstrap store", zap.Error(err))
	}
	defer cleanup()

	cache, closeCache, err := bootstrap.BuildQuoteCache(cfg)
	if err != nil {
		logger.Fatal("bootstrap quote cache", zap.Error(err))
	}
	defer closeCache()

	adapters, err := bootstrap.BuildAdapters(cfg)
	if err != nil {
		logger.Fatal("bootstrap adapters", zap.Error(err))
	}

	orch := application.NewOrchestrator(adapters, cfg.FetchTimeout, logger)
	det := application.NewDetector(cfg.SpreadThresholdPct, nil)
	mon := application.NewMonitor(orch, det, store.Opportunities, cache, cfg.Symbols, cfg.CycleInterval, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("shutdown signal received")
		cancel()
	}()

	mon.Start(ctx)
}
