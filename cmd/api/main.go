package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"arbmonitor-service/internal/application"
	"arbmonitor-service/internal/bootstrap"
	"arbmonitor-service/internal/config"
	infraconfig "arbmonitor-service/internal/infrastructure/config"
	httpserver "arbmonitor-service/internal/infrastructure/http"
	"arbmonitor-service/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	ctx := context.Background()
	logger := logx.L()
	cfg := config.Load()
	addr := ":" + cfg.Port

	store, cleanup, err := bootstrap.BuildStore(ctx, cfg)
	if err != nil {
		logger.Fatal("bootstrap store", zap.Error(err))
	}
	defer cleanup()

	reporting := application.NewReportingService(store.Opportunities, nil)
	srv := httpserver.NewServer(reporting, store.Ping)
	mux := httpserver.NewRouter(srv)

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		logger.Info("server started", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, shCancel := context.WithTimeout(context.Background(), infraconfig.DefaultShutdownTimeout)
	defer shCancel()
	_ = server.Shutdown(shutdownCtx)
	logger.Info("server stopped")
}
