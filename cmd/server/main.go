package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"developer-directory/internal/app"
	"developer-directory/internal/config"
	"developer-directory/internal/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.App.Environment, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrap, cleanup, err := app.Bootstrap(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to bootstrap app", zap.Error(err))
	}
	defer func() {
		if err := cleanup(); err != nil {
			lg.Error("cleanup error", zap.Error(err))
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		lg.Fatal("invalid HTTP port", zap.Error(err))
	}

	errCh := make(chan error, 2)
	go func() {
		lg.Info("api listening", zap.String("addr", addr))
		errCh <- bootstrap.Fiber.Listen(addr)
	}()
	go func() { errCh <- bootstrap.Admin.Listen() }()

	select {
	case err := <-errCh:
		if err != nil {
			lg.Error("server error", zap.Error(err))
		}
	case <-ctx.Done():
		lg.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := bootstrap.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
		lg.Error("api shutdown error", zap.Error(err))
	}
	if err := bootstrap.Admin.Shutdown(shutdownCtx); err != nil {
		lg.Error("admin shutdown error", zap.Error(err))
	}
}
