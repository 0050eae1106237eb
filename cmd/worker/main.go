package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/Falasefemi2/hr-portal/internal/app"
	"github.com/Falasefemi2/hr-portal/internal/config"
	"github.com/Falasefemi2/hr-portal/internal/shared/apperror"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}

	apperror.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunWorker(ctx, cfg); err != nil {
		logger.Error("run worker failed", zap.Error(err))
	}
}
