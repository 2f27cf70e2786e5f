package main

import (
	"github.com/Thomas-Sunil/newhrms/internal/app"
	"github.com/Thomas-Sunil/newhrms/internal/shared/apperror"
	"github.com/Thomas-Sunil/newhrms/internal/shared/config"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger, err := zap.NewDevelopment()
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	if err := app.RunWorker(cfg); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
