package app

import (
	"net/http"

	"github.com/Thomas-Sunil/newhrms/internal/shared/config"
	"github.com/Thomas-Sunil/newhrms/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects Postgres and Redis and mounts every module on router.
func BuildApp(router *gin.Engine, cfg config.Config) error {
	logger := zap.L()

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, cfg.ConnectRetries)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return registerModules(router, cfg, sqlDB, gormDB, redisClient, logger)
}
