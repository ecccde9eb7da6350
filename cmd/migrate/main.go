package main

import (
	"flag"
	"os"

	"github.com/ukk/facility-booking-backend/internal/config"
	"github.com/ukk/facility-booking-backend/internal/db"
	"github.com/ukk/facility-booking-backend/internal/logger"
)

func main() {
	down := flag.Int("down", 0, "roll back this many migrations instead of migrating up")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Initialize(cfg.LogLevel, cfg.LogFormat)

	if *down > 0 {
		if err := db.Rollback(cfg.MigrationsPath, cfg.DBDSN, *down); err != nil {
			logger.Error("rollback failed", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations rolled back", "steps", *down)
		return
	}

	if err := db.Migrate(cfg.MigrationsPath, cfg.DBDSN); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
	logger.Info("migrations applied", "path", cfg.MigrationsPath)
}
