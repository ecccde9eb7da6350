package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ukk/facility-booking-backend/internal/app"
	"github.com/ukk/facility-booking-backend/internal/auth"
	"github.com/ukk/facility-booking-backend/internal/config"
	"github.com/ukk/facility-booking-backend/internal/db"
	"github.com/ukk/facility-booking-backend/internal/logger"
	"github.com/ukk/facility-booking-backend/internal/scheduler"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Initialize(cfg.LogLevel, cfg.LogFormat)
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.AutoMigrate {
		if err := db.Migrate(cfg.MigrationsPath, cfg.DBDSN); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("database migrations applied", "path", cfg.MigrationsPath)
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN, db.PoolOptions{
		MaxConns:        int32(cfg.DBMaxConns),
		MinConns:        int32(cfg.DBMinConns),
		MaxConnIdleTime: cfg.DBMaxConnIdle,
	})
	if err != nil {
		logger.Error("failed to connect to db", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Token revocation is backed by Redis when configured.
	var revoker auth.Revoker = auth.NoopRevoker{}
	if cfg.RedisAddr != "" {
		rdb, err := db.NewRedis(ctx, db.RedisOptions{
			Addr:     cfg.RedisAddr,
			Username: cfg.RedisUser,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		revoker = auth.NewRedisRevoker(rdb)
		logger.Info("token revocation enabled", "redis_addr", cfg.RedisAddr)
	} else {
		logger.Warn("REDIS_ADDR not set; logout will not revoke tokens before they expire")
	}

	container := app.NewContainer(app.Config{
		IsProduction:           cfg.IsProduction,
		ProdOrigins:            cfg.ProdOrigins,
		DBPool:                 pool,
		JWTSecret:              cfg.JWTSecret,
		JWTTTL:                 cfg.JWTAccessTokenTTL,
		BcryptCost:             cfg.BcryptCost,
		SubmissionPolicy:       cfg.SubmissionPolicy,
		DefaultRejectionReason: cfg.DefaultRejectionReason,
		IoTDeviceKey:           cfg.IoTDeviceKey,
		Revoker:                revoker,
	})

	if cfg.AdminUsername != "" {
		if err := container.UserService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			logger.Error("failed to bootstrap admin account", "error", err)
			os.Exit(1)
		}
	}

	sched, err := scheduler.New(cfg.RefreshSchedule, container.ReservationService)
	if err != nil {
		logger.Error("failed to create scheduler", "error", err)
		os.Exit(1)
	}
	sched.Start()

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		logger.Info("server running", "addr", cfg.HTTPAddr, "submission_policy", cfg.SubmissionPolicy)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	logger.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	sched.Stop()

	logger.Info("server exited gracefully")
}
