package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/finalfeedback/finalfeedback/internal/config"
	"github.com/finalfeedback/finalfeedback/internal/server"
	"github.com/finalfeedback/finalfeedback/internal/storage"
)

func main() {
	// Load .env if it exists
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("Failed to load config", zap.Error(err))
	}

	logger := newLogger(cfg.Server.Environment)
	defer logger.Sync()

	if cfg.Admin.IsDefaultPassword {
		logger.Warn("ADMIN_PASSWORD not set, using default - admin panel is locked until it is changed")
	}
	if cfg.Discord.WebhookURL != "" {
		logger.Info("Discord webhook notifications enabled")
	}
	if len(cfg.Server.TrustedProxies) > 0 {
		logger.Info("Trusted proxies configured",
			zap.String("proxies", strings.Join(cfg.Server.TrustedProxies, ", ")))
	} else {
		logger.Warn("No trusted proxies configured - X-Forwarded-For headers will be ignored")
	}
	logger.Info("Player configured",
		zap.String("name", cfg.Player.Name),
		zap.String("server", cfg.Player.Server),
		zap.String("datacenter", cfg.Player.Datacenter))
	logger.Info("Rate limit configured",
		zap.Duration("window", cfg.RateLimit.Window),
		zap.Int("max_attempts_per_hour", cfg.RateLimit.MaxAttemptsPerHour))

	db, err := storage.NewSQLite(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.Info("Database initialized", zap.String("path", cfg.Database.Path))

	srv := server.New(cfg, db, logger)

	go func() {
		addr := cfg.Server.Addr()
		logger.Info("Admin panel available", zap.String("url", "http://"+addr+"/admin/panel"))
		if err := srv.Run(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newLogger(environment string) *zap.Logger {
	if environment == "production" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}
