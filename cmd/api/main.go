package main

import (
	"context"
	"log"
	"time"

	"orne-dashboard/internal/core/cache"
	"orne-dashboard/internal/core/calendar"
	"orne-dashboard/internal/core/config"
	"orne-dashboard/internal/core/logger"
	"orne-dashboard/internal/core/server"
	orderadapter "orne-dashboard/internal/features/orders/adapters"
	orderhandler "orne-dashboard/internal/features/orders/handler"
	orderservice "orne-dashboard/internal/features/orders/service"
	trackingadapter "orne-dashboard/internal/features/tracking/adapters"

	"go.uber.org/zap"
)

// @title ORNE Dashboard API
// @version 1.0
// @description Order tracking dashboard aggregating the store's shipped orders with parcel tracking data.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	cal := loadCalendar(cfg.HolidaysFile)

	if cfg.Tracking.APIKey == "" {
		l.Warn("TRACKING_API_KEY is not set: tracking lookups are disabled and orders will show an awaiting status")
	}

	shopifyAdapter := orderadapter.NewShopifyAdapter(cfg.Shopify)
	trackerAdapter := trackingadapter.NewTrack17Adapter(cfg.Tracking)

	snapshots := openSnapshotCache(cfg.Cache)
	if snapshots != nil {
		defer snapshots.Close()
	}

	dashboardService := orderservice.NewDashboardService(
		shopifyAdapter,
		trackerAdapter,
		snapshots,
		cal,
		time.Duration(cfg.Cache.SnapshotTTLSeconds)*time.Second,
	)
	dashboardHandler := orderhandler.NewDashboardHandler(
		dashboardService,
		cfg.Tracking.APIKey != "",
		snapshots != nil,
	)

	srv := server.New(cfg)

	srv.App.Get("/api/orders", dashboardHandler.GetDashboard)
	srv.App.Get("/health", dashboardHandler.GetHealth)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}

// loadCalendar builds the business-day calendar from the configured
// file, falling back to the embedded Brazilian holiday table.
func loadCalendar(path string) *calendar.Calendar {
	if path != "" {
		cal, err := calendar.LoadFile(path)
		if err != nil {
			logger.Get().Fatal("Failed to load holidays file",
				zap.String("path", path),
				zap.Error(err),
			)
		}
		return cal
	}

	cal, err := calendar.New(calendar.BrazilianHolidays)
	if err != nil {
		logger.Get().Fatal("Invalid embedded holiday table", zap.Error(err))
	}
	return cal
}

// openSnapshotCache connects the Redis snapshot cache. The dashboard
// works without it, so connection problems degrade to uncached mode
// instead of refusing to start.
func openSnapshotCache(cfg config.CacheConfig) cache.Cache {
	if cfg.RedisURL == "" || cfg.SnapshotTTLSeconds <= 0 {
		logger.Get().Info("Snapshot caching disabled")
		return nil
	}

	adapter, err := cache.NewRedisAdapter(cfg.RedisURL)
	if err != nil {
		logger.Get().Warn("Failed to configure Redis, running without snapshot cache", zap.Error(err))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := adapter.Ping(ctx); err != nil {
		logger.Get().Warn("Redis unreachable, running without snapshot cache", zap.Error(err))
		adapter.Close()
		return nil
	}

	logger.Get().Info("Snapshot cache connected",
		zap.Int("ttl_seconds", cfg.SnapshotTTLSeconds),
	)
	return adapter
}
