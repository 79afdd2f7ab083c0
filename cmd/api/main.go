package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcel-admin/internal/core/auth"
	"parcel-admin/internal/core/cache"
	"parcel-admin/internal/core/config"
	"parcel-admin/internal/core/logger"
	"parcel-admin/internal/core/mongodb"
	"parcel-admin/internal/core/server"
	dashboardadapter "parcel-admin/internal/features/dashboard/adapters"
	dashboardhandler "parcel-admin/internal/features/dashboard/handler"
	dashboardservice "parcel-admin/internal/features/dashboard/service"
	fareadapter "parcel-admin/internal/features/fares/adapters"
	farehandler "parcel-admin/internal/features/fares/handler"
	fareservice "parcel-admin/internal/features/fares/service"
	reportadapter "parcel-admin/internal/features/reports/adapters"
	reporthandler "parcel-admin/internal/features/reports/handler"
	reportservice "parcel-admin/internal/features/reports/service"

	"go.uber.org/zap"
)

const (
	cacheKeyPrefix  = "parcel-admin"
	fareCacheTTL    = 5 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// guardedPrefixes are the path prefixes served only to authenticated admins.
var guardedPrefixes = []string{"/report", "/fare-config", "/admin"}

// @title Parcel Admin API
// @version 1.0
// @description Admin reporting backend for the parcel marketplace.
// @contact.name Platform Team
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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

	client, err := mongodb.Connect(context.Background(), cfg.Mongo)
	if err != nil {
		l.Fatal("MongoDB connection failed", zap.Error(err))
	}
	db := client.Database(cfg.Mongo.Database)

	reportCache := newCache(cfg, l)
	policy := mongodb.RetryPolicy(cfg.Reports)

	// Fares
	fareRepo := fareadapter.NewCachedFareRepository(
		fareadapter.NewMongoFareRepository(db, policy), reportCache, fareCacheTTL)
	fareSvc := fareservice.NewFareService(fareRepo)
	fareHdl := farehandler.NewFareHandler(fareSvc)

	// Reports
	reportSvc := reportservice.NewReportService(
		reportadapter.NewMongoRepository(db, policy),
		fareSvc,
		reportCache,
		reportservice.LogDiagnostics{},
		cfg.Reports,
	)
	reportHdl := reporthandler.NewReportHandler(reportSvc)

	// Dashboard
	dashboardSvc := dashboardservice.NewDashboardService(dashboardadapter.NewMongoDashboardRepository(db, policy))
	dashboardHdl := dashboardhandler.NewDashboardHandler(dashboardSvc)

	srv := server.New(cfg)
	api := srv.API(guardedPrefixes, auth.Middleware([]byte(cfg.Auth.JWTSecret), auth.NewMongoAdminStore(db)))

	reportHdl.Register(api)
	fareHdl.Register(api)
	dashboardHdl.Register(api)

	go func() {
		if err := srv.Run(); err != nil {
			l.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	l.Info("Shutting down")
	if err := srv.App.ShutdownWithTimeout(shutdownTimeout); err != nil {
		l.Error("Server shutdown failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		l.Error("MongoDB disconnect failed", zap.Error(err))
	}
	if err := reportCache.Close(); err != nil {
		l.Error("Cache close failed", zap.Error(err))
	}
}

// newCache returns the Redis cache, or a cache that always misses when Redis is
// not configured or unreachable.
func newCache(cfg *config.AppConfig, l *zap.Logger) cache.Cache {
	if cfg.Redis.URL == "" {
		l.Info("Redis not configured, caching disabled")
		return cache.NoopCache{}
	}

	redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL, cacheKeyPrefix)
	if err != nil {
		l.Warn("Invalid Redis URL, caching disabled", zap.Error(err))
		return cache.NoopCache{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		l.Warn("Redis unreachable, caching disabled", zap.Error(err))
		_ = redisCache.Close()
		return cache.NoopCache{}
	}

	l.Info("Redis cache enabled")
	return redisCache
}
