package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/plantdoc/backend/internal/config"
	"github.com/plantdoc/backend/internal/delivery/http"
	"github.com/plantdoc/backend/internal/domain"
	"github.com/plantdoc/backend/internal/logging"
	"github.com/plantdoc/backend/internal/provider"
	"github.com/plantdoc/backend/internal/repository/postgres"
	"github.com/plantdoc/backend/internal/service"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.IsDevelopment())
	if envErr != nil {
		logger.Info().Msg("No .env file found, using system environment")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Database connection (optional reference catalog)
	pool := connectPostgres(ctx, cfg.DatabaseURL, logger)
	if pool != nil {
		defer pool.Close()
	}

	var catalogRepo domain.CatalogRepository
	if pool != nil {
		catalogRepo = postgres.NewCatalogRepository(pool)
	}
	profiles, catalogRepo := postgres.LoadProfiles(ctx, catalogRepo, logger)

	// Redis connection (optional weather cache)
	rdb := connectRedis(ctx, cfg.RedisURL, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	// Dependency Injection: Providers
	registry := provider.NewRegistry(cfg, rdb, logger)

	// Dependency Injection: Services
	merger := service.NewMerger(service.NewSelector(service.DefaultHealthChain), cfg.KeywordInference)
	synthesizer := service.NewSynthesizer(profiles, registry.Synthetic)
	analysisSvc := service.NewAnalysisService(registry.Image, registry.Weather, merger, synthesizer, logger)
	if len(analysisSvc.ActiveProviders()) == 0 {
		logger.Warn().Msg("No provider credentials configured, reports will be synthetic")
	}

	// Fiber App
	app := http.NewApp(cfg.MaxImageSize, cfg.ProviderTimeout+15*time.Second, logger)
	http.SetupRoutes(app, http.NewHandler(analysisSvc, catalogRepo, cfg.MaxImageSize, logger))

	// Graceful shutdown
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Interface("providers", analysisSvc.ActiveProviders()).
			Str("catalog", catalogRepo.Source()).
			Msg("Server starting")
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")
	if err := app.ShutdownWithTimeout(cfg.ProviderTimeout + 5*time.Second); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	logger.Info().Msg("Server exited gracefully")
}

func connectPostgres(ctx context.Context, url string, logger zerolog.Logger) *pgxpool.Pool {
	if url == "" {
		logger.Info().Msg("DATABASE_URL not set, using built-in disease catalog")
		return nil
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		logger.Warn().Err(err).Msg("Could not connect to database, using built-in disease catalog")
		return nil
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Warn().Err(err).Msg("Database unreachable, using built-in disease catalog")
		pool.Close()
		return nil
	}

	logger.Info().Msg("Connected to PostgreSQL")
	return pool
}

func connectRedis(ctx context.Context, url string, logger zerolog.Logger) *redis.Client {
	if url == "" {
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid REDIS_URL, weather cache disabled")
		return nil
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("Redis unreachable, weather cache disabled")
		_ = rdb.Close()
		return nil
	}

	logger.Info().Msg("Connected to Redis")
	return rdb
}
