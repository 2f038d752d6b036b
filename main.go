package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mortgage-planner/config"
	httpLayer "mortgage-planner/http"
	"mortgage-planner/logging"
	"mortgage-planner/repository"
	"mortgage-planner/service"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	logging.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", logging.FieldError, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *logging.Logger) error {
	ctx := context.Background()

	planRepo, closeRepo, err := newPlanRepository(cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	cache, closeCache, err := newCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	mortgageService := service.NewMortgageService(planRepo, cache, logger)
	termRecommendationService := service.NewTermRecommendationService(logger)
	householdService := service.NewHouseholdService(logger)

	rateLimiter := httpLayer.NewRateLimiter(httpLayer.RateLimiterConfig{
		Capacity: cfg.RateLimit,
		Window:   cfg.RateLimitWindow.Std(),
	}, logger)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Handlers{
		Plan:               httpLayer.NewPlanHandler(mortgageService),
		TermRecommendation: httpLayer.NewTermRecommendationHandler(termRecommendationService),
		Household:          httpLayer.NewHouseholdHandler(householdService),
	}, rateLimiter, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API listening", "addr", "http://localhost:"+cfg.Port,
			"plan_backend", cfg.PlanBackend, "cache_backend", cfg.CacheBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("start server: %w", err)
	case sig := <-quit:
		logger.Info("Shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server exited")
	return nil
}

func newPlanRepository(cfg *config.Config, logger *logging.Logger) (repository.PlanRepository, func(), error) {
	if cfg.PlanBackend != "sqlite" {
		return repository.NewPlanRepositoryMemory(), func() {}, nil
	}

	repo, err := repository.NewSQLitePlanRepository(cfg.SQLitePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open plan store: %w", err)
	}
	stored, err := repo.Count(context.Background())
	if err != nil {
		repo.Close()
		return nil, nil, fmt.Errorf("read plan store: %w", err)
	}
	logger.WithComponent(logging.ComponentStorage).Info("Plan store ready", "path", cfg.SQLitePath, "plans", stored)
	return repo, closer(repo, logger), nil
}

func newCache(ctx context.Context, cfg *config.Config, logger *logging.Logger) (repository.CacheRepository, func(), error) {
	if cfg.CacheBackend != "redis" {
		cache := repository.NewMemoryCache(cfg.CacheMaxEntries, cfg.CacheTTL.Std())
		cacheLogger := logger.WithComponent(logging.ComponentCache)
		sweepCtx, stopSweep := context.WithCancel(ctx)
		go cache.RunCleanup(sweepCtx, cfg.CacheSweepInterval.Std(), func(removed int) {
			cacheLogger.Debug("Expired plans removed from cache", "removed", removed)
		})
		return cache, stopSweep, nil
	}

	cache := repository.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL.Std())
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		cache.Close()
		return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	logger.WithComponent(logging.ComponentCache).Info("Redis cache ready", "addr", cfg.RedisAddr)
	return cache, closer(cache, logger), nil
}

func closer(c io.Closer, logger *logging.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Warn("Error closing resource", logging.FieldError, err)
		}
	}
}
