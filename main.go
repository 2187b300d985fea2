package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prospection-agent/config"
	httpLayer "prospection-agent/http"
	"prospection-agent/logger"
	"prospection-agent/repository"
	"prospection-agent/service"
)

const insightCachePrefix = "prospection:insight:"

func main() {
	logger.Init(logger.FromEnv())
	log := logger.Named("main")

	configPath := os.Getenv("PROSPECTION_CONFIG")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	historyRepo, insightCache, closeStores, err := buildStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Session.Backend).Msg("failed to open session store")
	}
	defer closeStores()

	insightService := service.NewInsightService(service.InsightOptions{
		Enabled: cfg.Insight.Enabled,
		APIKey:  cfg.Insight.APIKey,
		APIURL:  cfg.Insight.URL,
		Model:   cfg.Insight.Model,
		Timeout: cfg.Insight.Timeout,
	}, insightCache)

	prospectionService := service.NewProspectionService(historyRepo, insightService)
	prospectionService.SetDefaults(cfg.Defaults)
	dashboardService := service.NewDashboardService(historyRepo)

	if configPath != "" {
		go func() {
			err := config.Watch(ctx, configPath, func(c *config.Config) {
				prospectionService.SetDefaults(c.Defaults)
			})
			if err != nil {
				log.Error().Err(err).Msg("config watcher stopped")
			}
		}()
	}

	var rateLimiter *httpLayer.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
		defer rateLimiter.Stop()
	}

	handler := httpLayer.NewRouter(httpLayer.RouterOptions{
		Prospection: httpLayer.NewProspectionHandler(prospectionService),
		Dashboard:   httpLayer.NewDashboardHandler(dashboardService),
		RateLimiter: rateLimiter,
		CORSOrigins: cfg.Server.CORSOrigins,
		SessionTTL:  cfg.Session.TTL,
		SlowRequest: cfg.Server.SlowRequest,
		TrustProxy:  cfg.Server.TrustProxy,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Server.Addr).
			Str("session_backend", cfg.Session.Backend).
			Msg("API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		log.Error().Err(err).Msg("error starting server")
		return
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server exited")
}

// buildStores opens the session history store and the insight cache for the
// configured backend.
func buildStores(
	ctx context.Context,
	cfg *config.Config,
) (repository.HistoryRepository, repository.CacheRepository, func(), error) {
	switch cfg.Session.Backend {
	case config.BackendRedis:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		client, err := repository.NewRedisClient(connectCtx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() { _ = client.Close() }
		return repository.NewRedisHistoryRepository(client, cfg.Redis.KeyPrefix, cfg.Session.TTL),
			repository.NewRedisCache(client, insightCachePrefix, cfg.Session.TTL),
			closeFn, nil

	default:
		return repository.NewHistoryRepositoryMemory(cfg.Session.MaxSessions, cfg.Session.TTL),
			repository.NewMemoryCache(service.InsightCacheSize, cfg.Session.TTL),
			func() {}, nil
	}
}
