// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"net/http"

	"availability-api/internal/api"
	"availability-api/internal/cache"
	"availability-api/internal/catalog"
	"availability-api/internal/common/config"
	"availability-api/internal/common/database"
	"availability-api/internal/common/logger"
	"availability-api/internal/common/observability"
	"availability-api/internal/inventory/fetcher"
	"availability-api/internal/inventory/matcher"
	"availability-api/internal/websearch"

	"github.com/gin-gonic/gin"
)

// App holds the wired service graph behind the HTTP router.
type App struct {
	Config  *config.Config
	Catalog *catalog.Service
	Router  *gin.Engine
}

// New builds the service graph. redis may be nil unless cfg.Cache.Backend is redis.
func New(cfg *config.Config, log logger.Logger, obs *observability.Observability, redis *database.RedisClient) (*App, error) {
	opts := catalog.Options{
		TTL:          config.GetDuration(cfg.Cache.TTL),
		SkipDegraded: cfg.Cache.SkipDegraded,
	}

	if cfg.Cache.Backend == config.CacheBackendRedis {
		if redis == nil {
			return nil, fmt.Errorf("cache backend %q requires a redis client", cfg.Cache.Backend)
		}
		opts.Store = cache.NewRedisStore[catalog.Snapshot](redis.Client, cfg.Cache.KeyPrefix, opts.TTL)
	}

	svc := catalog.NewService(
		fetcher.NewFetcher(fetcher.LoadConfig(cfg.Upstream), log),
		matcher.New(matcher.LoadConfig(cfg.Matcher)),
		websearch.NewHandler(websearch.LoadConfig(cfg.WebSearch), log),
		log,
		opts,
	)

	handler := api.NewHandler(svc, log)
	if redis != nil {
		handler.AddReadinessCheck("redis", func(ctx context.Context) error {
			return redis.Ping(ctx)
		})
	}

	return &App{
		Config:  cfg,
		Catalog: svc,
		Router:  api.NewRouter(handler, obs, log),
	}, nil
}

// Server returns an http.Server for the router using the configured timeouts.
func (a *App) Server() *http.Server {
	return &http.Server{
		Addr:         a.Config.Server.Address,
		Handler:      a.Router,
		ReadTimeout:  config.GetDuration(a.Config.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(a.Config.Server.WriteTimeout),
	}
}
