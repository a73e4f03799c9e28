package cache

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// Module provides the catalog repository, cached in Redis when an address is configured.
var Module = fx.Options(
	fx.Provide(newRedisClient, newCatalogRepository),
	fx.Invoke(registerLifecycle),
)

// newRedisClient returns nil when caching is disabled.
func newRedisClient(cfg *config.Config) *redis.Client {
	if cfg.RedisAddress == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
}

type catalogParams struct {
	fx.In

	Repositories repository.Factory
	Client       *redis.Client
	Config       *config.Config
	Logger       *slog.Logger
}

func newCatalogRepository(p catalogParams) repository.CatalogRepository {
	if p.Client == nil {
		return p.Repositories.Catalog()
	}
	return NewCatalogRepository(p.Repositories.Catalog(), p.Client, p.Config.CatalogCacheTTL, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, client *redis.Client, logger *slog.Logger) {
	if client == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("catalog cache unavailable, serving from database", slog.Any("error", err))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
