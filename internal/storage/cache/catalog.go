package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

const (
	keyPrefix = "storefront:catalog"
	// loadTimeout bounds a shared load, which outlives the caller that started it.
	loadTimeout = 10 * time.Second
)

// CatalogRepository serves catalog reads from Redis and falls back to the
// wrapped repository on a miss. Redis failures are logged and never surface to
// callers. Order resolution by ids always goes to the wrapped repository.
type CatalogRepository struct {
	next   repository.CatalogRepository
	client redis.Cmdable
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

// NewCatalogRepository wraps next with a cache-aside layer.
func NewCatalogRepository(next repository.CatalogRepository, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *CatalogRepository {
	return &CatalogRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func key(operation, id string) string {
	if id == "" {
		return fmt.Sprintf("%s:%s", keyPrefix, operation)
	}
	return fmt.Sprintf("%s:%s:%s", keyPrefix, operation, id)
}

func (c *CatalogRepository) Occasions(ctx context.Context) ([]model.Occasion, error) {
	return cached(ctx, c, key("occasions", ""), c.next.Occasions)
}

func (c *CatalogRepository) BouquetsByOccasion(ctx context.Context, occasionID string) ([]model.Bouquet, error) {
	return cached(ctx, c, key("occasion", occasionID), func(ctx context.Context) ([]model.Bouquet, error) {
		return c.next.BouquetsByOccasion(ctx, occasionID)
	})
}

func (c *CatalogRepository) Bouquet(ctx context.Context, id string) (*model.Bouquet, error) {
	return cached(ctx, c, key("bouquet", id), func(ctx context.Context) (*model.Bouquet, error) {
		return c.next.Bouquet(ctx, id)
	})
}

func (c *CatalogRepository) Featured(ctx context.Context) ([]model.Bouquet, error) {
	return cached(ctx, c, key("featured", ""), c.next.Featured)
}

func (c *CatalogRepository) FindBouquetsByIDs(ctx context.Context, ids []string) ([]model.Bouquet, error) {
	return c.next.FindBouquetsByIDs(ctx, ids)
}

func cached[T any](ctx context.Context, c *CatalogRepository, key string, load func(context.Context) (T, error)) (T, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			return value, nil
		}
		c.logger.Warn("discarding corrupt catalog cache entry", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("catalog cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	// Concurrent misses for one key share a single repository load. The load is
	// detached from the caller that started it; every caller waits on its own ctx.
	ch := c.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		fresh, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.store(loadCtx, key, fresh)
		return fresh, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func (c *CatalogRepository) store(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("encode catalog cache entry", slog.String("key", key), slog.Any("error", err))
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}
