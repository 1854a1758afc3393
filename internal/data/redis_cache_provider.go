package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"downloads-dashboard/internal/config"
	"downloads-dashboard/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisCacheClient is the slice of the go-redis API the cache uses.
// Kept narrow so tests can stand in for a live server.
type RedisCacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Keys(ctx context.Context, pattern string) *redis.StringSliceCmd
	Close() error
}

// RedisCache keeps the enriched-table cache in Redis so several
// dashboard instances behind one snapshot volume share it.
type RedisCache struct {
	client RedisCacheClient
	logger *slog.Logger
}

func NewRedisCache(cfg *config.Config, logger *slog.Logger) (*RedisCache, error) {
	if cfg.Redis == nil {
		return nil, fmt.Errorf("redis cache selected but no redis section configured")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Address,
		Username:     cfg.Redis.Username,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.CacheIndex,
		MinIdleConns: 2,
	})

	return &RedisCache{
		client: client,
		logger: logger,
	}, nil
}

// key generates a namespaced Redis key
func (r *RedisCache) key(path string) string {
	return fmt.Sprintf("cache:snapshot:%s", path)
}

func (r *RedisCache) Get(ctx context.Context, path string) (CachedTable, bool) {
	raw, err := r.client.Get(ctx, r.key(path)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Error("error executing redis GET", "error", err)
		}
		return CachedTable{}, false
	}

	var cached CachedTable
	if err := json.Unmarshal(raw, &cached); err != nil {
		r.logger.Error("error unmarshalling cached table", "error", err)
		return CachedTable{}, false
	}

	return cached, true
}

func (r *RedisCache) Set(ctx context.Context, path string, table *models.EnrichedTable) {
	cached := CachedTable{
		Path:      path,
		Table:     *table,
		Timestamp: time.Now(),
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		r.logger.Error("error marshalling cached table", "error", err)
		return
	}

	if err := r.client.Set(ctx, r.key(path), raw, 0).Err(); err != nil {
		r.logger.Error("error executing redis SET", "error", err)
	}
}

func (r *RedisCache) Delete(ctx context.Context, path string) {
	if err := r.client.Del(ctx, r.key(path)).Err(); err != nil {
		r.logger.Error("error executing redis DEL", "error", err)
	}
}

func (r *RedisCache) Size(ctx context.Context) int {
	keys, err := r.client.Keys(ctx, "cache:snapshot:*").Result()
	if err != nil {
		r.logger.Error("error executing redis KEYS", "error", err)
		return 0
	}

	return len(keys)
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
