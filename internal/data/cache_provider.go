package data

import (
	"context"
	"log/slog"
	"time"

	"downloads-dashboard/internal/config"
	"downloads-dashboard/internal/models"
)

// CacheProvider memoizes enriched tables keyed by snapshot path. There
// is exactly one invalidation: a successful refresh deletes the entry
// for its path. No TTLs, no per-row staleness.
type CacheProvider interface {
	Get(ctx context.Context, path string) (CachedTable, bool)
	Set(ctx context.Context, path string, table *models.EnrichedTable)
	Delete(ctx context.Context, path string)
	Size(ctx context.Context) int
	Close() error
}

// CachedTable is one cache entry.
type CachedTable struct {
	Path      string               `json:"path"`
	Table     models.EnrichedTable `json:"table"`
	Timestamp time.Time            `json:"timestamp"`
}

// NewCacheProvider returns a new CacheProvider
func NewCacheProvider(cfg *config.Config, logger *slog.Logger) (CacheProvider, error) {
	switch cfg.Cache.Type {
	case "redis":
		return NewRedisCache(cfg, logger)
	case "memory":
		fallthrough
	default:
		return NewMemCache(), nil
	}
}
