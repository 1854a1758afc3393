package data

import (
	"context"
	"sync"
	"time"

	"downloads-dashboard/internal/models"
)

type MemCache struct {
	cache map[string]CachedTable
	mutex sync.RWMutex
}

func NewMemCache() *MemCache {
	return &MemCache{
		cache: make(map[string]CachedTable),
	}
}

// Get returns the cached table for a snapshot path
func (d *MemCache) Get(_ context.Context, path string) (CachedTable, bool) {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	if cached, exists := d.cache[path]; exists {
		return cached, true
	}

	return CachedTable{}, false
}

// Set sets (or inserts) the table for a snapshot path
func (d *MemCache) Set(_ context.Context, path string, table *models.EnrichedTable) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.cache[path] = CachedTable{
		Path:      path,
		Table:     *table,
		Timestamp: time.Now(),
	}
}

// Delete removes an entry from the cache
func (d *MemCache) Delete(_ context.Context, path string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	delete(d.cache, path)
}

// Size returns the current number of elements in the cache
func (d *MemCache) Size(_ context.Context) int {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return len(d.cache)
}

// Close is a no-op; the map needs no teardown.
func (d *MemCache) Close() error {
	return nil
}
