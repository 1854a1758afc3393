package data

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"downloads-dashboard/internal/enrich"
	"downloads-dashboard/internal/metrics"
	"downloads-dashboard/internal/models"
	"downloads-dashboard/internal/snapshot"
	"downloads-dashboard/internal/storage"

	"github.com/google/uuid"
)

// Service owns the refresh-and-load pipeline: source query → snapshot
// overwrite → cache invalidation on refresh, and snapshot read →
// enrichment → cache fill on load.
type Service struct {
	storage      storage.Provider // nil when setup failed; storageErr says why
	storageErr   error
	cache        CacheProvider
	enricher     *enrich.Enricher
	logger       *slog.Logger
	snapshotPath string

	// mu serializes refreshes; the snapshot file has one writer.
	mu          sync.Mutex
	lastRefresh time.Time
}

func NewService(provider storage.Provider, storageErr error, cache CacheProvider, enricher *enrich.Enricher, snapshotPath string, logger *slog.Logger) *Service {
	return &Service{
		storage:      provider,
		storageErr:   storageErr,
		cache:        cache,
		enricher:     enricher,
		logger:       logger,
		snapshotPath: snapshotPath,
	}
}

// RefreshResult reports one completed refresh.
type RefreshResult struct {
	ID          string    `json:"id"`
	Rows        int       `json:"rows"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// Refresh re-runs the source query and overwrites the snapshot. On any
// failure the previous snapshot and cache entry are left untouched and
// remain usable by the next load. No retries.
func (s *Service) Refresh(ctx context.Context) (*RefreshResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.storage == nil {
		metrics.RefreshesTotal.WithLabelValues("not_configured").Inc()
		return nil, s.storageErr
	}

	start := time.Now()

	records, err := s.storage.FetchDownloads(ctx)
	if err != nil {
		metrics.RefreshesTotal.WithLabelValues("query_error").Inc()
		return nil, err
	}

	if err := snapshot.Write(s.snapshotPath, records); err != nil {
		metrics.RefreshesTotal.WithLabelValues("write_error").Inc()
		return nil, err
	}

	// The old enriched table is stale the moment the file is replaced.
	s.cache.Delete(ctx, s.snapshotPath)
	metrics.CacheSize.Set(float64(s.cache.Size(ctx)))

	s.lastRefresh = time.Now()

	metrics.RefreshesTotal.WithLabelValues("success").Inc()
	metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	metrics.SnapshotRows.Set(float64(len(records)))

	result := &RefreshResult{
		ID:          uuid.New().String(),
		Rows:        len(records),
		RefreshedAt: s.lastRefresh,
	}

	s.logger.Info("snapshot refreshed",
		"refresh_id", result.ID,
		"rows", result.Rows,
		"path", s.snapshotPath,
		"duration", time.Since(start))

	return result, nil
}

// Load returns the enriched table for the current snapshot, reading
// and enriching it only when the cache has no entry for the path.
// snapshot.ErrNotFound and snapshot.ErrEmpty pass through for the
// handlers to translate.
func (s *Service) Load(ctx context.Context) (*models.EnrichedTable, error) {
	if cached, ok := s.cache.Get(ctx, s.snapshotPath); ok {
		metrics.CacheHits.WithLabelValues("enriched_table").Inc()
		return &cached.Table, nil
	}
	metrics.CacheMisses.WithLabelValues("enriched_table").Inc()

	records, err := snapshot.Read(s.snapshotPath)
	if err != nil {
		return nil, err
	}

	table := s.enricher.Enrich(records, s.snapshotPath)
	s.cache.Set(ctx, s.snapshotPath, table)
	metrics.CacheSize.Set(float64(s.cache.Size(ctx)))

	return table, nil
}

// LastRefresh reports when the snapshot was last rewritten. Before any
// in-process refresh it falls back to the file's mtime, so a restart
// does not blank the dashboard's "last updated" line.
func (s *Service) LastRefresh() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lastRefresh.IsZero() {
		return s.lastRefresh
	}

	if info, err := os.Stat(s.snapshotPath); err == nil {
		return info.ModTime()
	}

	return time.Time{}
}

// Ping reports source reachability for the health endpoint.
func (s *Service) Ping(ctx context.Context) error {
	if s.storage == nil {
		return s.storageErr
	}
	return s.storage.Ping(ctx)
}
