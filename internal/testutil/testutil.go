// Package testutil provides the shared fakes and builders the package
// tests use in place of a live database, geocoder and HTTP stack.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"downloads-dashboard/internal/config"
	"downloads-dashboard/internal/data"
	"downloads-dashboard/internal/middlewares"
	"downloads-dashboard/internal/models"
)

// FakeStorage implements storage.Provider.
type FakeStorage struct {
	Records []models.DownloadRecord
	Err     error
	PingErr error
	Fetches int
}

func (f *FakeStorage) FetchDownloads(_ context.Context) ([]models.DownloadRecord, error) {
	f.Fetches++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Records, nil
}

func (f *FakeStorage) Ping(_ context.Context) error { return f.PingErr }

func (f *FakeStorage) Close() {}

// FakeResolver implements enrich.Resolver with a fixed function.
type FakeResolver struct {
	Fn      func(lat, lon float64) (string, error)
	Lookups int
}

func (f *FakeResolver) ReverseGeocode(lat, lon float64) (string, error) {
	f.Lookups++
	return f.Fn(lat, lon)
}

// Logger returns a logger that swallows everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Config returns a minimal valid config whose snapshot path lives in a
// per-test temp dir.
func Config(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Server: config.ServerConfig{Port: 8080},
		Log:    config.LogConfig{Level: "info", Format: "text"},
		Connections: map[string]config.ConnectionConfig{
			"db_mysql": {
				Dialect:  "mysql",
				Host:     "localhost",
				Port:     3306,
				Database: "test",
				Username: "test",
				Password: "test",
			},
		},
		Data: config.DataConfig{
			Connection:         "db_mysql",
			SnapshotPath:       filepath.Join(t.TempDir(), "data.csv"),
			UniverseSize:       100,
			MissingRegionLabel: "Unknown",
			ErrorRegionLabel:   "Geocoding Error",
		},
		Cache: config.CacheConfig{Type: "memory"},
	}
}

// Record builds a DownloadRecord with sane coordinates.
func Record(id int64, itemID, region, downloaded string) models.DownloadRecord {
	return models.DownloadRecord{
		ID:         id,
		ItemID:     itemID,
		Latitude:   40.4168,
		Longitude:  -3.7038,
		Region:     region,
		Downloaded: downloaded,
	}
}

// RequestContext wires an AppContext around an httptest recorder so a
// handler can be invoked directly.
func RequestContext(cfg *config.Config, service *data.Service, method, target string) (*middlewares.AppContext, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, http.NoBody)

	ctx := middlewares.NewAppContext(req.Context(), cfg, Logger(), nil, service)
	ctx.Request = req
	ctx.Response = rec

	return ctx, rec
}

// Timestamp formats a day/hour as the source's DATETIME text.
func Timestamp(day, hour int) string {
	return fmt.Sprintf("2024-03-%02d %02d:00:00", day, hour)
}
