package storage

import (
	"context"
	"errors"

	"downloads-dashboard/internal/models"
)

// Sentinel errors the handlers translate into user-visible messages.
var (
	// ErrNotConfigured means the named connection is absent from the
	// config's connections map.
	ErrNotConfigured = errors.New("storage: connection not configured")

	// ErrDriverMissing means the connection names a dialect this build
	// has no driver for.
	ErrDriverMissing = errors.New("storage: database driver missing")

	// ErrConnectivity wraps unreachable-source, bad-credential and
	// bad-query failures from the driver.
	ErrConnectivity = errors.New("storage: database unreachable")
)

// Provider executes the fixed read-only query against the source of
// truth. It never caches; every call hits the database.
type Provider interface {
	FetchDownloads(ctx context.Context) ([]models.DownloadRecord, error)
	Ping(ctx context.Context) error
	Close()
}
