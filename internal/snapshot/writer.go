// Package snapshot persists the latest query result as a flat CSV file
// and reads it back. The file is the single source the dashboard
// renders from between refreshes.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"downloads-dashboard/internal/models"

	"github.com/jszwec/csvutil"
)

// Write overwrites the snapshot at path with the given records. The
// CSV is written to a temp file in the same directory and renamed into
// place, so a concurrent reader sees either the old or the new full
// content. Zero records still produce a header row.
func Write(path string, records []models.DownloadRecord) error {
	data, err := csvutil.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create snapshot temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close snapshot temp file: %w", err)
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to set snapshot permissions: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	return nil
}
