package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"

	"downloads-dashboard/internal/models"

	"github.com/jszwec/csvutil"
)

var (
	// ErrNotFound means no snapshot has been written yet. Expected on
	// first run; callers prompt for a refresh instead of failing.
	ErrNotFound = errors.New("snapshot: file not found")

	// ErrEmpty means the snapshot exists but holds no data rows.
	ErrEmpty = errors.New("snapshot: no records")
)

// Read loads the snapshot at path. A header-only file (written by a
// refresh that returned zero rows) reports ErrEmpty, not a decode
// failure.
func Read(path string) ([]models.DownloadRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	var records []models.DownloadRecord
	if err := csvutil.Unmarshal(data, &records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
		}
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}

	return records, nil
}
