package storage

import (
	"context"
	"database/sql"
	"fmt"

	"downloads-dashboard/internal/models"
)

// downloadsQuery is the one fixed read the dashboard performs.
const downloadsQuery = `
	SELECT id, id_descargado, latitud, longitud, region, fecha_descarga
	FROM descargas`

// FetchDownloads runs the fixed query and returns every row. A NULL
// region scans to the empty string and is filled during enrichment.
func (p *DatabaseProvider) FetchDownloads(ctx context.Context) ([]models.DownloadRecord, error) {
	rows, err := p.db.QueryContext(ctx, downloadsQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	defer rows.Close()

	var records []models.DownloadRecord
	for rows.Next() {
		var (
			rec    models.DownloadRecord
			region sql.NullString
		)

		if err := rows.Scan(&rec.ID, &rec.ItemID, &rec.Latitude, &rec.Longitude, &region, &rec.Downloaded); err != nil {
			return nil, fmt.Errorf("%w: scanning descargas row: %v", ErrConnectivity, err)
		}

		rec.Region = region.String
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	return records, nil
}
