// Package stats computes the dashboard aggregates. Everything here is
// a pure function over an enriched table; the same input always yields
// the same output.
package stats

import (
	"sort"
	"time"

	"downloads-dashboard/internal/models"
)

const dateLayout = "2006-01-02"

// RegionSummaries groups downloads by region, counting total events
// and distinct downloaded items per region. Output is sorted by
// download count descending, region name ascending on ties.
func RegionSummaries(table *models.EnrichedTable) []models.RegionSummary {
	counts := make(map[string]int)
	items := make(map[string]map[string]struct{})

	for i := range table.Records {
		rec := &table.Records[i]

		counts[rec.Region]++
		if items[rec.Region] == nil {
			items[rec.Region] = make(map[string]struct{})
		}
		items[rec.Region][rec.ItemID] = struct{}{}
	}

	summaries := make([]models.RegionSummary, 0, len(counts))
	for region, count := range counts {
		summaries = append(summaries, models.RegionSummary{
			Region:          region,
			Downloads:       count,
			UniqueDownloads: len(items[region]),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Downloads != summaries[j].Downloads {
			return summaries[i].Downloads > summaries[j].Downloads
		}
		return summaries[i].Region < summaries[j].Region
	})

	return summaries
}

// DailySummaries groups downloads by calendar day within [start, end]
// inclusive. Rows whose timestamp failed to parse carry a zero date
// and are skipped. An empty range yields an empty slice, never an
// error.
func DailySummaries(table *models.EnrichedTable, start, end time.Time) []models.DailySummary {
	startDay := truncateToDay(start)
	endDay := truncateToDay(end)

	counts := make(map[time.Time]int)
	items := make(map[time.Time]map[string]struct{})

	for i := range table.Records {
		rec := &table.Records[i]

		if rec.Date.IsZero() || rec.Date.Before(startDay) || rec.Date.After(endDay) {
			continue
		}

		counts[rec.Date]++
		if items[rec.Date] == nil {
			items[rec.Date] = make(map[string]struct{})
		}
		items[rec.Date][rec.ItemID] = struct{}{}
	}

	summaries := make([]models.DailySummary, 0, len(counts))
	for day, count := range counts {
		summaries = append(summaries, models.DailySummary{
			Date:            day.Format(dateLayout),
			Downloads:       count,
			UniqueDownloads: len(items[day]),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Date < summaries[j].Date
	})

	return summaries
}

// Totals computes the headline metrics: all-time event count, distinct
// downloaded items, and progress against the fixed known universe.
func Totals(table *models.EnrichedTable, universeSize int) models.Overview {
	distinct := make(map[string]struct{})
	for i := range table.Records {
		distinct[table.Records[i].ItemID] = struct{}{}
	}

	overview := models.Overview{
		TotalDownloads:  len(table.Records),
		UniqueDownloads: len(distinct),
		UniverseSize:    universeSize,
	}

	if universeSize > 0 {
		overview.Progress = float64(len(distinct)) / float64(universeSize)
	}

	return overview
}

// MapPoints projects the coordinate columns for the map view.
func MapPoints(table *models.EnrichedTable) []MapPoint {
	points := make([]MapPoint, len(table.Records))
	for i := range table.Records {
		rec := &table.Records[i]
		points[i] = MapPoint{
			Latitude:  rec.Latitude,
			Longitude: rec.Longitude,
			Region:    rec.Region,
		}
	}

	return points
}

type MapPoint struct {
	Latitude  float64 `json:"latitud"`
	Longitude float64 `json:"longitud"`
	Region    string  `json:"region"`
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
