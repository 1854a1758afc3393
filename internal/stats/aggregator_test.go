package stats_test

import (
	"testing"
	"time"

	"downloads-dashboard/internal/enrich"
	"downloads-dashboard/internal/models"
	"downloads-dashboard/internal/stats"
	"downloads-dashboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enriched(t *testing.T, records []models.DownloadRecord) *models.EnrichedTable {
	t.Helper()
	e := enrich.NewEnricher(nil, "Unknown", "Geocoding Error", testutil.Logger())
	return e.Enrich(records, "data.csv")
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRegionSummaries(t *testing.T) {
	table := enriched(t, []models.DownloadRecord{
		testutil.Record(1, "doc-a", "Madrid", testutil.Timestamp(1, 10)),
		testutil.Record(2, "doc-a", "Madrid", testutil.Timestamp(1, 11)),
		testutil.Record(3, "doc-b", "Madrid", testutil.Timestamp(2, 9)),
		testutil.Record(4, "doc-a", "Sevilla", testutil.Timestamp(2, 10)),
	})

	summaries := stats.RegionSummaries(table)
	require.Len(t, summaries, 2)

	// Sorted by download count descending.
	assert.Equal(t, "Madrid", summaries[0].Region)
	assert.Equal(t, 3, summaries[0].Downloads)
	assert.Equal(t, 2, summaries[0].UniqueDownloads)
	assert.Equal(t, "Sevilla", summaries[1].Region)
	assert.Equal(t, 1, summaries[1].Downloads)
	assert.Equal(t, 1, summaries[1].UniqueDownloads)
}

func TestRegionDownloadsSumToTotal(t *testing.T) {
	records := []models.DownloadRecord{
		testutil.Record(1, "doc-a", "Madrid", testutil.Timestamp(1, 10)),
		testutil.Record(2, "doc-a", "Sevilla", testutil.Timestamp(1, 11)),
		testutil.Record(3, "doc-b", "", testutil.Timestamp(2, 9)),
		testutil.Record(4, "doc-c", "Madrid", testutil.Timestamp(2, 10)),
		testutil.Record(5, "doc-a", "Galicia", testutil.Timestamp(3, 8)),
	}
	table := enriched(t, records)

	summaries := stats.RegionSummaries(table)
	overview := stats.Totals(table, 0)

	var downloads, unique int
	for _, s := range summaries {
		downloads += s.Downloads
		unique += s.UniqueDownloads
	}

	assert.Equal(t, overview.TotalDownloads, downloads,
		"per-region download counts must sum to the all-time total")
	assert.GreaterOrEqual(t, unique, overview.UniqueDownloads,
		"regions can share items, so the per-region unique sum is at least the global distinct count")

	for _, s := range summaries {
		assert.LessOrEqual(t, s.UniqueDownloads, overview.UniqueDownloads,
			"no region can have more distinct items than exist overall")
	}
}

func TestTotalsDistinctItems(t *testing.T) {
	// Three events for the same item are one unique download.
	table := enriched(t, []models.DownloadRecord{
		testutil.Record(1, "doc-a", "Madrid", testutil.Timestamp(1, 10)),
		testutil.Record(2, "doc-a", "Sevilla", testutil.Timestamp(1, 11)),
		testutil.Record(3, "doc-a", "Galicia", testutil.Timestamp(2, 9)),
	})

	overview := stats.Totals(table, 10)

	assert.Equal(t, 3, overview.TotalDownloads)
	assert.Equal(t, 1, overview.UniqueDownloads)
	assert.InDelta(t, 0.1, overview.Progress, 1e-9)
}

func TestTotalsZeroUniverse(t *testing.T) {
	table := enriched(t, []models.DownloadRecord{
		testutil.Record(1, "doc-a", "Madrid", testutil.Timestamp(1, 10)),
	})

	overview := stats.Totals(table, 0)
	assert.Zero(t, overview.Progress)
}

func TestDailySummaries(t *testing.T) {
	table := enriched(t, []models.DownloadRecord{
		testutil.Record(1, "doc-a", "Madrid", testutil.Timestamp(1, 10)),
		testutil.Record(2, "doc-b", "Madrid", testutil.Timestamp(1, 23)),
		testutil.Record(3, "doc-a", "Sevilla", testutil.Timestamp(2, 0)),
		testutil.Record(4, "doc-c", "Madrid", testutil.Timestamp(5, 12)),
	})

	days := stats.DailySummaries(table, day("2024-03-01"), day("2024-03-02"))
	require.Len(t, days, 2)

	assert.Equal(t, "2024-03-01", days[0].Date)
	assert.Equal(t, 2, days[0].Downloads)
	assert.Equal(t, 2, days[0].UniqueDownloads)
	assert.Equal(t, "2024-03-02", days[1].Date)
	assert.Equal(t, 1, days[1].Downloads)
}

func TestDailySummariesRangeIsInclusive(t *testing.T) {
	table := enriched(t, []models.DownloadRecord{
		testutil.Record(1, "doc-a", "Madrid", testutil.Timestamp(1, 0)),
		testutil.Record(2, "doc-b", "Madrid", testutil.Timestamp(3, 23)),
	})

	days := stats.DailySummaries(table, day("2024-03-01"), day("2024-03-03"))
	require.Len(t, days, 2)
	assert.Equal(t, "2024-03-01", days[0].Date)
	assert.Equal(t, "2024-03-03", days[1].Date)
}

func TestDailySummariesEmptyRange(t *testing.T) {
	table := enriched(t, []models.DownloadRecord{
		testutil.Record(1, "doc-a", "Madrid", testutil.Timestamp(1, 10)),
	})

	days := stats.DailySummaries(table, day("2030-01-01"), day("2030-01-31"))
	assert.Empty(t, days)
}

func TestDailySummariesSkipsUnparsedDates(t *testing.T) {
	table := enriched(t, []models.DownloadRecord{
		testutil.Record(1, "doc-a", "Madrid", testutil.Timestamp(1, 10)),
		testutil.Record(2, "doc-b", "Madrid", "not-a-date"),
	})

	days := stats.DailySummaries(table, day("2024-03-01"), day("2024-03-31"))
	require.Len(t, days, 1)
	assert.Equal(t, 1, days[0].Downloads)
}

func TestMapPoints(t *testing.T) {
	table := enriched(t, []models.DownloadRecord{
		testutil.Record(1, "doc-a", "Madrid", testutil.Timestamp(1, 10)),
		testutil.Record(2, "doc-b", "", testutil.Timestamp(1, 11)),
	})

	points := stats.MapPoints(table)
	require.Len(t, points, 2)
	assert.Equal(t, 40.4168, points[0].Latitude)
	assert.Equal(t, "Madrid", points[0].Region)
	assert.Equal(t, "Unknown", points[1].Region, "map points carry the placeholder region")
}
