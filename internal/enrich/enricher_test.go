package enrich_test

import (
	"errors"
	"fmt"
	"testing"

	"downloads-dashboard/internal/enrich"
	"downloads-dashboard/internal/models"
	"downloads-dashboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrichNoMissingRegionsIsANoOp(t *testing.T) {
	resolver := &testutil.FakeResolver{
		Fn: func(lat, lon float64) (string, error) { return "ShouldNotBeUsed", nil },
	}
	e := enrich.NewEnricher(resolver, "Unknown", "Geocoding Error", testutil.Logger())

	records := []models.DownloadRecord{
		testutil.Record(1, "doc-a", "Madrid", testutil.Timestamp(1, 10)),
		testutil.Record(2, "doc-b", "Sevilla", testutil.Timestamp(1, 11)),
	}

	table := e.Enrich(records, "data.csv")

	require.Len(t, table.Records, 2)
	assert.Equal(t, "Madrid", table.Records[0].Region)
	assert.Equal(t, "Sevilla", table.Records[1].Region)
	assert.Zero(t, resolver.Lookups, "resolver must not be invoked when no region is missing")
}

func TestEnrichFillsMissingRegionsFromResolver(t *testing.T) {
	resolver := &testutil.FakeResolver{
		Fn: func(lat, lon float64) (string, error) { return "Cataluña", nil },
	}
	e := enrich.NewEnricher(resolver, "Unknown", "Geocoding Error", testutil.Logger())

	records := []models.DownloadRecord{
		testutil.Record(1, "doc-a", "", testutil.Timestamp(1, 10)),
		testutil.Record(2, "doc-b", "Madrid", testutil.Timestamp(1, 11)),
		testutil.Record(3, "doc-c", "", testutil.Timestamp(1, 12)),
	}

	table := e.Enrich(records, "data.csv")

	assert.Equal(t, "Cataluña", table.Records[0].Region)
	assert.Equal(t, "Madrid", table.Records[1].Region)
	assert.Equal(t, "Cataluña", table.Records[2].Region)
	assert.Equal(t, 2, resolver.Lookups)
}

func TestEnrichWithoutResolverUsesMissingLabel(t *testing.T) {
	e := enrich.NewEnricher(nil, "Unknown", "Geocoding Error", testutil.Logger())

	records := []models.DownloadRecord{
		testutil.Record(1, "doc-a", "", testutil.Timestamp(1, 10)),
		testutil.Record(2, "doc-b", "", testutil.Timestamp(1, 11)),
	}

	table := e.Enrich(records, "data.csv")

	for i := range table.Records {
		assert.Equal(t, "Unknown", table.Records[i].Region)
	}
}

func TestEnrichResolverFailureUsesErrorLabel(t *testing.T) {
	resolver := &testutil.FakeResolver{
		Fn: func(lat, lon float64) (string, error) { return "", errors.New("lookup blew up") },
	}
	e := enrich.NewEnricher(resolver, "Unknown", "Geocoding Error", testutil.Logger())

	records := []models.DownloadRecord{
		testutil.Record(1, "doc-a", "", testutil.Timestamp(1, 10)),
	}

	table := e.Enrich(records, "data.csv")

	assert.Equal(t, "Geocoding Error", table.Records[0].Region)
}

func TestEnrichRegionIsNeverEmpty(t *testing.T) {
	// A resolver that "succeeds" with an empty name still must not
	// leave an empty region behind.
	resolver := &testutil.FakeResolver{
		Fn: func(lat, lon float64) (string, error) { return "", nil },
	}
	e := enrich.NewEnricher(resolver, "Unknown", "Geocoding Error", testutil.Logger())

	records := []models.DownloadRecord{
		testutil.Record(1, "doc-a", "", testutil.Timestamp(1, 10)),
		testutil.Record(2, "doc-b", "Madrid", testutil.Timestamp(1, 11)),
	}

	table := e.Enrich(records, "data.csv")

	for i := range table.Records {
		assert.NotEmpty(t, table.Records[i].Region, "record %d has an empty region post-load", i)
	}
	assert.Equal(t, "Unknown", table.Records[0].Region)
}

func TestEnrichParsesDates(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantDate     string
		wantFailures int
	}{
		{name: "mysql datetime", raw: "2024-03-05 17:45:12", wantDate: "2024-03-05"},
		{name: "rfc3339", raw: "2024-03-05T17:45:12Z", wantDate: "2024-03-05"},
		{name: "date only", raw: "2024-03-05", wantDate: "2024-03-05"},
		{name: "garbage", raw: "not-a-date", wantFailures: 1},
		{name: "empty", raw: "", wantFailures: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := enrich.NewEnricher(nil, "Unknown", "Geocoding Error", testutil.Logger())

			table := e.Enrich([]models.DownloadRecord{
				testutil.Record(1, "doc-a", "Madrid", tt.raw),
			}, "data.csv")

			assert.Equal(t, tt.wantFailures, table.DateParseFailures)

			if tt.wantFailures == 0 {
				got := fmt.Sprintf("%04d-%02d-%02d",
					table.Records[0].Date.Year(), table.Records[0].Date.Month(), table.Records[0].Date.Day())
				assert.Equal(t, tt.wantDate, got)
			} else {
				assert.True(t, table.Records[0].Date.IsZero())
			}
		})
	}
}
