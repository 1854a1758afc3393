package enrich

import (
	"log/slog"
	"time"

	"downloads-dashboard/internal/metrics"
	"downloads-dashboard/internal/models"
)

// timestampLayouts are tried in order against fecha_descarga. The
// source writes MySQL DATETIME text; RFC 3339 covers snapshots that
// passed through other tooling.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

type Enricher struct {
	resolver     Resolver // nil when the geocoding capability is unavailable
	missingLabel string
	errorLabel   string
	logger       *slog.Logger
}

func NewEnricher(resolver Resolver, missingLabel, errorLabel string, logger *slog.Logger) *Enricher {
	return &Enricher{
		resolver:     resolver,
		missingLabel: missingLabel,
		errorLabel:   errorLabel,
		logger:       logger,
	}
}

// Enrich fills missing regions and parses timestamps. It never fails:
// geocoding problems degrade to labelled placeholders and unparseable
// timestamps are counted, logged and left with a zero date.
//
// Post-condition: no record has an empty region.
func (e *Enricher) Enrich(records []models.DownloadRecord, source string) *models.EnrichedTable {
	table := &models.EnrichedTable{
		Records:  make([]models.EnrichedRecord, len(records)),
		Source:   source,
		LoadedAt: time.Now(),
	}

	for i, rec := range records {
		table.Records[i] = models.EnrichedRecord{DownloadRecord: rec}
	}

	e.fillRegions(table)
	e.parseDates(table)

	return table
}

func (e *Enricher) fillRegions(table *models.EnrichedTable) {
	var missing []int
	for i := range table.Records {
		if table.Records[i].Region == "" {
			missing = append(missing, i)
		}
	}

	if len(missing) == 0 {
		return
	}

	if e.resolver == nil {
		e.logger.Warn("geocoder unavailable, using placeholder regions",
			"rows", len(missing), "label", e.missingLabel)
		metrics.RegionLookupFallbacks.WithLabelValues("unavailable").Add(float64(len(missing)))
		for _, i := range missing {
			table.Records[i].Region = e.missingLabel
		}
		return
	}

	var failures int
	for _, i := range missing {
		rec := &table.Records[i]

		region, err := e.resolver.ReverseGeocode(rec.Latitude, rec.Longitude)
		if err != nil {
			failures++
			rec.Region = e.errorLabel
			continue
		}

		rec.Region = region
	}

	if failures > 0 {
		e.logger.Warn("region lookup failed for some rows",
			"rows", failures, "label", e.errorLabel)
		metrics.RegionLookupFallbacks.WithLabelValues("error").Add(float64(failures))
	}

	// Residual empties get the generic placeholder.
	for i := range table.Records {
		if table.Records[i].Region == "" {
			table.Records[i].Region = e.missingLabel
		}
	}
}

func (e *Enricher) parseDates(table *models.EnrichedTable) {
	for i := range table.Records {
		rec := &table.Records[i]

		ts, ok := parseTimestamp(rec.Downloaded)
		if !ok {
			table.DateParseFailures++
			continue
		}

		rec.Timestamp = ts
		rec.Date = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	}

	if table.DateParseFailures > 0 {
		e.logger.Warn("some download timestamps did not parse",
			"rows", table.DateParseFailures, "source", table.Source)
	}
}

func parseTimestamp(raw string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}
