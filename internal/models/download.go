package models

import "time"

// DownloadRecord is one download event as it exists in the snapshot
// file. Column names match the `descargas` source table; the timestamp
// is kept in its raw text form until enrichment parses it.
type DownloadRecord struct {
	ID         int64   `csv:"id" json:"id"`
	ItemID     string  `csv:"id_descargado" json:"id_descargado"`
	Latitude   float64 `csv:"latitud" json:"latitud"`
	Longitude  float64 `csv:"longitud" json:"longitud"`
	Region     string  `csv:"region" json:"region"`
	Downloaded string  `csv:"fecha_descarga" json:"fecha_descarga"`
}

// EnrichedRecord is a DownloadRecord after region fill and date
// parsing. Region is never empty. Date is the calendar day at midnight
// UTC; it is zero when the raw timestamp could not be parsed.
type EnrichedRecord struct {
	DownloadRecord
	Timestamp time.Time `json:"timestamp"`
	Date      time.Time `json:"date"`
}

// EnrichedTable holds a fully enriched snapshot for one render cycle.
type EnrichedTable struct {
	Records []EnrichedRecord `json:"records"`

	// Source is the snapshot path the table was loaded from.
	Source string `json:"source"`

	// DateParseFailures counts rows whose fecha_descarga did not parse.
	DateParseFailures int `json:"date_parse_failures"`

	LoadedAt time.Time `json:"loaded_at"`
}

// RegionSummary is one aggregation row per region.
type RegionSummary struct {
	Region          string `json:"region"`
	Downloads       int    `json:"descargas"`
	UniqueDownloads int    `json:"descargas_unicas"`
}

// DailySummary is one aggregation row per calendar day.
type DailySummary struct {
	Date            string `json:"fecha"`
	Downloads       int    `json:"descargas"`
	UniqueDownloads int    `json:"descargas_unicas"`
}

// Overview carries the headline metrics for the dashboard.
type Overview struct {
	TotalDownloads  int     `json:"total_descargas"`
	UniqueDownloads int     `json:"descargas_unicas"`
	UniverseSize    int     `json:"universe_size"`
	Progress        float64 `json:"progress"`
	LastRefresh     string  `json:"last_refresh,omitempty"`
}
