package handlers

import (
	"downloads-dashboard/internal/data"
	"downloads-dashboard/internal/models"
)

type RefreshResponse struct {
	Status  string              `json:"status"`
	Refresh *data.RefreshResult `json:"refresh,omitempty"`
}

// NoDataResponse tells the UI to show a "please refresh" prompt. It is
// a 200, not an error: an absent or empty snapshot is a normal state
// on first run.
type NoDataResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type RegionsResponse struct {
	Regions []models.RegionSummary `json:"regions"`
}

type DailyResponse struct {
	Start string                `json:"start"`
	End   string                `json:"end"`
	Days  []models.DailySummary `json:"days"`
}
