package handlers

import (
	"net/http"
	"time"

	"downloads-dashboard/internal/middlewares"
	"downloads-dashboard/internal/stats"
)

const dateParam = "2006-01-02"

func GETOverviewHandler(ctx *middlewares.AppContext) {
	table, err := ctx.DataService.Load(ctx.Context)
	if err != nil {
		if writeNoDataIfExpected(ctx, err) {
			return
		}
		ctx.Logger.Error("failed to load snapshot", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "Failed to load the snapshot.")
		return
	}

	overview := stats.Totals(table, ctx.Config.Data.UniverseSize)

	if last := ctx.DataService.LastRefresh(); !last.IsZero() {
		overview.LastRefresh = last.Format(time.RFC3339)
	}

	ctx.WriteJSON(http.StatusOK, overview)
}

func GETRegionSummariesHandler(ctx *middlewares.AppContext) {
	table, err := ctx.DataService.Load(ctx.Context)
	if err != nil {
		if writeNoDataIfExpected(ctx, err) {
			return
		}
		ctx.Logger.Error("failed to load snapshot", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "Failed to load the snapshot.")
		return
	}

	ctx.WriteJSON(http.StatusOK, RegionsResponse{
		Regions: stats.RegionSummaries(table),
	})
}

// GETDailySummariesHandler needs both ends of the closed date range;
// an incomplete selection is reported, not guessed at.
func GETDailySummariesHandler(ctx *middlewares.AppContext) {
	startRaw := ctx.Request.URL.Query().Get("start")
	endRaw := ctx.Request.URL.Query().Get("end")

	if startRaw == "" || endRaw == "" {
		ctx.SetJSONError(http.StatusBadRequest, "Select both a start and an end date.")
		return
	}

	start, err := time.Parse(dateParam, startRaw)
	if err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "Invalid start date, expected YYYY-MM-DD.")
		return
	}

	end, err := time.Parse(dateParam, endRaw)
	if err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "Invalid end date, expected YYYY-MM-DD.")
		return
	}

	table, err := ctx.DataService.Load(ctx.Context)
	if err != nil {
		if writeNoDataIfExpected(ctx, err) {
			return
		}
		ctx.Logger.Error("failed to load snapshot", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "Failed to load the snapshot.")
		return
	}

	ctx.WriteJSON(http.StatusOK, DailyResponse{
		Start: startRaw,
		End:   endRaw,
		Days:  stats.DailySummaries(table, start, end),
	})
}
