package handlers

import (
	"net/http"

	"downloads-dashboard/internal/middlewares"
	"downloads-dashboard/internal/stats"
)

// GETMapHandler returns the coordinate columns the UI feeds to its map
// widget.
func GETMapHandler(ctx *middlewares.AppContext) {
	table, err := ctx.DataService.Load(ctx.Context)
	if err != nil {
		if writeNoDataIfExpected(ctx, err) {
			return
		}
		ctx.Logger.Error("failed to load snapshot", "error", err)
		ctx.SetJSONError(http.StatusInternalServerError, "Failed to load the snapshot.")
		return
	}

	ctx.WriteJSON(http.StatusOK, map[string]interface{}{
		"points": stats.MapPoints(table),
	})
}
