package handlers

import (
	"errors"
	"net/http"

	"downloads-dashboard/internal/middlewares"
	"downloads-dashboard/internal/storage"
)

// POSTRefreshHandler re-runs the source query and rewrites the
// snapshot. Every failure becomes a message for the operator; a failed
// refresh leaves the previous snapshot usable.
func POSTRefreshHandler(ctx *middlewares.AppContext) {
	result, err := ctx.DataService.Refresh(ctx.Context)
	if err != nil {
		ctx.Logger.Error("refresh failed", "error", err)

		switch {
		case errors.Is(err, storage.ErrNotConfigured):
			ctx.SetJSONError(http.StatusServiceUnavailable,
				"No database connection is configured for this dashboard. Check the connections section of the config.")
		case errors.Is(err, storage.ErrDriverMissing):
			ctx.SetJSONError(http.StatusServiceUnavailable,
				"The configured database dialect has no driver in this build.")
		case errors.Is(err, storage.ErrConnectivity):
			ctx.SetJSONError(http.StatusBadGateway,
				"Could not reach the database or the query failed. The previous snapshot is untouched.")
		default:
			ctx.SetJSONError(http.StatusInternalServerError,
				"Refresh failed: "+err.Error())
		}
		return
	}

	ctx.WriteJSON(http.StatusOK, RefreshResponse{
		Status:  "ok",
		Refresh: result,
	})
}
