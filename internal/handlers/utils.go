package handlers

import (
	"errors"
	"net/http"

	"downloads-dashboard/internal/middlewares"
	"downloads-dashboard/internal/snapshot"
)

// writeNoDataIfExpected handles the two non-fatal load outcomes. It
// returns true when the response has been written.
func writeNoDataIfExpected(ctx *middlewares.AppContext, err error) bool {
	switch {
	case errors.Is(err, snapshot.ErrNotFound):
		ctx.WriteJSON(http.StatusOK, NoDataResponse{
			Status:  "no_data",
			Message: "No snapshot yet. Refresh to load data from the database.",
		})
		return true
	case errors.Is(err, snapshot.ErrEmpty):
		ctx.WriteJSON(http.StatusOK, NoDataResponse{
			Status:  "no_data",
			Message: "The last refresh returned no records.",
		})
		return true
	}

	return false
}
