package handlers

import (
	"net/http"

	"downloads-dashboard/internal/middlewares"
	"downloads-dashboard/internal/version"
)

func HandlerHealth(ctx *middlewares.AppContext) {
	if err := ctx.DataService.Ping(ctx.Context); err != nil {
		ctx.Logger.Warn("health check: database unreachable", "error", err)
		ctx.WriteJSON(http.StatusOK, map[string]string{
			"status":   "degraded",
			"database": "unreachable",
			"version":  version.GetVersion(),
		})
		return
	}

	ctx.WriteJSON(http.StatusOK, map[string]string{
		"status":  "OK",
		"version": version.GetVersion(),
	})
}
