package middlewares

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"downloads-dashboard/internal/config"
	"downloads-dashboard/internal/data"
)

// AppContext carries the wired application pieces into handlers. One
// base instance is built at startup; the middleware derives a
// per-request copy with Request/Response attached.
type AppContext struct {
	context.Context
	Config      *config.Config
	Logger      *slog.Logger
	Cache       data.CacheProvider
	DataService *data.Service

	Request  *http.Request
	Response http.ResponseWriter
}

type contextKey string

const appContextKey contextKey = "appContext"

func NewAppContext(ctx context.Context, cfg *config.Config, logger *slog.Logger, cache data.CacheProvider, dataService *data.Service) *AppContext {
	return &AppContext{
		Context:     ctx,
		Config:      cfg,
		Logger:      logger,
		Cache:       cache,
		DataService: dataService,
	}
}

func AppContextMiddleware(baseCtx *AppContext) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestCtx := &AppContext{
				Context:     r.Context(),
				Config:      baseCtx.Config,
				Logger:      baseCtx.Logger,
				Cache:       baseCtx.Cache,
				DataService: baseCtx.DataService,
				Request:     r,
				Response:    w,
			}

			ctx := context.WithValue(r.Context(), appContextKey, requestCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type AppHandler func(*AppContext)

// HandlerFunc converts an AppHandler to a http.HandlerFunc
func (ctx *AppContext) HandlerFunc(h AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		h(appCtx)
	}
}

func GetAppContext(r *http.Request) *AppContext {
	if ctx, ok := r.Context().Value(appContextKey).(*AppContext); ok {
		return ctx
	}

	return nil
}

func (ctx *AppContext) WriteJSON(status int, data interface{}) {
	ctx.Response.Header().Set("Content-Type", "application/json")
	ctx.Response.WriteHeader(status)
	if err := json.NewEncoder(ctx.Response).Encode(data); err != nil {
		ctx.Logger.Error("failed to marshal json", "error", err)
	}
}

func (ctx *AppContext) SetJSONError(status int, message string) {
	ctx.WriteJSON(status, map[string]string{
		"error": message,
	})
}
