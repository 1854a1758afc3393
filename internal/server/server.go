package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"downloads-dashboard/internal/config"
	"downloads-dashboard/internal/data"
	"downloads-dashboard/internal/enrich"
	"downloads-dashboard/internal/middlewares"
	"downloads-dashboard/internal/storage"
)

type Server struct {
	cfg         *config.Config
	logger      *slog.Logger
	appCtx      *middlewares.AppContext
	httpServer  *http.Server
	debugServer *http.Server
	storage     storage.Provider
	cancel      context.CancelFunc
}

func New(cfg *config.Config) (*Server, error) {
	logger := setupLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())

	dataService, cache, storageProvider, err := setupDataService(cfg, logger)
	if err != nil {
		cancel()
		return nil, err
	}

	appCtx := middlewares.NewAppContext(ctx, cfg, logger, cache, dataService)

	router := setupRouter(appCtx)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	var debugServer *http.Server
	if cfg.Server.Debug != nil && cfg.Server.Debug.Enabled {
		debugRouter := setupDebugRouter()
		debugServer = &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Debug.Host, cfg.Server.Debug.Port),
			Handler: debugRouter,
		}
	}

	return &Server{
		cfg:         cfg,
		logger:      logger,
		appCtx:      appCtx,
		httpServer:  httpServer,
		debugServer: debugServer,
		storage:     storageProvider,
		cancel:      cancel,
	}, nil
}

func (s *Server) Start() error {
	go func() {
		s.logger.Info("Server Started", "port", s.cfg.Server.Port)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server failed to start", "error", err)
			s.cancel()
		}
	}()

	if s.debugServer != nil {
		go func() {
			s.logger.Info("Debug server starting", "address", s.debugServer.Addr)
			if err := s.debugServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("Debug server failed to start", "error", err)
				s.cancel()
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		s.logger.Info("Shutdown signal received")
	case <-s.appCtx.Done():
		s.logger.Info("Context canceled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	s.logger.Info("Shutting Down Server")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
		return err
	}

	if s.debugServer != nil {
		if err := s.debugServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Debug server forced to shutdown", "error", err)
		}
	}

	if s.storage != nil {
		s.storage.Close()
	}

	if err := s.appCtx.Cache.Close(); err != nil {
		s.logger.Error("error closing cache", "error", err)
	}

	s.logger.Info("Server Exited")
	return nil
}

// setupDataService wires the pipeline. Setup failures that the
// operator can fix at runtime (missing connection entry, missing
// driver) do not abort startup: the service remembers the error and
// reports it when a refresh is attempted.
func setupDataService(cfg *config.Config, logger *slog.Logger) (*data.Service, data.CacheProvider, storage.Provider, error) {
	var provider storage.Provider

	dbProvider, storageErr := storage.NewDatabaseProvider(cfg)
	if storageErr != nil {
		logger.Error("data source unavailable, refreshes will fail until fixed", "error", storageErr)
	} else {
		provider = dbProvider
	}

	resolver, err := enrich.NewResolver()
	if err != nil {
		// Degrade to placeholder regions rather than refusing to start.
		logger.Warn("reverse geocoder unavailable, missing regions will use placeholders", "error", err)
		resolver = nil
	}

	enricher := enrich.NewEnricher(resolver, cfg.Data.MissingRegionLabel, cfg.Data.ErrorRegionLabel, logger)

	cache, err := data.NewCacheProvider(cfg, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error setting up cache provider: %w", err)
	}

	service := data.NewService(provider, storageErr, cache, enricher, cfg.Data.SnapshotPath, logger)

	return service, cache, provider, nil
}
