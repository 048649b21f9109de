// backend-go/cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/agarbatti/backend-go/internal/api"
	"github.com/andresuchdata/agarbatti/backend-go/internal/bootstrap"
	"github.com/andresuchdata/agarbatti/backend-go/internal/config"
	"github.com/andresuchdata/agarbatti/backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetFormat(cfg.Log.Format)
	if cfg.Log.Level != "" {
		logger.SetLevel(cfg.Log.Level)
	} else {
		logger.SetLevel(cfg.Server.Mode)
	}
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("Failed to open record store")
	}

	objects, err := bootstrap.OpenObjects(ctx, cfg)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Object storage unavailable; snapshot archives disabled")
		objects = nil
	}

	router := api.NewRouter(bootstrap.NewServices(store, objects, cfg), cfg.Server.AllowedOrigins, cfg.Server.APIToken)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Str("backend", cfg.Store.Backend).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error().Err(err).Msg("Server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log.Info().Msg("Shutting down server...")

	// In-flight requests get 5 seconds; the store is closed after them so a
	// blob store flushes its final state.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Log.Error().Err(err).Msg("Failed to close record store")
		os.Exit(1)
	}

	logger.Log.Info().Msg("Server exiting")
}
