package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"functionallab/coach-os/internal/api"
)

// shutdownTimeout is how long in-flight requests get to finish.
const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	logger := app.logger
	if app.cfg.Generator.APIKey == "" {
		logger.Warn().Msg("generator.api_key is empty; workout generation will fail")
	}
	if !app.cfg.Auth.Enabled {
		logger.Warn().Msg("Authentication disabled; the API is open")
	}

	// --- Initialize Gin Engine ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(logger))

	api.SetupRoutes(router, api.Services{
		Auth:      app.auth,
		Workouts:  app.workouts,
		History:   app.history,
		Cycles:    app.cycles,
		Plans:     app.plans,
		Inventory: app.inventory,
		Assistant: app.assistant,
		Transfer:  app.transfer,
	})

	server := &http.Server{
		Addr:         app.cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  app.cfg.Server.ReadTimeout,
		WriteTimeout: app.cfg.Server.WriteTimeout,
		IdleTimeout:  app.cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("address", server.Addr).Str("version", Version).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Shutting down server...")

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("Server stopped with error")
		return err
	}
	logger.Info().Msg("Server exiting.")
	return nil
}
