package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"functionallab/coach-os/internal/clock"
	"functionallab/coach-os/internal/config"
	"functionallab/coach-os/internal/generator"
	"functionallab/coach-os/internal/locale"
	"functionallab/coach-os/internal/logging"
	"functionallab/coach-os/internal/repository"
	"functionallab/coach-os/internal/repository/factory"
	"functionallab/coach-os/internal/service"
	"functionallab/coach-os/internal/storage"
)

// application is the wired object graph shared by every command.
type application struct {
	cfg    config.Config
	logger zerolog.Logger
	store  repository.SlotStore

	auth      service.AuthService
	history   service.HistoryService
	cycles    service.CycleService
	plans     service.PlanService
	inventory service.InventoryService
	workouts  service.WorkoutService
	assistant service.AssistantService
	transfer  service.TransferService

	closers []io.Closer
}

// newApplication loads configuration, opens the store and builds every
// service. Managers load their slots here, once.
func newApplication(ctx context.Context) (*application, error) {
	// 1. Configuration
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Logger
	logger, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	app := &application{cfg: cfg, logger: logger}
	if logCloser != nil {
		app.closers = append(app.closers, logCloser)
	}

	// 3. Store
	store, err := factory.Open(ctx, cfg.Store, logger)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	app.store = store
	app.closers = append([]io.Closer{store}, app.closers...)

	// 4. Managers
	clk := clock.RealClock{}
	loc := locale.New(cfg.Studio.Locale)

	if app.history, err = service.NewHistoryService(ctx, store, clk, logger); err != nil {
		app.Close()
		return nil, err
	}
	if app.cycles, err = service.NewCycleService(ctx, store, clk, logger); err != nil {
		app.Close()
		return nil, err
	}
	if app.plans, err = service.NewPlanService(ctx, store, clk, loc, logger); err != nil {
		app.Close()
		return nil, err
	}
	if app.inventory, err = service.NewInventoryService(ctx, store, app.history, logger); err != nil {
		app.Close()
		return nil, err
	}

	// 5. Generator and orchestration
	gen := generator.NewGemini(cfg.Generator, cfg.Studio, logger)
	app.workouts = service.NewWorkoutService(service.WorkoutDeps{
		Generator: gen,
		History:   app.history,
		Cycles:    app.cycles,
		Plans:     app.plans,
		Inventory: app.inventory,
		Clock:     clk,
		Locale:    loc,
		Timeout:   cfg.Generator.Timeout,
	}, logger)
	app.assistant = service.NewAssistantService(gen, cfg.Generator.Timeout, logger)

	// 6. Optional backups and auth
	var files storage.FileStorage
	if cfg.BackupsEnabled() {
		if files, err = storage.NewS3Storage(ctx, cfg.S3, logger); err != nil {
			app.Close()
			return nil, fmt.Errorf("init S3 storage: %w", err)
		}
	}
	app.transfer = service.NewTransferService(service.TransferDeps{
		History:   app.history,
		Cycles:    app.cycles,
		Plans:     app.plans,
		Inventory: app.inventory,
		Workouts:  app.workouts,
		Storage:   files,
		Clock:     clk,
	}, logger)

	if cfg.Auth.Enabled {
		app.auth = service.NewAuthService(cfg.Auth.CoachEmail, cfg.Auth.PasswordHash, cfg.JWT.Secret, cfg.JWT.Expiration, clk)
	}

	return app, nil
}

// Close releases the store and the log file.
func (a *application) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close resource")
		}
	}
	a.closers = nil
}
