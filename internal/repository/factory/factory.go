// Package factory opens the slot store selected by configuration.
package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"functionallab/coach-os/internal/config"
	"functionallab/coach-os/internal/repository"
	"functionallab/coach-os/internal/repository/memory"
	"functionallab/coach-os/internal/repository/mongo"
	"functionallab/coach-os/internal/repository/redis"
	"functionallab/coach-os/internal/repository/sqlite"
)

// Open connects the configured backend. The caller owns Close.
func Open(ctx context.Context, cfg config.StoreConfig, logger zerolog.Logger) (repository.SlotStore, error) {
	logger = logger.With().Str("driver", cfg.Driver).Logger()

	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn().Msg("Using in-memory store; data is lost on exit")
		return memory.NewSlotRepository(), nil

	case config.DriverSQLite:
		store, err := sqlite.NewSlotRepository(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", cfg.SQLite.Path).Msg("Opened SQLite store")
		return store, nil

	case config.DriverMongo:
		client, err := mongo.ConnectDB(cfg.Mongo.URI)
		if err != nil {
			return nil, fmt.Errorf("connect to MongoDB: %w", err)
		}
		db := client.Database(cfg.Mongo.Name)
		if err := mongo.EnsureSlotIndexes(ctx, mongo.SlotCollection(db)); err != nil {
			// Not fatal: the store works without the index.
			logger.Warn().Err(err).Msg("Failed to create slot indexes")
		}
		logger.Info().Str("database", cfg.Mongo.Name).Msg("Connected to MongoDB")
		return mongo.NewMongoSlotRepository(client, db), nil

	case config.DriverRedis:
		store, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("address", cfg.Redis.Address).Msg("Connected to Redis")
		return store, nil
	}
	return nil, fmt.Errorf("%w: unknown store driver %q", config.ErrInvalidConfig, cfg.Driver)
}
