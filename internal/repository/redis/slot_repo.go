// Package redis implements the slot store on Redis string keys.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"functionallab/coach-os/internal/config"
	"functionallab/coach-os/internal/repository"
)

// SlotRepository maps each slot to the key <prefix><slot>.
type SlotRepository struct {
	client *goredis.Client
	prefix string
}

var _ repository.SlotStore = (*SlotRepository)(nil)

// Connect creates a client from the configuration and pings the server.
func Connect(ctx context.Context, cfg config.RedisConfig) (*SlotRepository, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis at %s: %w", cfg.Address, err)
	}
	return NewSlotRepository(client, cfg.KeyPrefix), nil
}

// NewSlotRepository wraps an existing client.
func NewSlotRepository(client *goredis.Client, prefix string) *SlotRepository {
	return &SlotRepository{client: client, prefix: prefix}
}

func (r *SlotRepository) key(slot repository.Slot) string {
	return r.prefix + string(slot)
}

func (r *SlotRepository) Get(ctx context.Context, slot repository.Slot) ([]byte, error) {
	v, err := r.client.Get(ctx, r.key(slot)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read slot: %w", err)
	}
	return v, nil
}

func (r *SlotRepository) Put(ctx context.Context, slot repository.Slot, value []byte) error {
	if err := r.client.Set(ctx, r.key(slot), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}
	return nil
}

func (r *SlotRepository) Delete(ctx context.Context, slot repository.Slot) error {
	if err := r.client.Del(ctx, r.key(slot)).Err(); err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}

func (r *SlotRepository) Close() error {
	return r.client.Close()
}
