package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Slot names a persistent location holding one serialized domain value.
type Slot string

const (
	SlotHistory     Slot = "history"
	SlotActiveCycle Slot = "active_cycle"
	SlotAnnualPlan  Slot = "annual_plan"
	SlotEquipment   Slot = "equipment"
	SlotBenchmarks  Slot = "benchmarks"
)

// Slots lists every slot the application owns.
var Slots = []Slot{SlotHistory, SlotActiveCycle, SlotAnnualPlan, SlotEquipment, SlotBenchmarks}

// SlotStore is a key-value layer mapping slots to full JSON snapshots.
// Put fully replaces the prior value; Delete removes the key entirely and is
// a no-op for absent slots.
type SlotStore interface {
	Get(ctx context.Context, slot Slot) ([]byte, error) // ErrNotFound when absent
	Put(ctx context.Context, slot Slot, value []byte) error
	Delete(ctx context.Context, slot Slot) error
	Close() error
}

// Load decodes the slot into v. It returns false when the slot is absent or
// holds a value that fails to parse; a malformed value is logged, never
// returned as an error. Only store failures are returned.
func Load(ctx context.Context, store SlotStore, slot Slot, v any, logger zerolog.Logger) (bool, error) {
	raw, err := store.Get(ctx, slot)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load slot %s: %w", slot, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		logger.Warn().Err(err).Str("slot", string(slot)).Msg("Discarding malformed slot value")
		return false, nil
	}
	return true, nil
}

// Save writes a full JSON snapshot of v into the slot.
func Save(ctx context.Context, store SlotStore, slot Slot, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", slot, err)
	}
	if err := store.Put(ctx, slot, raw); err != nil {
		return fmt.Errorf("save slot %s: %w", slot, err)
	}
	return nil
}
