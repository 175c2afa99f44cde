// Package memory holds an in-process slot store used by tests and the
// "memory" store driver.
package memory

import (
	"context"
	"sync"

	"functionallab/coach-os/internal/repository"
)

// SlotRepository keeps slots in a map. Values are copied on the way in and out.
type SlotRepository struct {
	mu    sync.RWMutex
	slots map[repository.Slot][]byte
}

var _ repository.SlotStore = (*SlotRepository)(nil)

func NewSlotRepository() *SlotRepository {
	return &SlotRepository{slots: make(map[repository.Slot][]byte)}
}

func (r *SlotRepository) Get(_ context.Context, slot repository.Slot) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.slots[slot]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (r *SlotRepository) Put(_ context.Context, slot repository.Slot, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[slot] = append([]byte(nil), value...)
	return nil
}

func (r *SlotRepository) Delete(_ context.Context, slot repository.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slots, slot)
	return nil
}

func (r *SlotRepository) Close() error { return nil }
