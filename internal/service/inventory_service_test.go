package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"functionallab/coach-os/internal/domain"
	"functionallab/coach-os/internal/repository"
	"functionallab/coach-os/internal/repository/memory"
)

func TestInventory_SeedsDefaultEquipment(t *testing.T) {
	s := newMemoryServices(t)
	ctx := context.Background()

	assert.Equal(t, DefaultEquipment, s.inventory.Equipment())
	raw, err := s.store.Get(ctx, repository.SlotEquipment)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Concept2 Rower")
}

func TestInventory_KeepsStoredEmptyEquipment(t *testing.T) {
	store := memory.NewSlotRepository()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, repository.SlotEquipment, []byte(`[]`)))

	s := newTestServices(t, store)
	assert.Empty(t, s.inventory.Equipment())
}

func TestInventory_Equipment(t *testing.T) {
	s := newMemoryServices(t)
	ctx := context.Background()
	require.NoError(t, s.inventory.ReplaceEquipment(ctx, nil))

	_, err := s.inventory.AddEquipment(ctx, " ", 2)
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = s.inventory.AddEquipment(ctx, "Rower", -1)
	assert.ErrorIs(t, err, ErrValidationFailed)

	a, err := s.inventory.AddEquipment(ctx, " Rower ", 2)
	require.NoError(t, err)
	assert.Equal(t, "Rower", a.Name)
	b, err := s.inventory.AddEquipment(ctx, "Rower", 1)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, s.inventory.Equipment(), 2)

	require.NoError(t, s.inventory.RemoveEquipment(ctx, "missing"))
	require.NoError(t, s.inventory.RemoveEquipment(ctx, a.ID))
	items := s.inventory.Equipment()
	require.Len(t, items, 1)
	assert.Equal(t, b.ID, items[0].ID)
}

func TestInventory_Benchmarks(t *testing.T) {
	s := newMemoryServices(t)
	ctx := context.Background()

	_, err := s.inventory.AddBenchmark(ctx, "Fran", domain.BenchmarkGirl, "")
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = s.inventory.AddBenchmark(ctx, "Fran", "Open", "21-15-9")
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Empty(t, s.inventory.Benchmarks())

	bm, err := s.inventory.AddBenchmark(ctx, "Back squat 1RM", "", "Work up to a heavy single")
	require.NoError(t, err)
	assert.Equal(t, domain.BenchmarkLift, bm.Category)

	require.NoError(t, s.inventory.RemoveBenchmark(ctx, bm.ID))
	assert.Empty(t, s.inventory.Benchmarks())
}

func TestInventory_Report(t *testing.T) {
	s := newMemoryServices(t)
	ctx := context.Background()

	require.NoError(t, s.inventory.ReplaceEquipment(ctx, []domain.Equipment{
		{ID: "1", Name: "Rower", Quantity: 2},
		{ID: "2", Name: "Bike", Quantity: 1},
	}))
	_, err := s.history.Record(ctx, domain.Workout{ID: "a", ClassType: domain.ClassEndurance, Timestamp: 1})
	require.NoError(t, err)
	_, err = s.history.Record(ctx, domain.Workout{ID: "b", ClassType: domain.ClassEndurance, Timestamp: 2})
	require.NoError(t, err)

	r := s.inventory.Report()
	assert.Equal(t, 2, r.Items)
	assert.Equal(t, 3, r.TotalUnits)
	assert.False(t, r.LogisticsHealthy)
	assert.Equal(t, 2, r.Distribution[domain.ClassEndurance])
	assert.Equal(t, 0, r.Distribution[domain.ClassPilates])
	assert.Len(t, r.Distribution, len(domain.ClassTypes))
	assert.Equal(t, 2, r.Sessions)

	_, err = s.inventory.AddEquipment(ctx, "Kettlebells", 3)
	require.NoError(t, err)
	assert.True(t, s.inventory.Report().LogisticsHealthy)
}

func TestInventory_ResetReseeds(t *testing.T) {
	s := newMemoryServices(t)
	ctx := context.Background()
	require.NoError(t, s.inventory.ReplaceEquipment(ctx, nil))
	_, err := s.inventory.AddBenchmark(ctx, "Murph", domain.BenchmarkHero, "Long one")
	require.NoError(t, err)

	require.NoError(t, s.inventory.Reset(ctx))
	assert.Len(t, s.inventory.Equipment(), len(DefaultEquipment))
	assert.Empty(t, s.inventory.Benchmarks())

	reloaded, err := NewInventoryService(ctx, s.store, s.history, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, reloaded.Equipment(), len(DefaultEquipment))
}
