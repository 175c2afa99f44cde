// Package storetest holds the behavior every SlotStore implementation must share.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"functionallab/coach-os/internal/repository"
)

// Run exercises store against the SlotStore contract. The store must start empty.
func Run(t *testing.T, store repository.SlotStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("absent slot", func(t *testing.T) {
		_, err := store.Get(ctx, repository.SlotAnnualPlan)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, repository.SlotHistory, []byte(`[{"id":"a"}]`)))
		got, err := store.Get(ctx, repository.SlotHistory)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"a"}]`, string(got))
	})

	t.Run("put replaces prior value", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, repository.SlotEquipment, []byte(`[1,2,3]`)))
		require.NoError(t, store.Put(ctx, repository.SlotEquipment, []byte(`[]`)))
		got, err := store.Get(ctx, repository.SlotEquipment)
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(got))
	})

	t.Run("slots are independent", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, repository.SlotBenchmarks, []byte(`["b"]`)))
		got, err := store.Get(ctx, repository.SlotHistory)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"a"}]`, string(got))
	})

	t.Run("delete removes key", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, repository.SlotActiveCycle, []byte(`{"id":"c"}`)))
		require.NoError(t, store.Delete(ctx, repository.SlotActiveCycle))
		_, err := store.Get(ctx, repository.SlotActiveCycle)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete absent slot is a no-op", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, repository.SlotAnnualPlan))
	})
}
