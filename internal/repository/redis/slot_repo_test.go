package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"functionallab/coach-os/internal/config"
	"functionallab/coach-os/internal/repository"
	"functionallab/coach-os/internal/repository/storetest"
)

func TestSlotRepository_Contract(t *testing.T) {
	mr := miniredis.RunT(t)
	repo, err := Connect(context.Background(), config.RedisConfig{Address: mr.Addr(), KeyPrefix: "test:"})
	require.NoError(t, err)
	defer repo.Close()

	storetest.Run(t, repo)
}

func TestSlotRepository_UsesKeyPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	repo, err := Connect(context.Background(), config.RedisConfig{Address: mr.Addr(), KeyPrefix: "coachos:"})
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.Put(context.Background(), repository.SlotHistory, []byte(`[]`)))

	v, err := mr.Get("coachos:history")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)
}

func TestConnect_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Connect(context.Background(), config.RedisConfig{Address: addr})
	assert.Error(t, err)
}
