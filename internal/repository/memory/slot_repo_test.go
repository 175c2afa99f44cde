package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"functionallab/coach-os/internal/repository"
	"functionallab/coach-os/internal/repository/storetest"
)

func TestSlotRepository_Contract(t *testing.T) {
	storetest.Run(t, NewSlotRepository())
}

func TestSlotRepository_CopiesValues(t *testing.T) {
	r := NewSlotRepository()
	ctx := context.Background()

	buf := []byte(`"x"`)
	require.NoError(t, r.Put(ctx, repository.SlotHistory, buf))
	buf[1] = 'y'

	got, err := r.Get(ctx, repository.SlotHistory)
	require.NoError(t, err)
	assert.Equal(t, `"x"`, string(got))
}
