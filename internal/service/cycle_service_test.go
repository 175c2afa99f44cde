package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"functionallab/coach-os/internal/clock"
	"functionallab/coach-os/internal/domain"
	"functionallab/coach-os/internal/repository"
)

func TestCycle_CreateValidation(t *testing.T) {
	s := newMemoryServices(t)
	ctx := context.Background()

	_, err := s.cycles.Create(ctx, CreateCycleInput{Name: "  ", Goal: "Strength", TotalWeeks: 4})
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = s.cycles.Create(ctx, CreateCycleInput{Name: "Block A", Goal: "\t", TotalWeeks: 4})
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Nil(t, s.cycles.Active())
}

func TestCycle_Create(t *testing.T) {
	s := newMemoryServices(t)
	ctx := context.Background()

	c, err := s.cycles.Create(ctx, CreateCycleInput{Name: " Block A ", Goal: " Strength ", TotalWeeks: 6})
	require.NoError(t, err)
	assert.Equal(t, "Block A", c.Name)
	assert.Equal(t, "Strength", c.Goal)
	assert.Equal(t, 1, c.CurrentWeek)
	assert.Equal(t, 6, c.TotalWeeks)
	assert.True(t, c.StartDate.Equal(testNow))
	assert.NotEmpty(t, c.ID)

	replaced, err := s.cycles.Create(ctx, CreateCycleInput{Name: "Block B", Goal: "Engine"})
	require.NoError(t, err)
	assert.Equal(t, DefaultCycleWeeks, replaced.TotalWeeks)
	assert.Equal(t, replaced.ID, s.cycles.Active().ID)
	assert.NotEqual(t, c.ID, replaced.ID)
}

func TestCycle_AdvanceAndRetreatStayInBounds(t *testing.T) {
	s := newMemoryServices(t)
	ctx := context.Background()

	_, err := s.cycles.AdvanceWeek(ctx)
	assert.ErrorIs(t, err, ErrNoActiveCycle)

	_, err = s.cycles.Create(ctx, CreateCycleInput{Name: "A", Goal: "B", TotalWeeks: 3})
	require.NoError(t, err)

	c, err := s.cycles.RetreatWeek(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, c.CurrentWeek)

	steps := []struct {
		advance bool
		want    int
	}{
		{true, 2}, {true, 3}, {true, 3}, {true, 3}, {false, 2}, {false, 1}, {false, 1}, {true, 2},
	}
	for _, st := range steps {
		if st.advance {
			c, err = s.cycles.AdvanceWeek(ctx)
		} else {
			c, err = s.cycles.RetreatWeek(ctx)
		}
		require.NoError(t, err)
		assert.Equal(t, st.want, c.CurrentWeek)
		assert.GreaterOrEqual(t, c.CurrentWeek, 1)
		assert.LessOrEqual(t, c.CurrentWeek, c.TotalWeeks)
	}
}

func TestCycle_CloseRemovesSlot(t *testing.T) {
	s := newMemoryServices(t)
	ctx := context.Background()

	_, err := s.cycles.Create(ctx, CreateCycleInput{Name: "A", Goal: "B", TotalWeeks: 3})
	require.NoError(t, err)

	assert.ErrorIs(t, s.cycles.Close(ctx, false), ErrConfirmationRequired)
	assert.NotNil(t, s.cycles.Active())

	require.NoError(t, s.cycles.Close(ctx, true))
	assert.Nil(t, s.cycles.Active())
	_, err = s.store.Get(ctx, repository.SlotActiveCycle)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCycle_PersistsWeekAcrossRestart(t *testing.T) {
	s := newMemoryServices(t)
	ctx := context.Background()

	_, err := s.cycles.Create(ctx, CreateCycleInput{Name: "A", Goal: "B", TotalWeeks: 5})
	require.NoError(t, err)
	_, err = s.cycles.AdvanceWeek(ctx)
	require.NoError(t, err)

	reloaded, err := NewCycleService(ctx, s.store, clock.Fixed(testNow), zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, reloaded.Active())
	assert.Equal(t, 2, reloaded.Active().CurrentWeek)
}

func TestCycle_ActiveReturnsCopy(t *testing.T) {
	s := newMemoryServices(t)
	ctx := context.Background()
	_, err := s.cycles.Create(ctx, CreateCycleInput{Name: "A", Goal: "B", TotalWeeks: 5})
	require.NoError(t, err)

	c := s.cycles.Active()
	c.CurrentWeek = 99
	assert.Equal(t, 1, s.cycles.Active().CurrentWeek)
}

func TestCycle_StepRecoversOutOfRangeWeek(t *testing.T) {
	s := newMemoryServices(t)
	ctx := context.Background()

	require.NoError(t, s.cycles.Replace(ctx, &domain.TrainingCycle{
		ID: "cycle-imported", Name: "Imported", Goal: "Engine", TotalWeeks: 4, CurrentWeek: 9, StartDate: testNow,
	}))
	c, err := s.cycles.RetreatWeek(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, c.CurrentWeek)

	require.NoError(t, s.cycles.Replace(ctx, &domain.TrainingCycle{
		ID: "cycle-imported", Name: "Imported", Goal: "Engine", TotalWeeks: 4, CurrentWeek: 0, StartDate: testNow,
	}))
	c, err = s.cycles.AdvanceWeek(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, c.CurrentWeek)
	assert.Equal(t, 1, s.cycles.Active().CurrentWeek)
}
