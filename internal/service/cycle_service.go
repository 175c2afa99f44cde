package service

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"functionallab/coach-os/internal/clock"
	"functionallab/coach-os/internal/domain"
	"functionallab/coach-os/internal/repository"
)

// DefaultCycleWeeks is used when a cycle is created without a length.
const DefaultCycleWeeks = 4

// CreateCycleInput carries the fields for a new training cycle.
type CreateCycleInput struct {
	Name           string
	Goal           string
	TotalWeeks     int
	MacroPhaseLink string
}

// --- Service Interface ---
type CycleService interface {
	Active() *domain.TrainingCycle
	Create(ctx context.Context, in CreateCycleInput) (*domain.TrainingCycle, error)
	AdvanceWeek(ctx context.Context) (*domain.TrainingCycle, error)
	RetreatWeek(ctx context.Context) (*domain.TrainingCycle, error)
	Close(ctx context.Context, confirmed bool) error
	Replace(ctx context.Context, cycle *domain.TrainingCycle) error
	Reset(ctx context.Context) error
}

// --- Service Implementation ---

// cycleService owns the zero-or-one active training cycle.
type cycleService struct {
	mu     sync.RWMutex
	active *domain.TrainingCycle
	store  repository.SlotStore
	clock  clock.Clock
	logger zerolog.Logger
}

// NewCycleService loads the active cycle slot and returns the service.
func NewCycleService(ctx context.Context, store repository.SlotStore, clk clock.Clock, logger zerolog.Logger) (CycleService, error) {
	s := &cycleService{
		store:  store,
		clock:  clk,
		logger: logger.With().Str("component", "cycle").Logger(),
	}
	var stored domain.TrainingCycle
	found, err := repository.Load(ctx, store, repository.SlotActiveCycle, &stored, s.logger)
	if err != nil {
		return nil, err
	}
	if found {
		s.active = &stored
	}
	return s, nil
}

// Active returns a copy of the active cycle, or nil.
func (s *cycleService) Active() *domain.TrainingCycle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyCycle(s.active)
}

// Create starts a new cycle at week 1, replacing any active one.
func (s *cycleService) Create(ctx context.Context, in CreateCycleInput) (*domain.TrainingCycle, error) {
	// 1. Validate Input
	name := strings.TrimSpace(in.Name)
	goal := strings.TrimSpace(in.Goal)
	if name == "" || goal == "" {
		return nil, validationError("cycle name and goal are required")
	}
	weeks := in.TotalWeeks
	if weeks <= 0 {
		weeks = DefaultCycleWeeks
	}

	// 2. Build and persist
	cycle := &domain.TrainingCycle{
		ID:             newCycleID(),
		Name:           name,
		Goal:           goal,
		TotalWeeks:     weeks,
		CurrentWeek:    1,
		StartDate:      s.clock.Now(),
		MacroPhaseLink: strings.TrimSpace(in.MacroPhaseLink),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := repository.Save(ctx, s.store, repository.SlotActiveCycle, cycle); err != nil {
		return nil, err
	}
	s.active = cycle
	s.logger.Info().Str("cycleId", cycle.ID).Int("totalWeeks", weeks).Msg("Training cycle started")
	return copyCycle(cycle), nil
}

// AdvanceWeek moves to the next week; a no-op on the last week.
func (s *cycleService) AdvanceWeek(ctx context.Context) (*domain.TrainingCycle, error) {
	return s.step(ctx, 1)
}

// RetreatWeek moves to the previous week; a no-op on week 1.
func (s *cycleService) RetreatWeek(ctx context.Context) (*domain.TrainingCycle, error) {
	return s.step(ctx, -1)
}

func (s *cycleService) step(ctx context.Context, delta int) (*domain.TrainingCycle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, ErrNoActiveCycle
	}
	// Clamping also pulls an imported out-of-range week back into the cycle.
	week := min(max(s.active.CurrentWeek+delta, 1), max(s.active.TotalWeeks, 1))
	if week == s.active.CurrentWeek {
		return copyCycle(s.active), nil
	}

	next := *s.active
	next.CurrentWeek = week
	if err := repository.Save(ctx, s.store, repository.SlotActiveCycle, &next); err != nil {
		return nil, err
	}
	s.active = &next
	return copyCycle(&next), nil
}

// Close ends the active cycle and removes its slot.
func (s *cycleService) Close(ctx context.Context, confirmed bool) error {
	if err := requireConfirmation(confirmed); err != nil {
		return err
	}
	return s.Replace(ctx, nil)
}

// Replace sets the active cycle; nil clears it. Used by import.
func (s *cycleService) Replace(ctx context.Context, cycle *domain.TrainingCycle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cycle == nil {
		if err := s.store.Delete(ctx, repository.SlotActiveCycle); err != nil {
			return err
		}
		s.active = nil
		return nil
	}
	if err := repository.Save(ctx, s.store, repository.SlotActiveCycle, cycle); err != nil {
		return err
	}
	s.active = copyCycle(cycle)
	return nil
}

func (s *cycleService) Reset(ctx context.Context) error {
	return s.Replace(ctx, nil)
}

func copyCycle(c *domain.TrainingCycle) *domain.TrainingCycle {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
