package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"functionallab/coach-os/internal/clock"
	"functionallab/coach-os/internal/domain"
	"functionallab/coach-os/internal/locale"
	"functionallab/coach-os/internal/repository"
)

// Defaults applied to every phase of a new plan.
const (
	DefaultPhaseGoal      = "General Maintenance"
	DefaultPhaseIntensity = domain.IntensityMedium
	DefaultPhaseFocus     = "Balanced"
)

// PhaseUpdate holds the fields to merge into a phase; nil fields are kept.
type PhaseUpdate struct {
	Goal      *string
	Intensity *domain.Intensity
	Focus     *string
}

// --- Service Interface ---
type PlanService interface {
	Get() *domain.AnnualPlan
	Create(ctx context.Context, year int) (*domain.AnnualPlan, error)
	// UpdatePhase reports false when nothing was changed: no plan, index out
	// of range or an unknown intensity.
	UpdatePhase(ctx context.Context, index int, update PhaseUpdate) (bool, error)
	PhaseFor(month time.Month) *domain.AnnualPhase
	Delete(ctx context.Context, confirmed bool) error
	Reset(ctx context.Context) error
}

// --- Service Implementation ---

type planService struct {
	mu     sync.RWMutex
	plan   *domain.AnnualPlan
	store  repository.SlotStore
	clock  clock.Clock
	locale locale.Locale
	logger zerolog.Logger
}

// NewPlanService loads the annual plan slot and returns the service.
func NewPlanService(ctx context.Context, store repository.SlotStore, clk clock.Clock, loc locale.Locale, logger zerolog.Logger) (PlanService, error) {
	s := &planService{
		store:  store,
		clock:  clk,
		locale: loc,
		logger: logger.With().Str("component", "plan").Logger(),
	}
	var stored domain.AnnualPlan
	found, err := repository.Load(ctx, store, repository.SlotAnnualPlan, &stored, s.logger)
	if err != nil {
		return nil, err
	}
	if found {
		s.plan = &stored
	}
	return s, nil
}

func (s *planService) Get() *domain.AnnualPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyPlan(s.plan)
}

// Create builds a fully populated plan for year, replacing any existing one.
// A year <= 0 means the current year.
func (s *planService) Create(ctx context.Context, year int) (*domain.AnnualPlan, error) {
	if year <= 0 {
		year = s.clock.Now().Year()
	}

	months := s.locale.MonthNames()
	phases := make([]domain.AnnualPhase, 0, domain.MonthsPerPlan)
	for _, m := range months {
		phases = append(phases, domain.AnnualPhase{
			Month:     m,
			Goal:      DefaultPhaseGoal,
			Intensity: DefaultPhaseIntensity,
			Focus:     DefaultPhaseFocus,
		})
	}
	plan := &domain.AnnualPlan{
		ID:     newCatalogueID(),
		Year:   year,
		Name:   fmt.Sprintf("Macrocycle %d", year),
		Phases: phases,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := repository.Save(ctx, s.store, repository.SlotAnnualPlan, plan); err != nil {
		return nil, err
	}
	s.plan = plan
	s.logger.Info().Int("year", year).Msg("Annual plan created")
	return copyPlan(plan), nil
}

func (s *planService) UpdatePhase(ctx context.Context, index int, update PhaseUpdate) (bool, error) {
	if update.Intensity != nil && !update.Intensity.Valid() {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.plan == nil || index < 0 || index >= len(s.plan.Phases) {
		return false, nil
	}

	next := copyPlan(s.plan)
	phase := &next.Phases[index]
	if update.Goal != nil {
		phase.Goal = *update.Goal
	}
	if update.Intensity != nil {
		phase.Intensity = *update.Intensity
	}
	if update.Focus != nil {
		phase.Focus = *update.Focus
	}

	if err := repository.Save(ctx, s.store, repository.SlotAnnualPlan, next); err != nil {
		return false, err
	}
	s.plan = next
	return true, nil
}

// PhaseFor returns the phase covering month, or nil without a plan.
func (s *planService) PhaseFor(month time.Month) *domain.AnnualPhase {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := int(month) - 1
	if s.plan == nil || idx < 0 || idx >= len(s.plan.Phases) {
		return nil
	}
	phase := s.plan.Phases[idx]
	return &phase
}

func (s *planService) Delete(ctx context.Context, confirmed bool) error {
	if err := requireConfirmation(confirmed); err != nil {
		return err
	}
	return s.Reset(ctx)
}

func (s *planService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, repository.SlotAnnualPlan); err != nil {
		return err
	}
	s.plan = nil
	return nil
}

func copyPlan(p *domain.AnnualPlan) *domain.AnnualPlan {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Phases = slices.Clone(p.Phases)
	return &cp
}
