package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"functionallab/coach-os/internal/clock"
	"functionallab/coach-os/internal/domain"
	"functionallab/coach-os/internal/generator"
	"functionallab/coach-os/internal/locale"
)

// ContextHistorySize is how many recent sessions go into a context bundle.
const ContextHistorySize = 5

// DefaultGenerationTimeout bounds a generation call when none is configured.
const DefaultGenerationTimeout = 90 * time.Second

// WorkoutRequest enumerates every recognized generation option.
// Date is "2006-01-02" or RFC 3339; empty means today.
type WorkoutRequest struct {
	ClassType domain.ClassType
	Focus     string
	Date      string
}

// GenerationStatus is the observable state of the orchestrator.
type GenerationStatus struct {
	Generating bool            `json:"generating"`
	LastError  string          `json:"lastError,omitempty"`
	Active     *domain.Workout `json:"active,omitempty"`
}

// --- Service Interface ---
type WorkoutService interface {
	RequestWorkout(ctx context.Context, req WorkoutRequest) (*domain.Workout, error)
	Status() GenerationStatus
	// Reset forgets the active workout and the last error.
	Reset()
}

// --- Service Implementation ---

// workoutService composes context bundles, calls the generator and hands
// finished workouts to the history service. At most one generation runs
// at a time.
type workoutService struct {
	generator generator.Generator
	history   HistoryService
	cycles    CycleService
	plans     PlanService
	inventory InventoryService
	clock     clock.Clock
	locale    locale.Locale
	timeout   time.Duration
	logger    zerolog.Logger

	inflight sync.Mutex

	mu        sync.RWMutex
	activeID  string
	orphan    *domain.Workout // active workout evicted from history on record
	lastError string
	running   bool
}

// WorkoutDeps groups the collaborators of the workout service.
type WorkoutDeps struct {
	Generator generator.Generator
	History   HistoryService
	Cycles    CycleService
	Plans     PlanService
	Inventory InventoryService
	Clock     clock.Clock
	Locale    locale.Locale
	Timeout   time.Duration
}

// NewWorkoutService creates the generation orchestrator.
func NewWorkoutService(deps WorkoutDeps, logger zerolog.Logger) WorkoutService {
	if deps.Timeout <= 0 {
		deps.Timeout = DefaultGenerationTimeout
	}
	return &workoutService{
		generator: deps.Generator,
		history:   deps.History,
		cycles:    deps.Cycles,
		plans:     deps.Plans,
		inventory: deps.Inventory,
		clock:     deps.Clock,
		locale:    deps.Locale,
		timeout:   deps.Timeout,
		logger:    logger.With().Str("component", "workout").Logger(),
	}
}

// RequestWorkout generates, records and activates a new workout. On any
// failure no workout is recorded and the error is kept for Status.
func (s *workoutService) RequestWorkout(ctx context.Context, req WorkoutRequest) (*domain.Workout, error) {
	// 1. Validate Input
	if !req.ClassType.Valid() {
		return nil, validationError("unknown class type %q", req.ClassType)
	}
	target, err := s.resolveDate(req.Date)
	if err != nil {
		return nil, err
	}

	// 2. One generation at a time
	if !s.inflight.TryLock() {
		return nil, ErrGenerationInProgress
	}
	defer s.inflight.Unlock()
	s.setRunning(true)
	defer s.setRunning(false)

	// 3. Build the context bundle and call the generator
	genReq := generator.Request{
		ClassType:  req.ClassType,
		Focus:      strings.TrimSpace(req.Focus),
		TargetDate: target,
		Context: generator.ContextBundle{
			RecentHistory: s.history.MostRecent(ContextHistorySize),
			Cycle:         s.cycles.Active(),
			Plan:          s.plans.Get(),
			Phase:         s.plans.PhaseFor(target.Month()),
			Equipment:     s.inventory.Equipment(),
			Benchmarks:    s.inventory.Benchmarks(),
		},
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	started := s.clock.Now()
	content, err := s.generator.GenerateWorkout(genCtx, genReq)
	if err != nil {
		s.fail(err)
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	// 4. Wrap and record
	w := domain.Workout{
		ID:          newWorkoutID(),
		Content:     content,
		ClassType:   req.ClassType,
		DisplayDate: s.locale.ShortDate(target),
		Timestamp:   target.UnixMilli(),
	}
	evicted, err := s.history.Record(ctx, w)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	s.activeID = w.ID
	s.orphan = nil
	if evicted {
		orphan := w
		s.orphan = &orphan
	}
	s.lastError = ""
	s.mu.Unlock()

	s.logger.Info().
		Str("workoutId", w.ID).
		Str("classType", string(w.ClassType)).
		Dur("elapsed", s.clock.Now().Sub(started)).
		Msg("Workout generated")
	return &w, nil
}

// resolveDate parses the optional target date in the clock's location.
func (s *workoutService) resolveDate(raw string) (time.Time, error) {
	now := s.clock.Now()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, raw, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(now.Location()), nil
	}
	return time.Time{}, validationError("date %q must be YYYY-MM-DD or RFC 3339", raw)
}

func (s *workoutService) fail(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()

	evt := s.logger.Error().Err(err)
	if errors.Is(err, context.DeadlineExceeded) {
		evt = evt.Dur("timeout", s.timeout)
	}
	evt.Msg("Workout generation failed")
}

func (s *workoutService) setRunning(v bool) {
	s.mu.Lock()
	s.running = v
	s.mu.Unlock()
}

// Status reads the active workout back from history, so edits show up and a
// deleted workout is no longer active.
func (s *workoutService) Status() GenerationStatus {
	s.mu.RLock()
	st := GenerationStatus{Generating: s.running, LastError: s.lastError}
	id, orphan := s.activeID, s.orphan
	s.mu.RUnlock()

	if id == "" {
		return st
	}
	if w, err := s.history.Get(id); err == nil {
		st.Active = w
	} else if orphan != nil {
		w := *orphan
		st.Active = &w
	}
	return st
}

func (s *workoutService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = ""
	s.orphan = nil
	s.lastError = ""
}
