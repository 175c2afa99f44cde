package service

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"functionallab/coach-os/internal/clock"
	"functionallab/coach-os/internal/domain"
	"functionallab/coach-os/internal/repository"
)

// MaxHistory is the number of sessions kept; older ones are evicted on insert.
const MaxHistory = 60

// CalendarMonth is one month of sessions grouped by day of month.
type CalendarMonth struct {
	Year  int
	Month time.Month
	Days  map[int][]domain.Workout
}

// --- Service Interface ---
type HistoryService interface {
	Record(ctx context.Context, w domain.Workout) (evicted bool, err error)
	Update(ctx context.Context, id, content string) (*domain.Workout, error)
	Delete(ctx context.Context, id string, confirmed bool) error
	Get(id string) (*domain.Workout, error)
	List() []domain.Workout
	MostRecent(n int) []domain.Workout
	// Calendar treats a zero year or month as the current one.
	Calendar(year int, month time.Month) CalendarMonth
	Replace(ctx context.Context, history []domain.Workout) error
	Reset(ctx context.Context) error
}

// --- Service Implementation ---

// historyService keeps the recency-sorted session list in memory and writes
// the full list to its slot after every mutation.
type historyService struct {
	mu      sync.RWMutex
	entries []domain.Workout
	store   repository.SlotStore
	clock   clock.Clock
	logger  zerolog.Logger
}

// NewHistoryService loads the history slot and returns the service.
func NewHistoryService(ctx context.Context, store repository.SlotStore, clk clock.Clock, logger zerolog.Logger) (HistoryService, error) {
	s := &historyService{
		store:  store,
		clock:  clk,
		logger: logger.With().Str("component", "history").Logger(),
	}
	var stored []domain.Workout
	if _, err := repository.Load(ctx, store, repository.SlotHistory, &stored, s.logger); err != nil {
		return nil, err
	}
	s.entries = stored
	return s, nil
}

// Record inserts w, re-sorts by timestamp descending and truncates to
// MaxHistory. evicted reports whether w itself fell off the end, which
// happens when it is older than every retained session.
func (s *historyService) Record(ctx context.Context, w domain.Workout) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, evicted := insertSorted(s.entries, w, MaxHistory)
	if err := repository.Save(ctx, s.store, repository.SlotHistory, next); err != nil {
		return false, err
	}
	s.entries = next
	if evicted {
		s.logger.Warn().Str("workoutId", w.ID).Int64("timestamp", w.Timestamp).
			Msg("Recorded workout is older than the retained history and was evicted")
	}
	return evicted, nil
}

// insertSorted prepends w so that, among equal timestamps, the newest insert
// comes first after the stable sort.
func insertSorted(entries []domain.Workout, w domain.Workout, limit int) ([]domain.Workout, bool) {
	next := make([]domain.Workout, 0, len(entries)+1)
	next = append(next, w)
	next = append(next, entries...)
	slices.SortStableFunc(next, func(a, b domain.Workout) int {
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})

	if len(next) <= limit {
		return next, false
	}
	evicted := slices.ContainsFunc(next[limit:], func(x domain.Workout) bool { return x.ID == w.ID })
	return next[:limit:limit], evicted
}

// Update replaces the content of a session and stamps LastEditedAt.
func (s *historyService) Update(ctx context.Context, id, content string) (*domain.Workout, error) {
	if strings.TrimSpace(content) == "" {
		return nil, validationError("content cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrWorkoutNotFound
	}

	next := slices.Clone(s.entries)
	edited := s.clock.Now().UnixMilli()
	next[idx].Content = content
	next[idx].LastEditedAt = &edited

	if err := repository.Save(ctx, s.store, repository.SlotHistory, next); err != nil {
		return nil, err
	}
	s.entries = next
	updated := next[idx]
	return &updated, nil
}

// Delete removes the session with id. Unknown ids are a no-op.
func (s *historyService) Delete(ctx context.Context, id string, confirmed bool) error {
	if err := requireConfirmation(confirmed); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	next := slices.Delete(slices.Clone(s.entries), idx, idx+1)
	if err := repository.Save(ctx, s.store, repository.SlotHistory, next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

func (s *historyService) Get(id string) (*domain.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrWorkoutNotFound
	}
	w := s.entries[idx]
	return &w, nil
}

func (s *historyService) List() []domain.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Workout{}, s.entries...)
}

// MostRecent returns up to n sessions in stored order.
func (s *historyService) MostRecent(n int) []domain.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 {
		return []domain.Workout{}
	}
	if n > len(s.entries) {
		n = len(s.entries)
	}
	return slices.Clone(s.entries[:n])
}

// Calendar groups the sessions falling in the given month by day of month,
// using the clock's location.
func (s *historyService) Calendar(year int, month time.Month) CalendarMonth {
	now := s.clock.Now()
	if year <= 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	loc := now.Location()
	days := make(map[int][]domain.Workout)
	for _, w := range s.entries {
		t := time.UnixMilli(w.Timestamp).In(loc)
		if t.Year() == year && t.Month() == month {
			days[t.Day()] = append(days[t.Day()], w)
		}
	}
	return CalendarMonth{Year: year, Month: month, Days: days}
}

// Replace stores history as given. Used by import.
func (s *historyService) Replace(ctx context.Context, history []domain.Workout) error {
	if history == nil {
		history = []domain.Workout{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := repository.Save(ctx, s.store, repository.SlotHistory, history); err != nil {
		return err
	}
	s.entries = slices.Clone(history)
	return nil
}

// Reset empties the in-memory history after the slot was cleared.
func (s *historyService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, repository.SlotHistory); err != nil {
		return err
	}
	s.entries = nil
	return nil
}

func (s *historyService) indexOf(id string) int {
	return slices.IndexFunc(s.entries, func(w domain.Workout) bool { return w.ID == id })
}
