package service

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"functionallab/coach-os/internal/domain"
	"functionallab/coach-os/internal/repository"
)

// DefaultEquipment seeds the inventory when the equipment slot is absent.
var DefaultEquipment = []domain.Equipment{
	{ID: "e1", Name: "Concept2 Rower", Quantity: 2},
	{ID: "e2", Name: "Assault AirBike", Quantity: 1},
	{ID: "e3", Name: "SkiErg", Quantity: 1},
	{ID: "e4", Name: "Speed ropes", Quantity: 12},
	{ID: "e5", Name: "Hex dumbbell set (5-20kg)", Quantity: 9},
	{ID: "e6", Name: "Kettlebells (8-24kg)", Quantity: 5},
	{ID: "e7", Name: "Olympic bars (20kg/15kg)", Quantity: 4},
	{ID: "e8", Name: "Bumper plates (300kg pack)", Quantity: 1},
	{ID: "e9", Name: "Push sled + rope", Quantity: 1},
	{ID: "e10", Name: "Battle rope (15m)", Quantity: 1},
	{ID: "e11", Name: "Slamballs (15-30kg)", Quantity: 3},
	{ID: "e12", Name: "Sandbags (10-25kg)", Quantity: 4},
	{ID: "e13", Name: "3-in-1 plyo boxes", Quantity: 2},
	{ID: "e14", Name: "Wall rig (4 stations)", Quantity: 1},
	{ID: "e15", Name: "Weight benches", Quantity: 4},
	{ID: "e16", Name: "TRX / Rings", Quantity: 4},
	{ID: "e17", Name: "AbMats", Quantity: 12},
	{ID: "e18", Name: "Resistance bands (assorted kit)", Quantity: 1},
}

// Logistics thresholds: a studio can run rotations when at least one item is
// available in threes or the floor holds more than fifteen units in total.
const (
	healthyItemQuantity = 3
	healthyTotalUnits   = 15
)

// InventoryReport summarizes equipment and how classes were distributed.
type InventoryReport struct {
	Items            int                      `json:"items"`
	TotalUnits       int                      `json:"totalUnits"`
	LogisticsHealthy bool                     `json:"logisticsHealthy"`
	Distribution     map[domain.ClassType]int `json:"distribution"`
	Sessions         int                      `json:"sessions"`
}

// --- Service Interface ---
type InventoryService interface {
	Equipment() []domain.Equipment
	AddEquipment(ctx context.Context, name string, quantity int) (*domain.Equipment, error)
	RemoveEquipment(ctx context.Context, id string) error
	ReplaceEquipment(ctx context.Context, items []domain.Equipment) error

	Benchmarks() []domain.Benchmark
	AddBenchmark(ctx context.Context, name string, category domain.BenchmarkCategory, description string) (*domain.Benchmark, error)
	RemoveBenchmark(ctx context.Context, id string) error
	ReplaceBenchmarks(ctx context.Context, items []domain.Benchmark) error

	Report() InventoryReport
	Reset(ctx context.Context) error
}

// --- Service Implementation ---

type inventoryService struct {
	mu         sync.RWMutex
	equipment  []domain.Equipment
	benchmarks []domain.Benchmark
	store      repository.SlotStore
	history    HistoryService
	logger     zerolog.Logger
}

// NewInventoryService loads the equipment and benchmark slots. A missing
// equipment slot is seeded with DefaultEquipment and written back.
func NewInventoryService(ctx context.Context, store repository.SlotStore, history HistoryService, logger zerolog.Logger) (InventoryService, error) {
	s := &inventoryService{
		store:   store,
		history: history,
		logger:  logger.With().Str("component", "inventory").Logger(),
	}

	var equipment []domain.Equipment
	found, err := repository.Load(ctx, store, repository.SlotEquipment, &equipment, s.logger)
	if err != nil {
		return nil, err
	}
	if !found {
		if err := s.seed(ctx); err != nil {
			return nil, err
		}
	} else {
		s.equipment = equipment
	}

	var benchmarks []domain.Benchmark
	if _, err := repository.Load(ctx, store, repository.SlotBenchmarks, &benchmarks, s.logger); err != nil {
		return nil, err
	}
	s.benchmarks = benchmarks
	return s, nil
}

// seed must be called with mu held or before the service is shared.
func (s *inventoryService) seed(ctx context.Context) error {
	defaults := slices.Clone(DefaultEquipment)
	if err := repository.Save(ctx, s.store, repository.SlotEquipment, defaults); err != nil {
		return err
	}
	s.equipment = defaults
	s.logger.Info().Int("items", len(defaults)).Msg("Seeded default equipment")
	return nil
}

// === Equipment ===

func (s *inventoryService) Equipment() []domain.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Equipment{}, s.equipment...)
}

// AddEquipment appends an item. Names need not be unique.
func (s *inventoryService) AddEquipment(ctx context.Context, name string, quantity int) (*domain.Equipment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("equipment name is required")
	}
	if quantity < 0 {
		return nil, validationError("equipment quantity cannot be negative")
	}

	item := domain.Equipment{ID: newCatalogueID(), Name: name, Quantity: quantity}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := append(slices.Clone(s.equipment), item)
	if err := repository.Save(ctx, s.store, repository.SlotEquipment, next); err != nil {
		return nil, err
	}
	s.equipment = next
	return &item, nil
}

// RemoveEquipment deletes the item with id; unknown ids are a no-op.
func (s *inventoryService) RemoveEquipment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.equipment, func(e domain.Equipment) bool { return e.ID == id })
	if idx < 0 {
		return nil
	}
	next := slices.Delete(slices.Clone(s.equipment), idx, idx+1)
	if err := repository.Save(ctx, s.store, repository.SlotEquipment, next); err != nil {
		return err
	}
	s.equipment = next
	return nil
}

func (s *inventoryService) ReplaceEquipment(ctx context.Context, items []domain.Equipment) error {
	if items == nil {
		items = []domain.Equipment{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := repository.Save(ctx, s.store, repository.SlotEquipment, items); err != nil {
		return err
	}
	s.equipment = slices.Clone(items)
	return nil
}

// === Benchmarks ===

func (s *inventoryService) Benchmarks() []domain.Benchmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Benchmark{}, s.benchmarks...)
}

// AddBenchmark appends a benchmark. An empty category defaults to Lift.
func (s *inventoryService) AddBenchmark(ctx context.Context, name string, category domain.BenchmarkCategory, description string) (*domain.Benchmark, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return nil, validationError("benchmark name and description are required")
	}
	if category == "" {
		category = domain.BenchmarkLift
	}
	if !category.Valid() {
		return nil, validationError("unknown benchmark category %q", category)
	}

	bm := domain.Benchmark{ID: newCatalogueID(), Name: name, Category: category, Description: description}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := append(slices.Clone(s.benchmarks), bm)
	if err := repository.Save(ctx, s.store, repository.SlotBenchmarks, next); err != nil {
		return nil, err
	}
	s.benchmarks = next
	return &bm, nil
}

func (s *inventoryService) RemoveBenchmark(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.benchmarks, func(b domain.Benchmark) bool { return b.ID == id })
	if idx < 0 {
		return nil
	}
	next := slices.Delete(slices.Clone(s.benchmarks), idx, idx+1)
	if err := repository.Save(ctx, s.store, repository.SlotBenchmarks, next); err != nil {
		return err
	}
	s.benchmarks = next
	return nil
}

func (s *inventoryService) ReplaceBenchmarks(ctx context.Context, items []domain.Benchmark) error {
	if items == nil {
		items = []domain.Benchmark{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := repository.Save(ctx, s.store, repository.SlotBenchmarks, items); err != nil {
		return err
	}
	s.benchmarks = slices.Clone(items)
	return nil
}

// === Report ===

func (s *inventoryService) Report() InventoryReport {
	s.mu.RLock()
	report := InventoryReport{Items: len(s.equipment)}
	anyStocked := false
	for _, e := range s.equipment {
		report.TotalUnits += e.Quantity
		if e.Quantity >= healthyItemQuantity {
			anyStocked = true
		}
	}
	s.mu.RUnlock()

	report.LogisticsHealthy = anyStocked || report.TotalUnits > healthyTotalUnits

	report.Distribution = make(map[domain.ClassType]int, len(domain.ClassTypes))
	for _, ct := range domain.ClassTypes {
		report.Distribution[ct] = 0
	}
	history := s.history.List()
	for _, w := range history {
		report.Distribution[w.ClassType]++
	}
	report.Sessions = len(history)
	return report
}

// Reset clears both slots and re-seeds the default equipment.
func (s *inventoryService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, repository.SlotBenchmarks); err != nil {
		return err
	}
	s.benchmarks = nil
	return s.seed(ctx)
}
