package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"functionallab/coach-os/internal/clock"
	"functionallab/coach-os/internal/generator"
	"functionallab/coach-os/internal/locale"
	"functionallab/coach-os/internal/repository"
	"functionallab/coach-os/internal/repository/memory"
)

var testNow = time.Date(2025, time.October, 20, 9, 30, 0, 0, time.UTC)

// fakeGenerator returns canned text or an error and records the requests.
type fakeGenerator struct {
	mu       sync.Mutex
	text     string
	err      error
	block    chan struct{} // when set, GenerateWorkout waits for it to close
	started  chan struct{}
	requests []generator.Request
	chats    [][]generator.ChatMessage
}

func (f *fakeGenerator) GenerateWorkout(ctx context.Context, req generator.Request) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	block, started := f.block, f.started
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", &generator.GenerationError{Kind: generator.ErrNetwork, Err: ctx.Err()}
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeGenerator) Chat(_ context.Context, history []generator.ChatMessage, message string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chats = append(f.chats, history)
	if f.err != nil {
		return "", f.err
	}
	return "reply to " + message, nil
}

// fakeStorage keeps uploaded objects in memory.
type fakeStorage struct {
	objects    map[string][]byte
	putErr     error
	presignErr error
}

func (f *fakeStorage) PutObject(_ context.Context, key, _ string, body []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[key] = body
	return nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://s3.test/" + key + "?sig=1", nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

// failingStore fails every write.
type failingStore struct {
	repository.SlotStore
}

func (failingStore) Put(context.Context, repository.Slot, []byte) error {
	return errors.New("disk full")
}

// testServices wires every manager on one store.
type testServices struct {
	store     repository.SlotStore
	history   HistoryService
	cycles    CycleService
	plans     PlanService
	inventory InventoryService
	workouts  WorkoutService
	transfer  TransferService
	gen       *fakeGenerator
	files     *fakeStorage
}

func newTestServices(t *testing.T, store repository.SlotStore) *testServices {
	t.Helper()
	ctx := context.Background()
	clk := clock.Fixed(testNow)
	loc := locale.New("en")
	logger := zerolog.Nop()

	history, err := NewHistoryService(ctx, store, clk, logger)
	require.NoError(t, err)
	cycles, err := NewCycleService(ctx, store, clk, logger)
	require.NoError(t, err)
	plans, err := NewPlanService(ctx, store, clk, loc, logger)
	require.NoError(t, err)
	inventory, err := NewInventoryService(ctx, store, history, logger)
	require.NoError(t, err)

	gen := &fakeGenerator{text: "# Engine Day\nRow intervals"}
	workouts := NewWorkoutService(WorkoutDeps{
		Generator: gen,
		History:   history,
		Cycles:    cycles,
		Plans:     plans,
		Inventory: inventory,
		Clock:     clk,
		Locale:    loc,
		Timeout:   time.Second,
	}, logger)

	files := &fakeStorage{objects: map[string][]byte{}}
	transfer := NewTransferService(TransferDeps{
		History:   history,
		Cycles:    cycles,
		Plans:     plans,
		Inventory: inventory,
		Workouts:  workouts,
		Storage:   files,
		Clock:     clk,
	}, logger)

	return &testServices{
		store:     store,
		history:   history,
		cycles:    cycles,
		plans:     plans,
		inventory: inventory,
		workouts:  workouts,
		transfer:  transfer,
		gen:       gen,
		files:     files,
	}
}

func newMemoryServices(t *testing.T) *testServices {
	return newTestServices(t, memory.NewSlotRepository())
}

func testLogger() zerolog.Logger { return zerolog.Nop() }
