package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"functionallab/coach-os/internal/clock"
	"functionallab/coach-os/internal/domain"
	"functionallab/coach-os/internal/storage"
)

// BackupPrefix is the object key prefix for uploaded snapshots.
const BackupPrefix = "backups/"

// ImportResult reports which parts of a snapshot were applied.
type ImportResult struct {
	History    int  `json:"history"`
	Cycle      bool `json:"cycle"`
	Equipment  int  `json:"equipment"`
	Benchmarks int  `json:"benchmarks"`
	// Applied lists the top-level keys that were written.
	Applied []string `json:"applied"`
}

// --- Service Interface ---
type TransferService interface {
	Export(ctx context.Context) domain.Snapshot
	Import(ctx context.Context, raw []byte) (*ImportResult, error)
	ClearAll(ctx context.Context, confirmed bool) error
	Backup(ctx context.Context) (*domain.Backup, error)
}

// TransferDeps groups the managers a snapshot covers.
type TransferDeps struct {
	History   HistoryService
	Cycles    CycleService
	Plans     PlanService
	Inventory InventoryService
	Workouts  WorkoutService
	Storage   storage.FileStorage // nil disables Backup
	Clock     clock.Clock
}

// --- Service Implementation ---

type transferService struct {
	deps   TransferDeps
	logger zerolog.Logger
}

func NewTransferService(deps TransferDeps, logger zerolog.Logger) TransferService {
	return &transferService{
		deps:   deps,
		logger: logger.With().Str("component", "transfer").Logger(),
	}
}

// Export returns the full-state snapshot.
func (s *transferService) Export(ctx context.Context) domain.Snapshot {
	return domain.Snapshot{
		History:     s.deps.History.List(),
		ActiveCycle: s.deps.Cycles.Active(),
		AnnualPlan:  s.deps.Plans.Get(),
		Equipment:   s.deps.Inventory.Equipment(),
		Benchmarks:  s.deps.Inventory.Benchmarks(),
		ExportDate:  s.deps.Clock.Now().UTC(),
	}
}

// importedWorkout accepts both the current field names and the older
// markdown/type/date/updatedAt spelling.
type importedWorkout struct {
	ID           string           `json:"id"`
	Content      string           `json:"content"`
	Markdown     string           `json:"markdown"`
	ClassType    domain.ClassType `json:"classType"`
	Type         domain.ClassType `json:"type"`
	DisplayDate  string           `json:"displayDate"`
	Date         string           `json:"date"`
	Timestamp    int64            `json:"timestamp"`
	LastEditedAt *int64           `json:"lastEditedAt"`
	UpdatedAt    *int64           `json:"updatedAt"`
}

func (iw importedWorkout) toDomain() domain.Workout {
	w := domain.Workout{
		ID:           iw.ID,
		Content:      iw.Content,
		ClassType:    iw.ClassType,
		DisplayDate:  iw.DisplayDate,
		Timestamp:    iw.Timestamp,
		LastEditedAt: iw.LastEditedAt,
	}
	if w.Content == "" {
		w.Content = iw.Markdown
	}
	if w.ClassType == "" {
		w.ClassType = iw.Type
	}
	if w.DisplayDate == "" {
		w.DisplayDate = iw.Date
	}
	if w.LastEditedAt == nil {
		w.LastEditedAt = iw.UpdatedAt
	}
	return w
}

// Import applies a snapshot. Only top-level key presence is checked: history
// (with activeCycle, where null or missing clears the cycle) is applied when
// present, equipment and benchmarks independently. Everything is decoded
// before anything is written, so malformed input changes nothing.
func (s *transferService) Import(ctx context.Context, raw []byte) (*ImportResult, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}

	var (
		history    []domain.Workout
		cycle      *domain.TrainingCycle
		equipment  []domain.Equipment
		benchmarks []domain.Benchmark
	)

	historyRaw, hasHistory := presentKey(doc, "history")
	if hasHistory {
		var items []importedWorkout
		if err := json.Unmarshal(historyRaw, &items); err != nil {
			return nil, fmt.Errorf("%w: history: %w", ErrInvalidImport, err)
		}
		history = make([]domain.Workout, 0, len(items))
		for _, iw := range items {
			history = append(history, iw.toDomain())
		}
		if cycleRaw, ok := presentKey(doc, "activeCycle"); ok {
			if err := json.Unmarshal(cycleRaw, &cycle); err != nil {
				return nil, fmt.Errorf("%w: activeCycle: %w", ErrInvalidImport, err)
			}
		}
	}

	equipmentRaw, hasEquipment := presentKey(doc, "equipment")
	if hasEquipment {
		if err := json.Unmarshal(equipmentRaw, &equipment); err != nil {
			return nil, fmt.Errorf("%w: equipment: %w", ErrInvalidImport, err)
		}
	}
	benchmarksRaw, hasBenchmarks := presentKey(doc, "benchmarks")
	if hasBenchmarks {
		if err := json.Unmarshal(benchmarksRaw, &benchmarks); err != nil {
			return nil, fmt.Errorf("%w: benchmarks: %w", ErrInvalidImport, err)
		}
	}

	result := &ImportResult{Applied: []string{}}
	if hasHistory {
		if err := s.deps.History.Replace(ctx, history); err != nil {
			return nil, err
		}
		if err := s.deps.Cycles.Replace(ctx, cycle); err != nil {
			return nil, err
		}
		result.History = len(history)
		result.Cycle = cycle != nil
		result.Applied = append(result.Applied, "history", "activeCycle")
	}
	if hasEquipment {
		if err := s.deps.Inventory.ReplaceEquipment(ctx, equipment); err != nil {
			return nil, err
		}
		result.Equipment = len(equipment)
		result.Applied = append(result.Applied, "equipment")
	}
	if hasBenchmarks {
		if err := s.deps.Inventory.ReplaceBenchmarks(ctx, benchmarks); err != nil {
			return nil, err
		}
		result.Benchmarks = len(benchmarks)
		result.Applied = append(result.Applied, "benchmarks")
	}

	s.logger.Info().Strs("applied", result.Applied).Int("history", result.History).Msg("Snapshot imported")
	return result, nil
}

// presentKey returns the raw value of key when it exists and is not null.
func presentKey(doc map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	v, ok := doc[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, false
	}
	return v, true
}

// ClearAll deletes every slot and returns the managers to their defaults.
func (s *transferService) ClearAll(ctx context.Context, confirmed bool) error {
	if err := requireConfirmation(confirmed); err != nil {
		return err
	}

	resets := []struct {
		name  string
		reset func(context.Context) error
	}{
		{"history", s.deps.History.Reset},
		{"cycle", s.deps.Cycles.Reset},
		{"plan", s.deps.Plans.Reset},
		{"inventory", s.deps.Inventory.Reset},
	}
	for _, r := range resets {
		if err := r.reset(ctx); err != nil {
			return fmt.Errorf("reset %s: %w", r.name, err)
		}
	}
	s.deps.Workouts.Reset()

	s.logger.Warn().Msg("All studio data cleared")
	return nil
}

// Backup uploads the export snapshot and returns a presigned download link.
func (s *transferService) Backup(ctx context.Context) (*domain.Backup, error) {
	if s.deps.Storage == nil {
		return nil, ErrBackupsDisabled
	}

	snapshot := s.Export(ctx)
	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	now := s.deps.Clock.Now().UTC()
	key := fmt.Sprintf("%scoachos-export-%s-%s.json", BackupPrefix, now.Format(time.DateOnly), ulid.Make().String())
	if err := s.deps.Storage.PutObject(ctx, key, "application/json", body); err != nil {
		return nil, fmt.Errorf("upload backup: %w", err)
	}

	url, err := s.deps.Storage.GeneratePresignedDownloadURL(ctx, key, storage.DefaultPresignedURLExpiry)
	if err != nil {
		// An unreachable backup is useless; don't leave it in the bucket.
		if delErr := s.deps.Storage.DeleteObject(ctx, key); delErr != nil {
			s.logger.Warn().Err(delErr).Str("objectKey", key).Msg("Failed to remove unlinked backup")
		}
		return nil, fmt.Errorf("presign backup: %w", err)
	}

	return &domain.Backup{
		ObjectKey:   key,
		SizeBytes:   int64(len(body)),
		DownloadURL: url,
		ExpiresAt:   now.Add(storage.DefaultPresignedURLExpiry),
		CreatedAt:   now,
	}, nil
}
