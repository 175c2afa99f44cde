// Package sqlite implements the slot store on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"functionallab/coach-os/internal/repository"
	"functionallab/coach-os/internal/repository/sqlite/migrations"
)

// SlotRepository stores each slot as one row in the slots table.
type SlotRepository struct {
	db *sql.DB
}

var _ repository.SlotStore = (*SlotRepository)(nil)

// NewSlotRepository opens (or creates) the database at dbPath, applies
// pragmas and runs migrations.
func NewSlotRepository(dbPath string) (*SlotRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Single writer; keeps WAL checkpoints simple.
	db.SetMaxOpenConns(1)

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}
	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SlotRepository{db: db}, nil
}

func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

// RunMigrations applies all pending migrations from the embedded files.
func RunMigrations(db *sql.DB) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (r *SlotRepository) Get(ctx context.Context, slot repository.Slot) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE name = ?`, string(slot)).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read slot: %w", err)
	}
	return []byte(value), nil
}

func (r *SlotRepository) Put(ctx context.Context, slot repository.Slot, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO slots (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, string(slot), string(value), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}
	return nil
}

func (r *SlotRepository) Delete(ctx context.Context, slot repository.Slot) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE name = ?`, string(slot)); err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *SlotRepository) Close() error {
	return r.db.Close()
}
