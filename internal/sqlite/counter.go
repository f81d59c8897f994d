package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/gtd/internal/repository"
)

// CounterRepository persists the highest identifier issued per prefix.
type CounterRepository struct {
	db *DB
}

// NewCounterRepository creates a new CounterRepository
func NewCounterRepository(db *DB) *CounterRepository {
	return &CounterRepository{db: db}
}

// Current returns the last value issued for prefix, 0 when none was.
func (r *CounterRepository) Current(ctx context.Context, prefix string) (int64, error) {
	var value int64
	err := r.db.QueryRowContext(ctx, `SELECT value FROM counters WHERE prefix = ?`, prefix).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter: %w", err)
	}
	return value, nil
}

// Advance atomically moves the counter to max(value, floor)+1 and returns
// the new value.
func (r *CounterRepository) Advance(ctx context.Context, prefix string, floor int64) (int64, error) {
	if prefix == "" || floor < 0 {
		return 0, repository.ErrInvalidInput
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO counters (prefix, value) VALUES (?, 0) ON CONFLICT(prefix) DO NOTHING`,
		prefix,
	); err != nil {
		return 0, fmt.Errorf("failed to seed counter: %w", err)
	}

	updateQuery := `
		UPDATE counters
		SET value = MAX(value, ?) + 1, updated_at = CURRENT_TIMESTAMP
		WHERE prefix = ?
	`
	result, err := tx.ExecContext(ctx, updateQuery, floor, prefix)
	if err != nil {
		return 0, fmt.Errorf("failed to advance counter: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return 0, repository.ErrNotFound
	}

	var value int64
	if err := tx.QueryRowContext(ctx, `SELECT value FROM counters WHERE prefix = ?`, prefix).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to get new counter value: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return value, nil
}
