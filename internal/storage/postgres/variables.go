package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrVariableNotFound is returned when a variable lookup yields no results.
var ErrVariableNotFound = errors.New("variable not found")

// VariableRepository persists the variable bank between play sessions. The
// battle engine itself only touches the in-memory bank; callers load the
// bank at startup and flush it at save points.
type VariableRepository struct {
	db *pgxpool.Pool
}

// NewVariableRepository creates a VariableRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewVariableRepository(db *pgxpool.Pool) *VariableRepository {
	return &VariableRepository{db: db}
}

// LoadAll returns every stored variable keyed by slot.
//
// Postcondition: Returns a map (may be empty) or a non-nil error.
func (r *VariableRepository) LoadAll(ctx context.Context) (map[int]int, error) {
	rows, err := r.db.Query(ctx, `SELECT slot, value FROM variables ORDER BY slot ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing variables: %w", err)
	}
	defer rows.Close()

	out := make(map[int]int)
	for rows.Next() {
		var slot, value int
		if err := rows.Scan(&slot, &value); err != nil {
			return nil, fmt.Errorf("scanning variable row: %w", err)
		}
		out[slot] = value
	}
	return out, rows.Err()
}

// Get retrieves the value stored at slot.
//
// Precondition: slot must be > 0.
// Postcondition: Returns the value or ErrVariableNotFound.
func (r *VariableRepository) Get(ctx context.Context, slot int) (int, error) {
	var value int
	err := r.db.QueryRow(ctx, `SELECT value FROM variables WHERE slot = $1`, slot).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrVariableNotFound
		}
		return 0, fmt.Errorf("selecting variable %d: %w", slot, err)
	}
	return value, nil
}

// Set upserts the value stored at slot.
//
// Precondition: slot must be > 0.
func (r *VariableRepository) Set(ctx context.Context, slot, value int) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO variables (slot, value) VALUES ($1, $2)
		ON CONFLICT (slot) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		slot, value,
	)
	if err != nil {
		return fmt.Errorf("upserting variable %d: %w", slot, err)
	}
	return nil
}

// SaveAll upserts every entry of values in a single transaction.
//
// Precondition: every key in values must be > 0.
// Postcondition: Either all entries are stored or none are.
func (r *VariableRepository) SaveAll(ctx context.Context, values map[int]int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning variable save: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for slot, value := range values {
		if _, err := tx.Exec(ctx, `
			INSERT INTO variables (slot, value) VALUES ($1, $2)
			ON CONFLICT (slot) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
			slot, value,
		); err != nil {
			return fmt.Errorf("upserting variable %d: %w", slot, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing variable save: %w", err)
	}
	return nil
}

// Delete removes the variable at slot; deleting an absent slot is a no-op.
//
// Precondition: slot must be > 0.
func (r *VariableRepository) Delete(ctx context.Context, slot int) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM variables WHERE slot = $1`, slot); err != nil {
		return fmt.Errorf("deleting variable %d: %w", slot, err)
	}
	return nil
}
