package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrSaveNotFound is returned when a slot has no row.
var ErrSaveNotFound = errors.New("save not found")

// SaveRepository reads and writes the saves table.
type SaveRepository struct {
	db *pgxpool.Pool
}

// NewSaveRepository creates a SaveRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewSaveRepository(db *pgxpool.Pool) *SaveRepository {
	return &SaveRepository{db: db}
}

// Save upserts blob into slot.
//
// Postcondition: Load(slot) returns blob.
func (r *SaveRepository) Save(ctx context.Context, slot string, blob []byte) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO saves (slot, blob)
		 VALUES ($1, $2)
		 ON CONFLICT (slot) DO UPDATE SET blob = EXCLUDED.blob, updated_at = NOW()`,
		slot, blob,
	)
	if err != nil {
		return fmt.Errorf("saving slot %q: %w", slot, err)
	}
	return nil
}

// Load returns the blob stored in slot, or ErrSaveNotFound.
func (r *SaveRepository) Load(ctx context.Context, slot string) ([]byte, error) {
	var blob []byte
	err := r.db.QueryRow(ctx, `SELECT blob FROM saves WHERE slot = $1`, slot).Scan(&blob)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaveNotFound
		}
		return nil, fmt.Errorf("loading slot %q: %w", slot, err)
	}
	return blob, nil
}

// Delete removes slot. Deleting a missing slot succeeds.
func (r *SaveRepository) Delete(ctx context.Context, slot string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM saves WHERE slot = $1`, slot); err != nil {
		return fmt.Errorf("deleting slot %q: %w", slot, err)
	}
	return nil
}
