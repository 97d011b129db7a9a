package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/InstaSync_Go/internal/domain"
)

// StateStore implements state.Store on the state table
type StateStore struct {
	db *pgxpool.Pool
}

// NewStateStore creates a new state store
func NewStateStore(db *pgxpool.Pool) *StateStore {
	return &StateStore{db: db}
}

// Get returns the raw JSON value stored under key
func (s *StateStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM state WHERE key = $1`

	var value []byte
	err := s.db.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetState, err)
	}
	return value, nil
}

// Set upserts the value under key. The row is replaced in a single statement.
func (s *StateStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO state (key, value, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := s.db.Exec(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetState, err)
	}
	return nil
}
