package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/InstaSync_Go/internal/domain"
)

// MediaRepository implements media.Repository
type MediaRepository struct {
	db *pgxpool.Pool
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *pgxpool.Pool) *MediaRepository {
	return &MediaRepository{db: db}
}

// CreateMedia inserts one media record for an ingested post
func (r *MediaRepository) CreateMedia(ctx context.Context, feed, sourceID string) (*domain.MediaRecord, error) {
	query := `
		INSERT INTO media (feed, source_id, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, feed, source_id, created_at
	`
	var rec domain.MediaRecord
	err := r.db.QueryRow(ctx, query, feed, sourceID).Scan(
		&rec.ID,
		&rec.Feed,
		&rec.SourceID,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToInsertMedia, err)
	}
	return &rec, nil
}

// ListMedia returns the records of a feed, oldest first
func (r *MediaRepository) ListMedia(ctx context.Context, feed string) ([]domain.MediaRecord, error) {
	query := `
		SELECT id, feed, source_id, created_at
		FROM media
		WHERE feed = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, feed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListMedia, err)
	}
	defer rows.Close()

	var records []domain.MediaRecord
	for rows.Next() {
		var rec domain.MediaRecord
		if err := rows.Scan(&rec.ID, &rec.Feed, &rec.SourceID, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanMedia, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListMedia, err)
	}
	return records, nil
}

// CountMedia returns the number of records in a feed
func (r *MediaRepository) CountMedia(ctx context.Context, feed string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM media WHERE feed = $1`, feed).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountMedia, err)
	}
	return n, nil
}
