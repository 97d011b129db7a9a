package media

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/InstaSync_Go/internal/domain"
)

// Repository materializes ingested posts as local media records
type Repository interface {
	CreateMedia(ctx context.Context, feed, sourceID string) (*domain.MediaRecord, error)
	ListMedia(ctx context.Context, feed string) ([]domain.MediaRecord, error)
	CountMedia(ctx context.Context, feed string) (int, error)
}

// MemoryRepository is an in-process Repository
type MemoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	records []domain.MediaRecord
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) CreateMedia(_ context.Context, feed, sourceID string) (*domain.MediaRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	rec := domain.MediaRecord{
		ID:        r.nextID,
		Feed:      feed,
		SourceID:  sourceID,
		CreatedAt: time.Now().UTC(),
	}
	r.records = append(r.records, rec)
	return &rec, nil
}

func (r *MemoryRepository) ListMedia(_ context.Context, feed string) ([]domain.MediaRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.MediaRecord
	for _, rec := range r.records {
		if rec.Feed == feed {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *MemoryRepository) CountMedia(ctx context.Context, feed string) (int, error) {
	records, err := r.ListMedia(ctx, feed)
	return len(records), err
}
