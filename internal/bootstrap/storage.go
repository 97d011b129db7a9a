package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/InstaSync_Go/internal/config"
	"github.com/osse101/InstaSync_Go/internal/database"
	"github.com/osse101/InstaSync_Go/internal/database/postgres"
	"github.com/osse101/InstaSync_Go/internal/media"
	"github.com/osse101/InstaSync_Go/internal/state"
)

// Storage holds the persistence layer selected by STATE_DRIVER
type Storage struct {
	State  state.Store
	Media  media.Repository
	DBPool *pgxpool.Pool // nil for the memory driver
}

// InitializeStorage connects and migrates the database when the postgres driver
// is selected, otherwise it returns in-memory stores
func InitializeStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.StateDriver {
	case config.StateDriverMemory:
		slog.Info(LogMsgStorageInitialized, "driver", cfg.StateDriver)
		return &Storage{
			State: state.NewMemoryStore(),
			Media: media.NewMemoryRepository(),
		}, nil

	case config.StateDriverPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, config.DefaultDBMaxIdle, config.DefaultDBMaxLife)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}

		migrateCtx, cancel := context.WithTimeout(ctx, MigrationTimeout)
		defer cancel()
		if err := database.Migrate(migrateCtx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateDB, err)
		}

		slog.Info(LogMsgStorageInitialized, "driver", cfg.StateDriver, "host", cfg.DBHost, "database", cfg.DBName)
		return &Storage{
			State:  postgres.NewStateStore(pool),
			Media:  postgres.NewMediaRepository(pool),
			DBPool: pool,
		}, nil

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStateDriver, cfg.StateDriver)
	}
}

// ReadinessPool returns the pool checked by /readyz, or nil without a database
func (s *Storage) ReadinessPool() database.Pool {
	if s.DBPool == nil {
		return nil
	}
	return s.DBPool
}

// Close releases the database pool, if any
func (s *Storage) Close() {
	if s.DBPool != nil {
		s.DBPool.Close()
	}
}
