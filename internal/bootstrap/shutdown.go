package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/InstaSync_Go/internal/scheduler"
	"github.com/osse101/InstaSync_Go/internal/server"
	"github.com/osse101/InstaSync_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server    *server.Server
	Scheduler *scheduler.Scheduler
	Pool      *worker.Pool
	Storage   *Storage
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler (stop producing jobs)
// 3. Worker pool (wait for in-flight jobs)
// 4. Storage (close the database pool last)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		slog.Info(LogMsgStoppingScheduler)
		c.Scheduler.Stop()
	}

	if c.Pool != nil {
		slog.Info(LogMsgDrainingWorkers)
		c.Pool.Stop()
	}

	if c.Storage != nil {
		c.Storage.Close()
	}

	slog.Info(LogMsgServerStopped)
}
