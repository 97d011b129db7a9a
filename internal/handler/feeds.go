package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/InstaSync_Go/internal/domain"
	"github.com/osse101/InstaSync_Go/internal/logger"
	"github.com/osse101/InstaSync_Go/internal/worker"
)

// FeedCatalog looks up configured feeds
type FeedCatalog interface {
	Feed(id string) (domain.Feed, bool)
}

// JobQueue accepts background jobs without blocking
type JobQueue interface {
	TryEnqueue(job worker.Job) bool
}

// SyncQueuedResponse is returned once a sync has been queued
type SyncQueuedResponse struct {
	Message string `json:"message"`
	Feed    string `json:"feed"`
	Enabled bool   `json:"enabled"`
}

// HandleSyncFeed queues an immediate synchronization of one feed.
// The run itself takes the per-feed lock, so a queued job never overlaps a scheduled one.
func HandleSyncFeed(feeds FeedCatalog, syncer worker.FeedSyncer, queue JobQueue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "feed")
		if details := GetValidator().ValidateVar("feed", id, tagFeedID); details != nil {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrMsgInvalidRequest, Details: details})
			return
		}

		feed, ok := feeds.Feed(id)
		if !ok {
			respondError(w, http.StatusNotFound, ErrMsgUnknownFeed)
			return
		}

		if !queue.TryEnqueue(worker.NewFeedSyncJob(syncer, feed)) {
			respondError(w, http.StatusServiceUnavailable, ErrMsgQueueFull)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgSyncQueued, "feed", feed.ID)
		respondJSON(w, http.StatusAccepted, SyncQueuedResponse{
			Message: MsgSyncQueued,
			Feed:    feed.ID,
			Enabled: feed.Enabled(),
		})
	}
}
