package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/InstaSync_Go/internal/domain"
	"github.com/osse101/InstaSync_Go/internal/logger"
	"github.com/osse101/InstaSync_Go/internal/media"
)

// FeedSyncer runs one synchronization of a feed
type FeedSyncer interface {
	Run(ctx context.Context, feed domain.Feed) (media.Result, error)
}

// TokenRefresher refreshes the linked token when its deadline has passed
type TokenRefresher interface {
	RefreshIfDue(ctx context.Context) (bool, error)
}

// FeedSyncJob synchronizes a single feed
type FeedSyncJob struct {
	Syncer FeedSyncer
	Feed   domain.Feed
}

// NewFeedSyncJob creates a sync job for feed
func NewFeedSyncJob(syncer FeedSyncer, feed domain.Feed) *FeedSyncJob {
	return &FeedSyncJob{Syncer: syncer, Feed: feed}
}

func (j *FeedSyncJob) Name() string {
	return fmt.Sprintf(JobNameFeedSyncFmt, j.Feed.ID)
}

func (j *FeedSyncJob) Process(ctx context.Context) error {
	res, err := j.Syncer.Run(ctx, j.Feed)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug(LogMsgFeedSyncFinished,
		"feed", res.Feed,
		"outcome", res.Outcome,
		"ingested", res.Ingested)
	return nil
}

// TokenRefreshJob applies the refresh deadline policy
type TokenRefreshJob struct {
	Refresher TokenRefresher
}

// NewTokenRefreshJob creates a refresh job
func NewTokenRefreshJob(refresher TokenRefresher) *TokenRefreshJob {
	return &TokenRefreshJob{Refresher: refresher}
}

func (j *TokenRefreshJob) Name() string {
	return JobNameTokenRefresh
}

func (j *TokenRefreshJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)

	refreshed, err := j.Refresher.RefreshIfDue(ctx)
	switch {
	case errors.Is(err, domain.ErrNoToken):
		log.Debug(LogMsgTokenRefreshNoToken)
		return nil
	case err != nil:
		return fmt.Errorf("%s: %w", LogMsgTokenRefreshFailed, err)
	case refreshed:
		log.Info(LogMsgTokenRefreshed)
	default:
		log.Debug(LogMsgTokenRefreshNotDue)
	}
	return nil
}
