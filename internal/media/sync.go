// Package media turns the linked account's posts into local media records.
package media

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/osse101/InstaSync_Go/internal/concurrency"
	"github.com/osse101/InstaSync_Go/internal/domain"
	"github.com/osse101/InstaSync_Go/internal/logger"
	"github.com/osse101/InstaSync_Go/internal/metrics"
	"github.com/osse101/InstaSync_Go/internal/state"
)

// Lister returns the most recent posts of the linked account
type Lister interface {
	ListMedia(ctx context.Context, token string) ([]domain.Post, error)
}

// PostCache receives every post seen in a listing
type PostCache interface {
	Put(p domain.Post)
	PrimeFromList(posts []domain.Post)
}

// Result describes one scheduled run
type Result struct {
	Feed     string  `json:"feed"`
	Outcome  Outcome `json:"outcome"`
	Ingested int     `json:"ingested"`
	Cursor   int64   `json:"cursor"`
}

// Synchronizer polls the remote feed and ingests posts newer than the feed's cursor
type Synchronizer struct {
	remote Lister
	repo   Repository
	cache  PostCache
	store  state.Store
	locks  *concurrency.LockManager
}

// NewSynchronizer creates a new synchronizer
func NewSynchronizer(remote Lister, repo Repository, cache PostCache, store state.Store, locks *concurrency.LockManager) *Synchronizer {
	return &Synchronizer{
		remote: remote,
		repo:   repo,
		cache:  cache,
		store:  store,
		locks:  locks,
	}
}

type datedPost struct {
	post domain.Post
	ts   int64
}

// SyncFeed ingests at most limit posts newer than cursor and returns the advanced cursor.
// A failed or empty listing leaves the cursor unchanged.
func (s *Synchronizer) SyncFeed(ctx context.Context, feed domain.Feed, token string, cursor domain.FetchCursor, limit int) (domain.FetchCursor, int) {
	next, ingested, _ := s.syncFeed(ctx, feed, token, cursor, limit)
	return next, ingested
}

func (s *Synchronizer) syncFeed(ctx context.Context, feed domain.Feed, token string, cursor domain.FetchCursor, limit int) (domain.FetchCursor, int, Outcome) {
	log := logger.FromContext(ctx).With("feed", feed.ID)

	if limit <= 0 {
		return cursor, 0, OutcomeDisabled
	}

	posts, err := s.remote.ListMedia(ctx, token)
	if err != nil {
		log.Warn(LogMsgListFailed, "error", err)
		return cursor, 0, OutcomeFailed
	}
	if len(posts) == 0 {
		log.Info(LogMsgListEmpty)
		return cursor, 0, OutcomeEmpty
	}

	s.cache.PrimeFromList(posts)

	dated := orderNewestFirst(log, feed, posts)
	if len(dated) == 0 {
		return cursor, 0, OutcomeEmpty
	}
	if limit < len(dated) {
		dated = dated[:limit]
	}

	accepted, ingested := 0, 0
	for _, d := range dated {
		// Posts are newest first, so the first one at or below the cursor ends the batch
		if d.ts <= cursor.Since {
			break
		}
		accepted++

		if _, err := s.repo.CreateMedia(ctx, feed.ID, d.post.ID); err != nil {
			metrics.IngestErrorsTotal.WithLabelValues(feed.ID).Inc()
			log.Error(LogMsgIngestFailed, "post_id", d.post.ID, "error", err)
			continue
		}
		s.cache.Put(d.post)
		ingested++
	}

	if accepted == 0 {
		return cursor, 0, OutcomeEmpty
	}

	metrics.PostsIngestedTotal.WithLabelValues(feed.ID).Add(float64(ingested))

	outcome := OutcomeIngested
	switch {
	case ingested == 0:
		outcome = OutcomeFailed
	case ingested < accepted:
		outcome = OutcomePartial
	}
	return cursor.Advance(dated[0].ts), ingested, outcome
}

// orderNewestFirst parses timestamps, drops unparseable posts and restores
// newest-first order when the listing arrives out of order
func orderNewestFirst(log *slog.Logger, feed domain.Feed, posts []domain.Post) []datedPost {
	dated := make([]datedPost, 0, len(posts))
	for _, p := range posts {
		t, err := p.PublishedAt()
		if err != nil {
			log.Warn(LogMsgBadTimestamp, "post_id", p.ID, "timestamp", p.Timestamp)
			continue
		}
		dated = append(dated, datedPost{post: p, ts: t.Unix()})
	}

	ordered := sort.SliceIsSorted(dated, func(i, j int) bool {
		return dated[i].ts > dated[j].ts
	})
	if !ordered {
		metrics.FeedOrderViolations.WithLabelValues(feed.ID).Inc()
		log.Warn(LogMsgListOutOfOrder)
		sort.SliceStable(dated, func(i, j int) bool {
			return dated[i].ts > dated[j].ts
		})
	}
	return dated
}

// Run performs one scheduled synchronization of feed. Runs for the same feed never overlap;
// a run that finds another in progress is skipped.
func (s *Synchronizer) Run(ctx context.Context, feed domain.Feed) (Result, error) {
	log := logger.FromContext(ctx).With("feed", feed.ID)
	res := Result{Feed: feed.ID}
	start := time.Now()

	defer func() {
		metrics.SyncRunsTotal.WithLabelValues(feed.ID, string(res.Outcome)).Inc()
	}()

	if !feed.Enabled() {
		res.Outcome = OutcomeDisabled
		log.Debug(LogMsgFeedDisabled)
		return res, nil
	}

	release, ok := s.locks.TryAcquire(concurrency.FeedKey(feed.ID))
	if !ok {
		res.Outcome = OutcomeSkipped
		log.Info(LogMsgSyncInProgress)
		return res, nil
	}
	defer release()

	tok, linked, err := state.LoadToken(ctx, s.store)
	if err != nil {
		res.Outcome = OutcomeFailed
		return res, fmt.Errorf("%s: %w", ErrMsgLoadToken, err)
	}
	if !linked {
		res.Outcome = OutcomeNoToken
		log.Info(LogMsgNoToken)
		return res, nil
	}

	cursor, err := state.LoadCursor(ctx, s.store, feed)
	if err != nil {
		res.Outcome = OutcomeFailed
		return res, fmt.Errorf("%s: %w", ErrMsgLoadCursor, err)
	}

	next, ingested, outcome := s.syncFeed(ctx, feed, tok.Token, cursor, feed.FetchCount)
	res.Outcome = outcome
	res.Ingested = ingested
	res.Cursor = next.Since

	if next.Since != cursor.Since {
		if err := state.SaveCursor(ctx, s.store, feed, next); err != nil {
			res.Outcome = OutcomeFailed
			return res, fmt.Errorf("%s: %w", ErrMsgSaveCursor, err)
		}
		log.Debug(LogMsgCursorAdvanced, "from", cursor.Since, "to", next.Since)
	}
	metrics.FeedCursor.WithLabelValues(feed.ID).Set(float64(res.Cursor))

	log.Info(LogMsgSyncCompleted,
		"outcome", res.Outcome,
		"ingested", res.Ingested,
		"cursor", res.Cursor,
		"duration", time.Since(start))
	return res, nil
}
