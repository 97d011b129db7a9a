// Package postcache keeps remote post metadata so lookups avoid the network.
package postcache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/osse101/InstaSync_Go/internal/domain"
	"github.com/osse101/InstaSync_Go/internal/logger"
	"github.com/osse101/InstaSync_Go/internal/metrics"
)

// Fetcher loads a single post from the remote API
type Fetcher interface {
	GetPost(ctx context.Context, token, id string) (*domain.Post, error)
}

// Cache is a bounded get-or-fetch cache of posts. Entries have no expiry and
// only leave through an overwrite or capacity eviction.
type Cache struct {
	fetcher Fetcher
	posts   *lru.Cache[string, domain.Post]
}

// New creates a cache holding up to size posts
func New(fetcher Fetcher, size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	posts, err := lru.New[string, domain.Post](size)
	if err != nil {
		return nil, err
	}
	return &Cache{fetcher: fetcher, posts: posts}, nil
}

// Key returns the cache key of a post id
func Key(id string) string {
	return KeyPrefix + id
}

// GetPost returns the cached post, fetching it on a miss. Failed fetches are not cached.
func (c *Cache) GetPost(ctx context.Context, token, id string) (*domain.Post, bool) {
	if p, ok := c.posts.Get(Key(id)); ok {
		metrics.PostCacheRequests.WithLabelValues(metrics.ResultHit).Inc()
		return &p, true
	}

	metrics.PostCacheRequests.WithLabelValues(metrics.ResultMiss).Inc()
	p, err := c.fetcher.GetPost(ctx, token, id)
	if err != nil || p == nil {
		metrics.PostCacheRequests.WithLabelValues(metrics.ResultError).Inc()
		logger.FromContext(ctx).Debug(LogMsgFetchFailed, "post_id", id, "error", err)
		return nil, false
	}

	// Keyed by the requested id so the next lookup hits even if upstream reports another id
	c.posts.Add(Key(id), *p)
	return p, true
}

// Put stores a single post, overwriting any earlier value
func (c *Cache) Put(p domain.Post) {
	c.posts.Add(Key(p.ID), p)
}

// PrimeFromList stores every post of a listing
func (c *Cache) PrimeFromList(posts []domain.Post) {
	for _, p := range posts {
		if p.ID == "" {
			continue
		}
		c.posts.Add(Key(p.ID), p)
	}
}

// Peek returns a cached post without fetching or touching recency
func (c *Cache) Peek(id string) (domain.Post, bool) {
	return c.posts.Peek(Key(id))
}

// Len returns the number of cached posts
func (c *Cache) Len() int {
	return c.posts.Len()
}
