package concurrency

import (
	"sync"
)

// Lock keys shared by the sync and token refresh paths
const (
	KeyTokenRefresh = "token-refresh"
	keyFeedPrefix   = "feed:"
)

// FeedKey is the lock key guarding synchronization of one feed
func FeedKey(feedID string) string {
	return keyFeedPrefix + feedID
}

// LockManager handles named locks
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// TryAcquire takes the named lock without blocking.
// On success the returned release func must be called exactly once.
func (lm *LockManager) TryAcquire(key string) (release func(), ok bool) {
	mu := lm.GetLock(key)
	if !mu.TryLock() {
		return nil, false
	}
	return mu.Unlock, true
}
