// Package session keeps the pending OAuth state nonce of each browser session.
package session

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store holds at most one pending state per session. Entries that are never
// redeemed expire after the configured TTL.
type Store struct {
	states *expirable.LRU[string, string]
}

// NewStore creates a session store holding up to size pending states
func NewStore(size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		states: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

// Put stores state for the session, replacing any earlier attempt
func (s *Store) Put(sessionID, state string) {
	s.states.Add(sessionID, state)
}

// Get returns the pending state of the session without consuming it
func (s *Store) Get(sessionID string) (string, bool) {
	return s.states.Get(sessionID)
}

// Delete drops the pending state of the session. It reports whether this call
// removed the entry, so concurrent callers never both see true.
func (s *Store) Delete(sessionID string) bool {
	return s.states.Remove(sessionID)
}

// Len returns the number of pending states
func (s *Store) Len() int {
	return s.states.Len()
}
