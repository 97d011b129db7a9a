// Package state holds the process-wide key/value state: the linked token and
// one high-water-mark cursor per feed.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/osse101/InstaSync_Go/internal/domain"
)

// Store is a key/value store whose Set replaces the whole value atomically.
// Get returns domain.ErrStateNotFound for keys that were never written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// GetJSON decodes the value under key into v. It reports false when the key is absent.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, domain.ErrStateNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s %s: %w", ErrMsgReadFailed, key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("%s %s: %w", ErrMsgDecodeFailed, key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgEncodeFailed, key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgWriteFailed, key, err)
	}
	return nil
}

// LoadToken returns the current TokenRecord, if an account has been linked
func LoadToken(ctx context.Context, s Store) (domain.TokenRecord, bool, error) {
	var rec domain.TokenRecord
	ok, err := GetJSON(ctx, s, domain.StateKeyToken, &rec)
	if err != nil || !ok {
		return domain.TokenRecord{}, false, err
	}
	if rec.Token == "" {
		return domain.TokenRecord{}, false, nil
	}
	return rec, true, nil
}

// SaveToken replaces the TokenRecord in a single write
func SaveToken(ctx context.Context, s Store, rec domain.TokenRecord) error {
	return SetJSON(ctx, s, domain.StateKeyToken, rec)
}

// LoadCursor returns the feed's cursor. A feed that was never synchronized starts at zero.
// Cursors written as a bare number are accepted as well.
func LoadCursor(ctx context.Context, s Store, feed domain.Feed) (domain.FetchCursor, error) {
	raw, err := s.Get(ctx, feed.CursorKey())
	if errors.Is(err, domain.ErrStateNotFound) {
		return domain.FetchCursor{}, nil
	}
	if err != nil {
		return domain.FetchCursor{}, fmt.Errorf("%s %s: %w", ErrMsgReadFailed, feed.CursorKey(), err)
	}

	var cur domain.FetchCursor
	if err := json.Unmarshal(raw, &cur); err == nil {
		return cur, nil
	}
	var since int64
	if err := json.Unmarshal(raw, &since); err != nil {
		return domain.FetchCursor{}, fmt.Errorf("%w %s: %v", domain.ErrInvalidCursor, feed.CursorKey(), err)
	}
	return domain.FetchCursor{Since: since}, nil
}

// SaveCursor stores the feed's cursor
func SaveCursor(ctx context.Context, s Store, feed domain.Feed, cur domain.FetchCursor) error {
	return SetJSON(ctx, s, feed.CursorKey(), cur)
}
