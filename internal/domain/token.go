package domain

import "time"

// TokenRecord is the process-wide access token together with the moment it should be refreshed.
// It is always stored as a single value so readers never observe half an update.
type TokenRecord struct {
	Token   string `json:"token"`
	Refresh int64  `json:"refresh"`
}

// RefreshAt returns the refresh deadline as a time
func (t TokenRecord) RefreshAt() time.Time {
	return time.Unix(t.Refresh, 0).UTC()
}

// Due reports whether the refresh deadline has been reached
func (t TokenRecord) Due(now time.Time) bool {
	return now.Unix() >= t.Refresh
}

// NewTokenRecord builds a record whose refresh deadline sits at three quarters of the token lifetime.
// A failed refresh still leaves the remaining quarter for later attempts.
func NewTokenRecord(token string, issuedAt time.Time, expiresIn int64) TokenRecord {
	margin := expiresIn * RefreshMarginNumerator / RefreshMarginDenominator
	return TokenRecord{
		Token:   token,
		Refresh: issuedAt.Unix() + margin,
	}
}

// FetchCursor is the high-water mark of a feed: the publish time of the newest ingested post
type FetchCursor struct {
	Since int64 `json:"since"`
}

// Advance returns the cursor moved to ts, never moving it backwards
func (c FetchCursor) Advance(ts int64) FetchCursor {
	if ts > c.Since {
		return FetchCursor{Since: ts}
	}
	return c
}
