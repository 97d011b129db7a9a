package domain

import "fmt"

// Feed is one synchronized media type. FetchCount bounds how many posts a single
// cycle may ingest; zero disables synchronization for the feed.
type Feed struct {
	ID         string `json:"id" validate:"required,max=64"`
	FetchCount int    `json:"fetch_count" validate:"min=0,max=25"`
}

// Enabled reports whether the feed should be synchronized at all
func (f Feed) Enabled() bool {
	return f.FetchCount > 0
}

// CursorKey is the state key holding this feed's FetchCursor
func (f Feed) CursorKey() string {
	return fmt.Sprintf(StateKeyCursorFormat, f.ID)
}
