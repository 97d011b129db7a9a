package domain

import (
	"fmt"
	"time"
)

// Post is a single item from the linked account's media feed.
// Values are immutable once fetched.
type Post struct {
	ID           string `json:"id"`
	Caption      string `json:"caption,omitempty"`
	MediaURL     string `json:"media_url,omitempty"`
	Permalink    string `json:"permalink,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Timestamp    string `json:"timestamp"`
	Username     string `json:"username,omitempty"`
}

// PublishedAt parses the provider timestamp.
// Instagram sends "2017-08-31T18:10:00+0000"; RFC 3339 is accepted as well.
func (p Post) PublishedAt() (time.Time, error) {
	if t, err := time.Parse(PostTimestampLayout, p.Timestamp); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, p.Timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q for post %s: %w", p.Timestamp, p.ID, err)
	}
	return t, nil
}

// ImageURL returns the best URL for a still image of the post
func (p Post) ImageURL() string {
	if p.ThumbnailURL != "" {
		return p.ThumbnailURL
	}
	return p.MediaURL
}

// MediaRecord is the local entity materialized for an ingested post
type MediaRecord struct {
	ID        int64     `json:"id"`
	Feed      string    `json:"feed"`
	SourceID  string    `json:"source_id"`
	CreatedAt time.Time `json:"created_at"`
}
