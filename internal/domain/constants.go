package domain

// ============================================================================
// Post Constants
// ============================================================================

// PostTimestampLayout is the layout Instagram uses for the timestamp field
const PostTimestampLayout = "2006-01-02T15:04:05-0700"

// MetadataTimestampLayout is the storage format used for the timestamp metadata attribute
const MetadataTimestampLayout = "2006-01-02T15:04:05"

// PostFields is the field list requested for every media lookup
const PostFields = "caption,id,media_url,permalink,thumbnail_url,timestamp,username"

// ============================================================================
// Token Constants
// ============================================================================

// The refresh deadline is placed at 3/4 of the token lifetime (integer floor)
const (
	RefreshMarginNumerator   = 3
	RefreshMarginDenominator = 4
)

// ============================================================================
// State Keys
// ============================================================================

const (
	// StateKeyToken holds the JSON encoded TokenRecord
	StateKeyToken = "media_instagram.token"

	// StateKeyCursorFormat is formatted with the feed id
	StateKeyCursorFormat = "media_instagram.%s.since"
)

// ============================================================================
// Feed Constants
// ============================================================================

const (
	MinFetchCount     = 0
	MaxFetchCount     = 25
	DefaultFetchCount = 0
)

// ============================================================================
// Metadata Attributes
// ============================================================================

const (
	AttrCaption      = "caption"
	AttrID           = "id"
	AttrThumbnailURI = "thumbnail_uri"
	AttrPermalink    = "permalink"
	AttrTimestamp    = "timestamp"
	AttrUsername     = "username"
	AttrDefaultName  = "default_name"
)

// MetadataAttributes lists every attribute the metadata resolver can answer
var MetadataAttributes = []string{
	AttrCaption,
	AttrID,
	AttrThumbnailURI,
	AttrPermalink,
	AttrTimestamp,
	AttrUsername,
	AttrDefaultName,
}
