package config

import "time"

// Default configuration values
const (
	DefaultPort                 = 8080
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "text"
	DefaultLogDir               = "logs"
	DefaultEnvironment          = "dev"
	DefaultVersion              = "dev"
	DefaultHTTPTimeout          = 15 * time.Second
	DefaultSyncSchedule         = "@every 10m"
	DefaultTokenRefreshInterval = time.Hour
	DefaultWorkerCount          = 2
	DefaultWorkerQueueSize      = 32
	DefaultJobTimeout           = 2 * time.Minute
	DefaultPostCacheSize        = 1024
	DefaultDBMaxConns           = 10
	DefaultDBMaxIdle            = 5 * time.Minute
	DefaultDBMaxLife            = 30 * time.Minute
	DefaultFeeds                = "instagram:0"
)

// Instagram endpoints
const (
	DefaultInstagramAuthURL   = "https://api.instagram.com/oauth/authorize"
	DefaultInstagramAPIURL    = "https://api.instagram.com"
	DefaultInstagramGraphURL  = "https://graph.instagram.com"
	DefaultInstagramRedirect  = "http://localhost:8080/instagram/callback"
	DefaultThumbnailDirectory = "media_instagram"
)

// State drivers
const (
	StateDriverMemory   = "memory"
	StateDriverPostgres = "postgres"
)

// Thumbnail stores
const (
	ThumbnailStoreNone = "none"
	ThumbnailStoreDir  = "dir"
	ThumbnailStoreS3   = "s3"
)

// Feed list syntax
const (
	FeedSeparator      = ","
	FeedCountSeparator = ":"
)

// Error message prefixes
const (
	ErrMsgInvalidFeed       = "invalid FEEDS entry"
	ErrMsgInvalidConfig     = "invalid configuration"
	ErrMsgInvalidPortFormat = "invalid PORT value"
)
