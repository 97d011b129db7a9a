package postcache

const (
	// KeyPrefix namespaces post ids in the cache
	KeyPrefix = "post:"

	// DefaultSize is used when no capacity is configured
	DefaultSize = 1024
)

const (
	LogMsgFetchFailed = "Post lookup failed"
)
