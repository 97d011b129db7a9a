package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Sync metric names
const (
	MetricNameSyncRunsTotal        = "instasync_sync_runs_total"
	MetricNamePostsIngestedTotal   = "instasync_posts_ingested_total"
	MetricNameIngestErrorsTotal    = "instasync_ingest_errors_total"
	MetricNameFeedOrderViolations  = "instasync_feed_order_violations_total"
	MetricNameFeedCursor           = "instasync_feed_cursor_timestamp_seconds"
	MetricNameTokenOperationsTotal = "instasync_token_operations_total"
	MetricNameTokenRefreshDeadline = "instasync_token_refresh_deadline_seconds"
	MetricNamePostCacheRequests    = "instasync_post_cache_requests_total"
	MetricNameRemoteRequestsTotal  = "instasync_remote_requests_total"
	MetricNameRemoteDuration       = "instasync_remote_request_duration_seconds"
	MetricNameThumbnailsTotal      = "instasync_thumbnails_total"
)

// Worker metric names
const (
	MetricNameJobDuration = "instasync_job_duration_seconds"
	MetricNameJobFailures = "instasync_job_failures_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Sync metric help text
const (
	HelpTextSyncRunsTotal        = "Feed synchronization runs by outcome"
	HelpTextPostsIngestedTotal   = "Posts materialized as media records"
	HelpTextIngestErrorsTotal    = "Posts that could not be materialized"
	HelpTextFeedOrderViolations  = "Listings that were not in newest-first order"
	HelpTextFeedCursor           = "Current high-water mark of each feed"
	HelpTextTokenOperationsTotal = "Token exchanges and refreshes by outcome"
	HelpTextTokenRefreshDeadline = "Unix time at which the current token should be refreshed"
	HelpTextPostCacheRequests    = "Post cache lookups by result"
	HelpTextRemoteRequestsTotal  = "Instagram API calls by operation and outcome"
	HelpTextRemoteDuration       = "Instagram API call latency in seconds"
	HelpTextThumbnailsTotal      = "Thumbnail resolutions by outcome"
)

// Worker metric help text
const (
	HelpTextJobDuration = "Background job run time in seconds"
	HelpTextJobFailures = "Background jobs that returned an error"
)

// ============================================================================
// Label Names
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelFeed      = "feed"
	LabelOutcome   = "outcome"
	LabelOperation = "operation"
	LabelResult    = "result"
	LabelJob       = "job"
)

// ============================================================================
// Label Values
// ============================================================================

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	OperationExchange = "exchange"
	OperationRefresh  = "refresh"

	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultError = "error"

	PathUnmatched = "unmatched"
)

// ============================================================================
// Buckets
// ============================================================================

// HTTPLatencyBuckets defines histogram buckets for HTTP request latency
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// RemoteLatencyBuckets defines histogram buckets for upstream API calls
var RemoteLatencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// JobDurationBuckets defines histogram buckets for background jobs
var JobDurationBuckets = []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120}
