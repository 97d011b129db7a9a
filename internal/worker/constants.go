package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

const (
	// LogMsgWorkerJobFailed is logged when a worker fails to process a job
	LogMsgWorkerJobFailed = "Worker job failed"
	// LogMsgWorkerQueueFull is logged when a non-blocking enqueue is rejected
	LogMsgWorkerQueueFull = "Worker queue full, job dropped"
)

// ============================================================================
// Log Messages - Jobs
// ============================================================================

const (
	LogMsgFeedSyncFinished    = "Feed sync finished"
	LogMsgTokenRefreshed      = "Instagram token refreshed"
	LogMsgTokenRefreshNotDue  = "Instagram token refresh not due"
	LogMsgTokenRefreshFailed  = "Instagram token refresh failed"
	LogMsgTokenRefreshNoToken = "No Instagram token linked, refresh skipped"
)

// ============================================================================
// Job Names
// ============================================================================

const (
	JobNameUnknown      = "unknown"
	JobNameTokenRefresh = "token-refresh"
	JobNameFeedSyncFmt  = "feed-sync:%s"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
