package media

// Outcome of one scheduled synchronization run
type Outcome string

const (
	OutcomeIngested Outcome = "ingested"
	OutcomePartial Outcome  = "partial"
	OutcomeEmpty Outcome    = "empty"
	OutcomeFailed Outcome   = "failed"
	OutcomeNoToken Outcome  = "no_token"
	OutcomeSkipped Outcome  = "skipped"
	OutcomeDisabled Outcome = "disabled"
)

// DefaultNameLength caps the summary used as a media item's default name
const DefaultNameLength = 30

// Log messages
const (
	LogMsgListFailed     = "Failed to list Instagram media"
	LogMsgListEmpty      = "Instagram returned no media"
	LogMsgListOutOfOrder = "Instagram media list was not newest first, sorting"
	LogMsgBadTimestamp   = "Dropping post with unparseable timestamp"
	LogMsgIngestFailed   = "Failed to create media record"
	LogMsgSyncCompleted  = "Feed synchronization finished"
	LogMsgSyncInProgress = "Feed synchronization already running, skipping"
	LogMsgFeedDisabled   = "Feed synchronization disabled"
	LogMsgNoToken        = "No Instagram account linked, skipping feed"
	LogMsgCursorAdvanced = "Feed cursor advanced"
	LogMsgMetadataLookup = "Could not resolve post metadata"
)

// Error messages
const (
	ErrMsgLoadCursor = "failed to load cursor"
	ErrMsgSaveCursor = "failed to save cursor"
	ErrMsgLoadToken  = "failed to load token"
)
