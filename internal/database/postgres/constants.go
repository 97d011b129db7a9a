package postgres

// Error Messages - State Operations
const (
	ErrMsgFailedToGetState = "failed to get state"
	ErrMsgFailedToSetState = "failed to set state"
)

// Error Messages - Media Operations
const (
	ErrMsgFailedToInsertMedia = "failed to insert media"
	ErrMsgFailedToListMedia   = "failed to list media"
	ErrMsgFailedToScanMedia   = "failed to scan media row"
	ErrMsgFailedToCountMedia  = "failed to count media"
)
