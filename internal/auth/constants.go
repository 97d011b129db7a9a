package auth

// Log messages
const (
	LogMsgAuthorizationCreated = "Created Instagram authorization request"
	LogMsgStateMismatch        = "Login state did not match"
	LogMsgTokenExchanged       = "Linked Instagram account"
	LogMsgTokenExchangeFailed  = "Instagram token exchange failed"
	LogMsgTokenRefreshed       = "Refreshed Instagram token"
	LogMsgTokenRefreshFailed   = "Instagram token refresh failed"
	LogMsgRefreshNotDue        = "Instagram token refresh not due yet"
)

// Error messages
const (
	ErrMsgPersistToken = "failed to persist token"
	ErrMsgLoadToken    = "failed to load token"
)
