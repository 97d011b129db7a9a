package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Remote API errors
	ErrMsgTransport            = "instagram request failed"
	ErrMsgTokenExchangeFailed  = "token exchange failed"
	ErrMsgTokenRefreshFailed   = "token refresh failed"
	ErrMsgUnexpectedStatusCode = "unexpected status code"

	// Authorization errors
	ErrMsgNotConfigured = "instagram linking is not configured"
	ErrMsgInvalidState  = "invalid or expired login state"
	ErrMsgNoToken       = "no instagram account is linked"

	// Feed and media errors
	ErrMsgUnknownFeed   = "unknown feed"
	ErrMsgPostNotFound  = "post not found"
	ErrMsgInvalidCursor = "invalid cursor value"

	// Storage errors
	ErrMsgStateNotFound = "state key not found"
)

var (
	// ErrTransport wraps every network or HTTP-level failure talking to Instagram
	ErrTransport = errors.New(ErrMsgTransport)
	// ErrTokenExchangeFailed is returned when either leg of the code exchange fails
	ErrTokenExchangeFailed = errors.New(ErrMsgTokenExchangeFailed)
	// ErrTokenRefreshFailed is returned when the long-lived token could not be refreshed
	ErrTokenRefreshFailed = errors.New(ErrMsgTokenRefreshFailed)

	ErrNotConfigured = errors.New(ErrMsgNotConfigured)
	ErrInvalidState  = errors.New(ErrMsgInvalidState)
	ErrNoToken       = errors.New(ErrMsgNoToken)

	ErrUnknownFeed   = errors.New(ErrMsgUnknownFeed)
	ErrPostNotFound  = errors.New(ErrMsgPostNotFound)
	ErrInvalidCursor = errors.New(ErrMsgInvalidCursor)

	// ErrStateNotFound is returned by state stores when a key has never been written
	ErrStateNotFound = errors.New(ErrMsgStateNotFound)
)
