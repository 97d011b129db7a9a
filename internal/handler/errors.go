package handler

import (
	"errors"
	"net/http"

	"github.com/osse101/InstaSync_Go/internal/domain"
)

// Generic HTTP error messages for client responses.
// These never expose internal error details; handlers and tests share them.
const (
	ErrMsgInternal        = "Something went wrong"
	ErrMsgInvalidRequest  = "Invalid request"
	ErrMsgNoLinkedAccount = "No Instagram account is linked"
	ErrMsgPostNotFound    = "Post not found"
	ErrMsgUnknownFeed     = "Unknown feed"
	ErrMsgUnknownAttr     = "Unknown or empty attribute"
	ErrMsgQueueFull       = "Sync queue is full. Please try again later."
	ErrMsgUnavailable     = "Service unavailable"
)

// Messages shown by the link and callback pages
const (
	MsgLinkNotConfigured = "Instagram account linking has not been set up yet for this website. Please contact your website administrator."
	MsgLinkIntro         = "Only one Instagram account's media can be pulled in by the website. Use the link below to start linking this website with the Instagram account."
	MsgLoginCancelled    = "Login cancelled."
	MsgLoginError        = "An error occurred."
	MsgLoginExpired      = "Login expired."
	MsgLinkFailed        = "An error occurred linking the Instagram account."
	MsgLinkSuccessful    = "Linking successful."
	MsgSyncQueued        = "Sync queued"
)

// Log messages
const (
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgLoginError      = "Instagram login error"
	LogMsgLinkFailed      = "Failed to link Instagram account"
	LogMsgLinkCreated     = "Instagram link page served"
	LogMsgTokenLoadFailed = "Failed to load token"
	LogMsgSyncQueued      = "Feed sync queued"
	LogMsgReadyzFailed    = "Readiness check failed"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP responses that
// do not leak internal details
func mapServiceErrorToUserMessage(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgInternal
	case errors.Is(err, domain.ErrNoToken):
		return http.StatusConflict, ErrMsgNoLinkedAccount
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, ErrMsgPostNotFound
	case errors.Is(err, domain.ErrUnknownFeed):
		return http.StatusNotFound, ErrMsgUnknownFeed
	case errors.Is(err, domain.ErrNotConfigured):
		return http.StatusServiceUnavailable, MsgLinkNotConfigured
	case errors.Is(err, domain.ErrTransport):
		return http.StatusBadGateway, ErrMsgUnavailable
	default:
		return http.StatusInternalServerError, ErrMsgInternal
	}
}
