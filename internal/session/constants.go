package session

import "time"

const (
	// DefaultSize bounds concurrent login attempts
	DefaultSize = 1024

	// DefaultTTL is how long an unredeemed login attempt stays valid
	DefaultTTL = 10 * time.Minute

	// CookieName identifies the browser session on the link and callback pages
	CookieName = "instasync_session"
)
