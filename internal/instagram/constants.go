package instagram

// Endpoint paths, relative to the API and Graph base URLs
const (
	PathShortLivedToken = "/oauth/access_token"
	PathLongLivedToken  = "/access_token"
	PathRefreshToken    = "/refresh_access_token"
	PathListMedia       = "/v13.0/me/media"
	PathPostFormat      = "/v13.0/%s"
)

// Query parameters and grant types
const (
	ParamGrantType    = "grant_type"
	ParamClientSecret = "client_secret"
	ParamAccessToken  = "access_token"
	ParamFields       = "fields"

	GrantExchangeToken = "ig_exchange_token"
	GrantRefreshToken  = "ig_refresh_token"

	// Scope is sent as a single comma separated value
	Scope = "user_profile,user_media"
)

// Operation labels for logs and metrics
const (
	OpShortLivedToken = "short_lived_token"
	OpLongLivedToken  = "long_lived_token"
	OpRefreshToken    = "refresh_token"
	OpListMedia       = "list_media"
	OpGetPost         = "get_post"
)

// maxErrorBody bounds how much of an error response is kept for logging
const maxErrorBody = 4 << 10

// Log messages
const (
	LogMsgRequestFailed = "Instagram request failed"
)

// Error messages
const (
	ErrMsgBuildRequest    = "failed to build request"
	ErrMsgDecodeResponse  = "failed to decode response"
	ErrMsgMissingToken    = "response did not contain an access token"
	ErrMsgMissingPostData = "response did not contain a post id"
)
