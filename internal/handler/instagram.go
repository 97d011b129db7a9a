package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/osse101/InstaSync_Go/internal/auth"
	"github.com/osse101/InstaSync_Go/internal/domain"
	"github.com/osse101/InstaSync_Go/internal/logger"
	"github.com/osse101/InstaSync_Go/internal/session"
)

// Paths of the public linking flow
const (
	PathLink     = "/instagram/link"
	PathCallback = "/instagram/callback"
)

// Query parameters Instagram sends to the callback
const (
	queryCode        = "code"
	queryState       = "state"
	queryError       = "error"
	queryErrorReason = "error_reason"

	errorReasonUserDenied = "user_denied"
)

// LinkResponse is returned by the link page
type LinkResponse struct {
	Message      string `json:"message"`
	Title        string `json:"title"`
	AuthorizeURL string `json:"authorize_url"`
}

const linkTitle = "Link with Instagram"

// HandleLink starts the authorization flow. It binds a fresh login state to the
// caller's session cookie and returns the Instagram authorization URL.
func HandleLink(svc auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		sessionID := sessionFromRequest(r)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		authorizeURL, _, err := svc.CreateAuthorizationRequest(r.Context(), sessionID)
		if err != nil {
			statusCode, msg := mapServiceErrorToUserMessage(err)
			respondMessage(w, statusCode, msg, "")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     session.CookieName,
			Value:    sessionID,
			Path:     "/",
			MaxAge:   int(session.DefaultTTL.Seconds()),
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})

		log.Info(LogMsgLinkCreated)
		respondJSON(w, http.StatusOK, LinkResponse{
			Message:      MsgLinkIntro,
			Title:        linkTitle,
			AuthorizeURL: authorizeURL,
		})
	}
}

// HandleCallback completes the authorization flow
func HandleCallback(svc auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		query := r.URL.Query()

		if query.Get(queryErrorReason) == errorReasonUserDenied {
			respondMessage(w, http.StatusOK, MsgLoginCancelled, "")
			return
		}

		if query.Has(queryError) {
			raw, _ := json.Marshal(query)
			log.Error(LogMsgLoginError, "query", string(raw))
			respondMessage(w, http.StatusBadRequest, MsgLoginError, PathLink)
			return
		}

		if !svc.ValidateCallback(r.Context(), sessionFromRequest(r), query.Get(queryState)) {
			respondMessage(w, http.StatusBadRequest, MsgLoginExpired, PathLink)
			return
		}

		if _, err := svc.ExchangeCodeForToken(r.Context(), query.Get(queryCode)); err != nil {
			log.Error(LogMsgLinkFailed, "error", err)
			respondMessage(w, http.StatusBadGateway, MsgLinkFailed, PathLink)
			return
		}

		respondMessage(w, http.StatusOK, MsgLinkSuccessful, "")
	}
}

func sessionFromRequest(r *http.Request) string {
	c, err := r.Cookie(session.CookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return ""
	}
	return c.Value
}

// TokenStatusResponse reports whether an account is linked
type TokenStatusResponse struct {
	Linked    bool   `json:"linked"`
	RefreshAt string `json:"refresh_at,omitempty"`
}

// HandleTokenStatus reports the link state without revealing the token
func HandleTokenStatus(svc auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok, err := svc.Token(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error(LogMsgTokenLoadFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgInternal)
			return
		}
		if !ok {
			respondJSON(w, http.StatusOK, TokenStatusResponse{Linked: false})
			return
		}
		respondJSON(w, http.StatusOK, TokenStatusResponse{
			Linked:    true,
			RefreshAt: rec.RefreshAt().Format(domain.MetadataTimestampLayout),
		})
	}
}
