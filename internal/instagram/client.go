// Package instagram is a thin client for the Instagram Basic Display API.
package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/osse101/InstaSync_Go/internal/domain"
	"github.com/osse101/InstaSync_Go/internal/logger"
	"github.com/osse101/InstaSync_Go/internal/metrics"
)

// Config holds the application credentials and endpoint base URLs
type Config struct {
	AppID       string
	AppSecret   string
	RedirectURI string
	AuthURL     string // full authorize URL
	APIURL      string // base of the short-lived token endpoint
	GraphURL    string // base of the Graph API
	Timeout     time.Duration
}

// AccessToken is a token issued by one of the token endpoints.
// ExpiresIn is zero for short-lived tokens.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}

type mediaList struct {
	Data []domain.Post `json:"data"`
}

// Client calls the Instagram token and media endpoints.
// Every failure is returned wrapped in domain.ErrTransport.
type Client struct {
	cfg        Config
	httpClient *http.Client
	oauth      *oauth2.Config
}

// NewClient creates a new Instagram client
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		oauth: &oauth2.Config{
			ClientID:     cfg.AppID,
			ClientSecret: cfg.AppSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{Scope},
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  strings.TrimRight(cfg.APIURL, "/") + PathShortLivedToken,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
}

// Configured reports whether app credentials are present
func (c *Client) Configured() bool {
	return c.cfg.AppID != "" && c.cfg.AppSecret != ""
}

// AuthCodeURL returns the authorize URL carrying state
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// ExchangeCode trades an authorization code for a short-lived token
func (c *Client) ExchangeCode(ctx context.Context, code string) (*AccessToken, error) {
	start := time.Now()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil {
			err = fmt.Errorf("%s %d: %s", domain.ErrMsgUnexpectedStatusCode, rerr.Response.StatusCode, truncate(rerr.Body))
		}
		return nil, c.fail(ctx, OpShortLivedToken, start, err)
	}

	c.succeed(OpShortLivedToken, start)
	return &AccessToken{AccessToken: tok.AccessToken, TokenType: tok.TokenType}, nil
}

// ExchangeLongLived trades a short-lived token for a long-lived one
func (c *Client) ExchangeLongLived(ctx context.Context, shortLived string) (*AccessToken, error) {
	q := url.Values{}
	q.Set(ParamGrantType, GrantExchangeToken)
	q.Set(ParamClientSecret, c.cfg.AppSecret)
	q.Set(ParamAccessToken, shortLived)

	return c.token(ctx, OpLongLivedToken, c.graphURL(PathLongLivedToken, q))
}

// RefreshToken extends a long-lived token
func (c *Client) RefreshToken(ctx context.Context, token string) (*AccessToken, error) {
	q := url.Values{}
	q.Set(ParamGrantType, GrantRefreshToken)
	q.Set(ParamAccessToken, token)

	return c.token(ctx, OpRefreshToken, c.graphURL(PathRefreshToken, q))
}

// ListMedia returns the most recent posts of the linked account
func (c *Client) ListMedia(ctx context.Context, token string) ([]domain.Post, error) {
	start := time.Now()

	var list mediaList
	if err := c.getJSON(ctx, c.graphURL(PathListMedia, postQuery(token)), &list); err != nil {
		return nil, c.fail(ctx, OpListMedia, start, err)
	}

	c.succeed(OpListMedia, start)
	return list.Data, nil
}

// GetPost fetches a single post by id
func (c *Client) GetPost(ctx context.Context, token, id string) (*domain.Post, error) {
	start := time.Now()
	path := fmt.Sprintf(PathPostFormat, url.PathEscape(id))

	var post domain.Post
	if err := c.getJSON(ctx, c.graphURL(path, postQuery(token)), &post); err != nil {
		return nil, c.fail(ctx, OpGetPost, start, err)
	}
	if post.ID == "" {
		return nil, c.fail(ctx, OpGetPost, start, errors.New(ErrMsgMissingPostData))
	}

	c.succeed(OpGetPost, start)
	return &post, nil
}

func (c *Client) token(ctx context.Context, op, endpoint string) (*AccessToken, error) {
	start := time.Now()

	var tok AccessToken
	if err := c.getJSON(ctx, endpoint, &tok); err != nil {
		return nil, c.fail(ctx, op, start, err)
	}
	if tok.AccessToken == "" {
		return nil, c.fail(ctx, op, start, errors.New(ErrMsgMissingToken))
	}

	c.succeed(op, start)
	return &tok, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgBuildRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%s %d: %s", domain.ErrMsgUnexpectedStatusCode, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDecodeResponse, err)
	}
	return nil
}

func (c *Client) graphURL(path string, q url.Values) string {
	return strings.TrimRight(c.cfg.GraphURL, "/") + path + "?" + q.Encode()
}

// fail logs the raw cause once and returns it wrapped in ErrTransport.
// The access token is part of the query string, so URLs never reach the log.
func (c *Client) fail(ctx context.Context, op string, start time.Time, cause error) error {
	metrics.RemoteRequestsTotal.WithLabelValues(op, metrics.OutcomeFailure).Inc()
	metrics.RemoteRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	cause = redact(cause)
	logger.FromContext(ctx).Error(LogMsgRequestFailed, "operation", op, "error", cause)
	return fmt.Errorf("%w: %s: %v", domain.ErrTransport, op, cause)
}

func (c *Client) succeed(op string, start time.Time) {
	metrics.RemoteRequestsTotal.WithLabelValues(op, metrics.OutcomeSuccess).Inc()
	metrics.RemoteRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func postQuery(token string) url.Values {
	q := url.Values{}
	q.Set(ParamFields, domain.PostFields)
	q.Set(ParamAccessToken, token)
	return q
}

// redact strips the URL from transport errors
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s %s: %w", uerr.Op, scrubURL(uerr.URL), uerr.Err)
	}
	return err
}

func scrubURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	u.RawQuery = ""
	return u.String()
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		b = b[:maxErrorBody]
	}
	return string(b)
}
