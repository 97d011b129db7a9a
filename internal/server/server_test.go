package server

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/InstaSync_Go/internal/auth"
	"github.com/osse101/InstaSync_Go/internal/concurrency"
	"github.com/osse101/InstaSync_Go/internal/domain"
	"github.com/osse101/InstaSync_Go/internal/instagram"
	"github.com/osse101/InstaSync_Go/internal/media"
	"github.com/osse101/InstaSync_Go/internal/session"
	"github.com/osse101/InstaSync_Go/internal/state"
	"github.com/osse101/InstaSync_Go/internal/worker"
)

// unconfiguredRemote stands in for an Instagram app without credentials
type unconfiguredRemote struct{}

func (unconfiguredRemote) Configured() bool                { return false }
func (unconfiguredRemote) AuthCodeURL(state string) string { return "" }
func (unconfiguredRemote) ExchangeCode(ctx context.Context, code string) (*instagram.AccessToken, error) {
	return nil, domain.ErrNotConfigured
}
func (unconfiguredRemote) ExchangeLongLived(ctx context.Context, short string) (*instagram.AccessToken, error) {
	return nil, domain.ErrNotConfigured
}
func (unconfiguredRemote) RefreshToken(ctx context.Context, token string) (*instagram.AccessToken, error) {
	return nil, domain.ErrNotConfigured
}

type noopSyncer struct{}

func (noopSyncer) Run(ctx context.Context, feed domain.Feed) (media.Result, error) {
	return media.Result{Feed: feed.ID}, nil
}

type acceptAll struct{}

func (acceptAll) TryEnqueue(job worker.Job) bool { return true }

type feedList []domain.Feed

func (l feedList) Feed(id string) (domain.Feed, bool) {
	for _, f := range l {
		if f.ID == id {
			return f, true
		}
	}
	return domain.Feed{}, false
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := state.NewMemoryStore()
	svc := auth.NewService(unconfiguredRemote{}, session.NewStore(0, 0), store, concurrency.NewLockManager())
	return NewRouter(Dependencies{
		Auth:     svc,
		Resolver: media.NewResolver(svc, nil, nil),
		Feeds:    feedList{{ID: "instagram", FetchCount: 2}},
		Syncer:   noopSyncer{},
		Queue:    acceptAll{},
		APIKey:   "secret-key",
	})
}

func TestRouter_PublicAndProtectedRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		apiKey         string
		expectedStatus int
	}{
		{"healthz is public", "GET", "/healthz", "", http.StatusOK},
		{"readyz without database", "GET", "/readyz", "", http.StatusOK},
		{"metrics is public", "GET", "/metrics", "", http.StatusOK},
		{"link page is public", "GET", "/instagram/link", "", http.StatusServiceUnavailable},
		{"callback is public", "GET", "/instagram/callback?error_reason=user_denied", "", http.StatusOK},
		{"api requires key", "GET", "/api/v1/token", "", http.StatusUnauthorized},
		{"api with key", "GET", "/api/v1/token", "secret-key", http.StatusOK},
		{"media without linked account", "GET", "/api/v1/media/17900", "secret-key", http.StatusConflict},
		{"sync queued", "POST", "/api/v1/feeds/instagram/sync", "secret-key", http.StatusAccepted},
		{"sync unknown feed", "POST", "/api/v1/feeds/reels/sync", "secret-key", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.apiKey != "" {
				req.Header.Set(HeaderAPIKey, tt.apiKey)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestLoggingMiddleware_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	req := httptest.NewRequest("GET", "/instagram/callback?code=one-time-code&state=s", nil)
	req.Header.Set(HeaderAPIKey, "secret-key-123")
	req.Header.Set(HeaderAuthorization, "Bearer mytoken")
	req.Header.Set("User-Agent", "TestAgent")
	rec := httptest.NewRecorder()

	loggingMiddleware(okHandler()).ServeHTTP(rec, req)

	out := buf.String()
	require.Contains(t, out, LogMsgRequestHeaders)
	assert.NotContains(t, out, "secret-key-123")
	assert.NotContains(t, out, "Bearer mytoken")
	assert.NotContains(t, out, "one-time-code")
	assert.Contains(t, out, "TestAgent")
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
}

func TestLoggingMiddleware_SkipsQuietPaths(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	rec := httptest.NewRecorder()
	loggingMiddleware(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	assert.Empty(t, buf.String())
	assert.Empty(t, rec.Header().Get(HeaderRequestID))
}
