// Package auth runs the Instagram login handshake and keeps the long-lived token fresh.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/InstaSync_Go/internal/concurrency"
	"github.com/osse101/InstaSync_Go/internal/domain"
	"github.com/osse101/InstaSync_Go/internal/instagram"
	"github.com/osse101/InstaSync_Go/internal/logger"
	"github.com/osse101/InstaSync_Go/internal/metrics"
	"github.com/osse101/InstaSync_Go/internal/state"
)

// Remote defines the token endpoints the service needs
type Remote interface {
	Configured() bool
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*instagram.AccessToken, error)
	ExchangeLongLived(ctx context.Context, shortLived string) (*instagram.AccessToken, error)
	RefreshToken(ctx context.Context, token string) (*instagram.AccessToken, error)
}

// SessionStore keeps the pending state of each browser session
type SessionStore interface {
	Put(sessionID, state string)
	Get(sessionID string) (string, bool)
	Delete(sessionID string) bool
}

// Service defines the token lifecycle
type Service interface {
	// CreateAuthorizationRequest stores a fresh state for the session and returns the authorize URL
	CreateAuthorizationRequest(ctx context.Context, sessionID string) (redirectURL, loginState string, err error)

	// ValidateCallback consumes the session's state if it matches
	ValidateCallback(ctx context.Context, sessionID, loginState string) bool

	// ExchangeCodeForToken turns an authorization code into a persisted long-lived token
	ExchangeCodeForToken(ctx context.Context, code string) (domain.TokenRecord, error)

	// RefreshToken extends the given token and persists the result
	RefreshToken(ctx context.Context, current domain.TokenRecord) (domain.TokenRecord, error)

	// Token returns the current record, if an account is linked
	Token(ctx context.Context) (domain.TokenRecord, bool, error)

	// RefreshIfDue refreshes the current token once its deadline has passed
	RefreshIfDue(ctx context.Context) (bool, error)
}

type service struct {
	remote   Remote
	sessions SessionStore
	store    state.Store
	locks    *concurrency.LockManager
	now      func() time.Time
}

// Option configures the service
type Option func(*service)

// WithClock replaces the wall clock, used to compute refresh deadlines
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// NewService creates a new auth service
func NewService(remote Remote, sessions SessionStore, store state.Store, locks *concurrency.LockManager, opts ...Option) Service {
	s := &service{
		remote:   remote,
		sessions: sessions,
		store:    store,
		locks:    locks,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) CreateAuthorizationRequest(ctx context.Context, sessionID string) (string, string, error) {
	if !s.remote.Configured() {
		return "", "", domain.ErrNotConfigured
	}

	loginState := uuid.NewString()
	s.sessions.Put(sessionID, loginState)

	logger.FromContext(ctx).Debug(LogMsgAuthorizationCreated)
	return s.remote.AuthCodeURL(loginState), loginState, nil
}

func (s *service) ValidateCallback(ctx context.Context, sessionID, loginState string) bool {
	stored, ok := s.sessions.Get(sessionID)
	if !ok || stored == "" || loginState == "" {
		logger.FromContext(ctx).Info(LogMsgStateMismatch, "reason", "missing")
		return false
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(loginState)) != 1 {
		logger.FromContext(ctx).Info(LogMsgStateMismatch, "reason", "mismatch")
		return false
	}

	// A state can be redeemed only once; the caller that removes it wins
	if !s.sessions.Delete(sessionID) {
		logger.FromContext(ctx).Info(LogMsgStateMismatch, "reason", "already redeemed")
		return false
	}
	return true
}

func (s *service) ExchangeCodeForToken(ctx context.Context, code string) (domain.TokenRecord, error) {
	log := logger.FromContext(ctx)

	short, err := s.remote.ExchangeCode(ctx, code)
	if err != nil {
		return s.exchangeFailed(ctx, err)
	}

	long, err := s.remote.ExchangeLongLived(ctx, short.AccessToken)
	if err != nil {
		return s.exchangeFailed(ctx, err)
	}

	// Serialize with RefreshIfDue so an in-flight refresh of the old token
	// cannot overwrite the record of the newly linked account
	mu := s.locks.GetLock(concurrency.KeyTokenRefresh)
	mu.Lock()
	rec := domain.NewTokenRecord(long.AccessToken, s.now(), long.ExpiresIn)
	err = state.SaveToken(ctx, s.store, rec)
	mu.Unlock()
	if err != nil {
		metrics.TokenOperationsTotal.WithLabelValues(metrics.OperationExchange, metrics.OutcomeFailure).Inc()
		return domain.TokenRecord{}, fmt.Errorf("%s: %w", ErrMsgPersistToken, err)
	}

	metrics.TokenOperationsTotal.WithLabelValues(metrics.OperationExchange, metrics.OutcomeSuccess).Inc()
	metrics.TokenRefreshDeadline.Set(float64(rec.Refresh))
	log.Info(LogMsgTokenExchanged, "refresh_at", rec.RefreshAt())
	return rec, nil
}

func (s *service) exchangeFailed(ctx context.Context, cause error) (domain.TokenRecord, error) {
	metrics.TokenOperationsTotal.WithLabelValues(metrics.OperationExchange, metrics.OutcomeFailure).Inc()
	logger.FromContext(ctx).Warn(LogMsgTokenExchangeFailed, "error", cause)
	return domain.TokenRecord{}, fmt.Errorf("%w: %v", domain.ErrTokenExchangeFailed, cause)
}

func (s *service) RefreshToken(ctx context.Context, current domain.TokenRecord) (domain.TokenRecord, error) {
	tok, err := s.remote.RefreshToken(ctx, current.Token)
	if err != nil {
		metrics.TokenOperationsTotal.WithLabelValues(metrics.OperationRefresh, metrics.OutcomeFailure).Inc()
		logger.FromContext(ctx).Warn(LogMsgTokenRefreshFailed, "error", err)
		return domain.TokenRecord{}, fmt.Errorf("%w: %v", domain.ErrTokenRefreshFailed, err)
	}

	rec := domain.NewTokenRecord(tok.AccessToken, s.now(), tok.ExpiresIn)
	if err := state.SaveToken(ctx, s.store, rec); err != nil {
		metrics.TokenOperationsTotal.WithLabelValues(metrics.OperationRefresh, metrics.OutcomeFailure).Inc()
		return domain.TokenRecord{}, fmt.Errorf("%s: %w", ErrMsgPersistToken, err)
	}

	metrics.TokenOperationsTotal.WithLabelValues(metrics.OperationRefresh, metrics.OutcomeSuccess).Inc()
	metrics.TokenRefreshDeadline.Set(float64(rec.Refresh))
	logger.FromContext(ctx).Info(LogMsgTokenRefreshed, "refresh_at", rec.RefreshAt())
	return rec, nil
}

func (s *service) Token(ctx context.Context) (domain.TokenRecord, bool, error) {
	rec, ok, err := state.LoadToken(ctx, s.store)
	if err != nil {
		return domain.TokenRecord{}, false, fmt.Errorf("%s: %w", ErrMsgLoadToken, err)
	}
	return rec, ok, nil
}

func (s *service) RefreshIfDue(ctx context.Context) (bool, error) {
	mu := s.locks.GetLock(concurrency.KeyTokenRefresh)
	mu.Lock()
	defer mu.Unlock()

	// Re-read inside the lock; a concurrent refresh may already have moved the deadline
	rec, ok, err := s.Token(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, domain.ErrNoToken
	}
	if !rec.Due(s.now()) {
		logger.FromContext(ctx).Debug(LogMsgRefreshNotDue, "refresh_at", rec.RefreshAt())
		return false, nil
	}

	if _, err := s.RefreshToken(ctx, rec); err != nil {
		return false, err
	}
	return true, nil
}
