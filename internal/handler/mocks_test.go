package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/InstaSync_Go/internal/domain"
	"github.com/osse101/InstaSync_Go/internal/media"
	"github.com/osse101/InstaSync_Go/internal/worker"
)

// MockAuthService mocks auth.Service
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) CreateAuthorizationRequest(ctx context.Context, sessionID string) (string, string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) ValidateCallback(ctx context.Context, sessionID, loginState string) bool {
	args := m.Called(ctx, sessionID, loginState)
	return args.Bool(0)
}

func (m *MockAuthService) ExchangeCodeForToken(ctx context.Context, code string) (domain.TokenRecord, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.TokenRecord), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, current domain.TokenRecord) (domain.TokenRecord, error) {
	args := m.Called(ctx, current)
	return args.Get(0).(domain.TokenRecord), args.Error(1)
}

func (m *MockAuthService) Token(ctx context.Context) (domain.TokenRecord, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.TokenRecord), args.Bool(1), args.Error(2)
}

func (m *MockAuthService) RefreshIfDue(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// MockResolver mocks MetadataResolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Lookup(ctx context.Context, id string) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockResolver) All(ctx context.Context, post domain.Post) map[string]string {
	args := m.Called(ctx, post)
	return args.Get(0).(map[string]string)
}

func (m *MockResolver) Attribute(ctx context.Context, post domain.Post, attribute string) (string, bool) {
	args := m.Called(ctx, post, attribute)
	return args.String(0), args.Bool(1)
}

// MockQueue mocks JobQueue
type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) TryEnqueue(job worker.Job) bool {
	args := m.Called(job)
	return args.Bool(0)
}

type stubSyncer struct{}

func (stubSyncer) Run(ctx context.Context, feed domain.Feed) (media.Result, error) {
	return media.Result{Feed: feed.ID}, nil
}

type feedList []domain.Feed

func (l feedList) Feed(id string) (domain.Feed, bool) {
	for _, f := range l {
		if f.ID == id {
			return f, true
		}
	}
	return domain.Feed{}, false
}
