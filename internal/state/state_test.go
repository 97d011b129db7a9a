package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/InstaSync_Go/internal/domain"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrStateNotFound)

	value := []byte(`{"a":1}`)
	require.NoError(t, s.Set(ctx, "k", value))
	value[0] = 'X'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got), "store must not alias caller buffers")
}

func TestTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := LoadToken(ctx, s)
	require.NoError(t, err)
	assert.False(t, ok)

	rec := domain.TokenRecord{Token: "tok", Refresh: 1234}
	require.NoError(t, SaveToken(ctx, s, rec))

	got, ok, err := LoadToken(ctx, s)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, rec, got)

	raw, _ := s.Get(ctx, domain.StateKeyToken)
	assert.JSONEq(t, `{"token":"tok","refresh":1234}`, string(raw))
}

func TestLoadCursor(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	feed := domain.Feed{ID: "instagram", FetchCount: 2}

	cur, err := LoadCursor(ctx, s, feed)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cur.Since, "new feeds start at zero")

	require.NoError(t, SaveCursor(ctx, s, feed, domain.FetchCursor{Since: 50}))
	cur, err = LoadCursor(ctx, s, feed)
	require.NoError(t, err)
	assert.Equal(t, int64(50), cur.Since)

	// Bare numbers are accepted
	require.NoError(t, s.Set(ctx, feed.CursorKey(), []byte("77")))
	cur, err = LoadCursor(ctx, s, feed)
	require.NoError(t, err)
	assert.Equal(t, int64(77), cur.Since)

	require.NoError(t, s.Set(ctx, feed.CursorKey(), []byte(`"nope"`)))
	_, err = LoadCursor(ctx, s, feed)
	assert.ErrorIs(t, err, domain.ErrInvalidCursor)
}

func TestStoreErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	s := new(MockStore)
	boom := errors.New("connection reset")

	s.On("Get", ctx, domain.StateKeyToken).Return(nil, boom)
	s.On("Set", ctx, domain.StateKeyToken, mock.Anything).Return(boom)

	_, _, err := LoadToken(ctx, s)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), ErrMsgReadFailed)

	err = SaveToken(ctx, s, domain.TokenRecord{Token: "t"})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), ErrMsgWriteFailed)

	s.AssertExpectations(t)
}

func TestMemoryStore_ConcurrentWritesAreWhole(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int64) {
			defer wg.Done()
			_ = SaveToken(ctx, s, domain.TokenRecord{Token: "tok", Refresh: i})
		}(int64(i))
		go func() {
			defer wg.Done()
			rec, ok, err := LoadToken(ctx, s)
			if err == nil && ok {
				assert.Equal(t, "tok", rec.Token)
			}
		}()
	}
	wg.Wait()
}
