package postcache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/InstaSync_Go/internal/domain"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) GetPost(ctx context.Context, token, id string) (*domain.Post, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func TestCache_MissFetchesAndStores(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("GetPost", mock.Anything, "tok", "1").Return(&domain.Post{ID: "1", Caption: "hello"}, nil).Once()

	c, err := New(fetcher, 10)
	require.NoError(t, err)

	p, ok := c.GetPost(context.Background(), "tok", "1")
	require.True(t, ok)
	assert.Equal(t, "hello", p.Caption)

	// Second lookup is served from memory
	p, ok = c.GetPost(context.Background(), "tok", "1")
	require.True(t, ok)
	assert.Equal(t, "hello", p.Caption)
	fetcher.AssertNumberOfCalls(t, "GetPost", 1)
}

func TestCache_StoresUnderRequestedID(t *testing.T) {
	fetcher := new(MockFetcher)
	// Upstream answers with a canonical id that differs from the one asked for
	fetcher.On("GetPost", mock.Anything, "tok", "0017").Return(&domain.Post{ID: "17", Caption: "hello"}, nil).Once()

	c, err := New(fetcher, 10)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		p, ok := c.GetPost(context.Background(), "tok", "0017")
		require.True(t, ok)
		assert.Equal(t, "hello", p.Caption)
	}
	fetcher.AssertNumberOfCalls(t, "GetPost", 1)

	_, ok := c.Peek("0017")
	assert.True(t, ok)
}

func TestCache_PrimedHitAvoidsNetwork(t *testing.T) {
	fetcher := new(MockFetcher)
	c, err := New(fetcher, 10)
	require.NoError(t, err)

	c.PrimeFromList([]domain.Post{{ID: "1", Caption: "a"}, {ID: "2", Caption: "b"}, {Caption: "no id"}})
	assert.Equal(t, 2, c.Len())

	p, ok := c.GetPost(context.Background(), "tok", "2")
	require.True(t, ok)
	assert.Equal(t, "b", p.Caption)
	fetcher.AssertNotCalled(t, "GetPost", mock.Anything, mock.Anything, mock.Anything)
}

func TestCache_FailureIsNotCached(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("GetPost", mock.Anything, "tok", "1").Return(nil, errors.New("down")).Once()
	fetcher.On("GetPost", mock.Anything, "tok", "1").Return(&domain.Post{ID: "1"}, nil).Once()

	c, err := New(fetcher, 10)
	require.NoError(t, err)

	p, ok := c.GetPost(context.Background(), "tok", "1")
	assert.False(t, ok)
	assert.Nil(t, p)
	assert.Zero(t, c.Len())

	_, ok = c.GetPost(context.Background(), "tok", "1")
	assert.True(t, ok)
	fetcher.AssertNumberOfCalls(t, "GetPost", 2)
}

func TestCache_PrimeOverwrites(t *testing.T) {
	c, err := New(new(MockFetcher), 10)
	require.NoError(t, err)

	c.Put(domain.Post{ID: "1", Caption: "old"})
	c.PrimeFromList([]domain.Post{{ID: "1", Caption: "new"}})

	p, ok := c.Peek("1")
	require.True(t, ok)
	assert.Equal(t, "new", p.Caption)
}

func TestCache_EvictsAtCapacity(t *testing.T) {
	c, err := New(new(MockFetcher), 2)
	require.NoError(t, err)

	c.PrimeFromList([]domain.Post{{ID: "1"}, {ID: "2"}, {ID: "3"}})
	assert.Equal(t, 2, c.Len())
	_, ok := c.Peek("1")
	assert.False(t, ok)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "post:123", Key("123"))
}
