package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), "", mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return New(client, ttl), mr
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, 0)

	_, ok, err := s.Get(ctx, "session:x:orders")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "session:x:orders", `[{"id":1}]`))
	v, ok, err := s.Get(ctx, "session:x:orders")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, v)
}

func TestStoreExpiresIdleKeys(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, time.Minute)

	require.NoError(t, s.Set(ctx, "k", "v"))
	mr.FastForward(45 * time.Second)

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok, "key expired before its ttl")

	// the read above pushed expiry out by another minute
	mr.FastForward(45 * time.Second)
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConnectRejectsBadURL(t *testing.T) {
	_, err := Connect(context.Background(), "://nope", "")
	assert.ErrorContains(t, err, "parsing redis url")
}
