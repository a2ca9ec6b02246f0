package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server when TEST_REDIS_URL is set.
func TestRedisStore(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	s, err := NewRedis(ctx, url)
	require.NoError(t, err)
	defer s.Close()
	s.ns = "debatestats-test:"

	etag := s.Set(ctx, "team:t1", []byte(`{"id":"t1"}`), time.Minute)
	data, got, ok := s.Get(ctx, "team:t1")
	require.True(t, ok)
	assert.Equal(t, etag, got)
	assert.Equal(t, `{"id":"t1"}`, string(data))

	s.Set(ctx, "team:t1:results", []byte(`[]`), time.Minute)
	n, err := s.InvalidatePrefix(ctx, "team:t1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, _, ok = s.Get(ctx, "team:t1")
	assert.False(t, ok)
	assert.Equal(t, "redis", s.Stats(ctx)["backend"])
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "not-a-url")
	assert.Error(t, err)
}
