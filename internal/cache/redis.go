package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	fieldData = "data"
	fieldETag = "etag"
)

// RedisStore is a Store shared between gateway replicas. Each key is a hash
// holding the payload and its ETag, expired by Redis.
type RedisStore struct {
	client redis.UniversalClient
	ns     string
}

// NewRedis connects to the server at url and verifies it with PING.
func NewRedis(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStore(client, "debatestats:"), nil
}

// NewRedisStore wraps an existing client. Keys are namespaced with ns.
func NewRedisStore(client redis.UniversalClient, ns string) *RedisStore {
	return &RedisStore{client: client, ns: ns}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, string, bool) {
	vals, err := s.client.HMGet(ctx, s.ns+key, fieldData, fieldETag).Result()
	if err != nil || len(vals) != 2 || vals[0] == nil || vals[1] == nil {
		return nil, "", false
	}
	data, ok1 := vals[0].(string)
	etag, ok2 := vals[1].(string)
	if !ok1 || !ok2 {
		return nil, "", false
	}
	return []byte(data), etag, true
}

// Set stores data under key. Write failures are not reported: the response
// is still served, just uncached.
func (s *RedisStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) string {
	etag := ComputeETag(data)
	_, _ = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, s.ns+key, fieldData, data, fieldETag, etag)
		p.Expire(ctx, s.ns+key, ttl)
		return nil
	})
	return etag
}

func (s *RedisStore) InvalidatePrefix(ctx context.Context, prefix string) (int, error) {
	iter := s.client.Scan(ctx, 0, s.ns+prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("scan %q: %w", prefix, err)
	}
	if len(keys) == 0 {
		return 0, nil
	}
	n, err := s.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("delete %d keys: %w", len(keys), err)
	}
	return int(n), nil
}

func (s *RedisStore) Stats(ctx context.Context) map[string]interface{} {
	stats := map[string]interface{}{
		"backend": "redis",
		"enabled": true,
	}
	if err := s.client.Ping(ctx).Err(); err != nil {
		stats["error"] = err.Error()
		return stats
	}
	if size, err := s.client.DBSize(ctx).Result(); err == nil {
		stats["total_keys"] = size
	}
	return stats
}

// Close releases the client connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
