// Package cache provides TTL caches with ETag support for JSON passthrough
// and rendered table responses.
package cache

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"
	"sync"
	"time"
)

// TTL constants per response family.
const (
	TTLDatasets = 1 * time.Hour
	TTLProfile  = 24 * time.Hour
	TTLResults  = 1 * time.Hour
	TTLTables   = 10 * time.Minute
	TTLFeatures = 5 * time.Minute
)

// Key prefixes shared by handlers and the invalidation listener.
const (
	PrefixDataset = "dataset:"
	PrefixTeam    = "team:"
	PrefixJudge   = "judge:"
	PrefixTable   = "table:"
)

// TeamKey is the cache key of a team resource. Every key for a team shares
// the prefix TeamKey(id, "").
func TeamKey(id, resource string) string {
	return PrefixTeam + id + ":" + resource
}

// JudgeKey is the cache key of a judge resource.
func JudgeKey(id, resource string) string {
	return PrefixJudge + id + ":" + resource
}

// TableKey is the cache key of a rendered table over the resource key.
func TableKey(key string) string {
	return PrefixTable + key
}

// Store is a TTL cache keyed by string. Set returns the ETag of the stored
// data.
type Store interface {
	Get(ctx context.Context, key string) (data []byte, etag string, ok bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) string
	InvalidatePrefix(ctx context.Context, prefix string) (int, error)
	Stats(ctx context.Context) map[string]interface{}
}

type entry struct {
	data      []byte
	etag      string
	expiresAt time.Time
}

// Cache is a thread-safe in-memory TTL cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	enabled bool
	now     func() time.Time

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// New creates a new cache. Pass enabled=false to create a no-op cache.
// Enabled caches run an eviction loop until Close.
func New(enabled bool) *Cache {
	return newCache(enabled, 5*time.Minute)
}

func newCache(enabled bool, every time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		enabled: enabled,
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if enabled {
		go c.evictLoop(every)
	} else {
		close(c.done)
	}
	return c
}

// Get retrieves a cached value. Returns data, etag, and whether the entry was found.
func (c *Cache) Get(_ context.Context, key string) (data []byte, etag string, ok bool) {
	if !c.enabled {
		return nil, "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, exists := c.entries[key]
	if !exists || c.now().After(e.expiresAt) {
		return nil, "", false
	}
	return e.data, e.etag, true
}

// Set stores a value with a TTL.
func (c *Cache) Set(_ context.Context, key string, data []byte, ttl time.Duration) string {
	etag := ComputeETag(data)
	if !c.enabled {
		return etag
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		data:      data,
		etag:      etag,
		expiresAt: c.now().Add(ttl),
	}
	return etag
}

// InvalidatePrefix drops every entry whose key starts with prefix.
func (c *Cache) InvalidatePrefix(_ context.Context, prefix string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			n++
		}
	}
	return n, nil
}

// Stats returns cache statistics.
func (c *Cache) Stats(_ context.Context) map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	active := 0
	now := c.now()
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			active++
		}
	}
	return map[string]interface{}{
		"backend":      "memory",
		"enabled":      c.enabled,
		"total_keys":   len(c.entries),
		"active_keys":  active,
		"expired_keys": len(c.entries) - active,
	}
}

// Close stops the eviction loop and waits for it to exit.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
	<-c.done
}

// evictLoop periodically removes expired entries.
func (c *Cache) evictLoop(every time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.Evict()
		}
	}
}

// Evict removes expired entries and returns how many were dropped.
func (c *Cache) Evict() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	n := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			n++
		}
	}
	return n
}

// ComputeETag generates a weak ETag from response data using MD5.
func ComputeETag(data []byte) string {
	hash := md5.Sum(data)
	return fmt.Sprintf(`W/"%x"`, hash[:8])
}

// CheckETagMatch checks if If-None-Match header matches the current ETag.
func CheckETagMatch(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		if strings.TrimSpace(candidate) == etag {
			return true
		}
	}
	return false
}
