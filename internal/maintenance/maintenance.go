// Package maintenance runs periodic background tasks as Go tickers.
// All scheduled work is driven from the API process since it is already a
// persistent, long-running service.
package maintenance

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/debatestats/gateway/internal/cache"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	RefreshInterval time.Duration // Materialized view refresh + cache invalidation
	EvictInterval   time.Duration // Expired in-process cache entries
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		RefreshInterval: 15 * time.Minute,
		EvictInterval:   5 * time.Minute,
	}
}

// Evicter is implemented by caches that hold expired entries until swept.
type Evicter interface {
	Evict() int
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled and every task has returned. Intended to be called with `go`.
func Start(ctx context.Context, db Execer, store cache.Store, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"refresh", cfg.RefreshInterval,
		"evict", cfg.EvictInterval)

	var wg sync.WaitGroup

	// Refresh: rebuild result views, then drop stale cached responses
	if cfg.RefreshInterval > 0 && db != nil {
		t := time.NewTicker(cfg.RefreshInterval)
		defer t.Stop()
		wg.Add(1)
		go func() {
			defer wg.Done()
			runLoop(ctx, t.C, func() {
				if err := Refresh(ctx, db, store, logger); err != nil {
					logger.Warn("Refresh: failed", "error", err)
				}
			})
		}()
	}

	// Evict: sweep expired entries from the in-process cache
	if ev, ok := store.(Evicter); ok && cfg.EvictInterval > 0 {
		t := time.NewTicker(cfg.EvictInterval)
		defer t.Stop()
		wg.Add(1)
		go func() {
			defer wg.Done()
			runLoop(ctx, t.C, func() {
				if n := ev.Evict(); n > 0 {
					logger.Info("Evict: removed expired cache entries", "count", n)
				}
			})
		}()
	}

	<-ctx.Done()
	wg.Wait()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}
