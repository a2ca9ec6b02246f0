package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/debatestats/gateway/internal/cache"
	"github.com/debatestats/gateway/internal/config"
)

// Execer is the subset of pgxpool.Pool used for maintenance statements.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RefreshMaterializedViews refreshes the result views read by the team and
// judge endpoints. Uses CONCURRENTLY so reads are not blocked during refresh.
func RefreshMaterializedViews(ctx context.Context, db Execer, logger *slog.Logger) error {
	for _, v := range config.MaterializedViews {
		start := time.Now()
		_, err := db.Exec(ctx, fmt.Sprintf("REFRESH MATERIALIZED VIEW CONCURRENTLY %s", v))
		dur := time.Since(start).Round(time.Millisecond)

		if err != nil {
			logger.Warn("Failed to refresh materialized view",
				"view", v, "duration", dur, "error", err)
			return fmt.Errorf("refresh %s: %w", v, err)
		}
		logger.Info("Refreshed materialized view", "view", v, "duration", dur)
	}
	return nil
}

// Refresh refreshes the views and drops cached responses built from them.
// A nil store skips invalidation.
func Refresh(ctx context.Context, db Execer, store cache.Store, logger *slog.Logger) error {
	if err := RefreshMaterializedViews(ctx, db, logger); err != nil {
		return err
	}
	if store == nil {
		return nil
	}
	removed := 0
	for _, prefix := range []string{cache.PrefixTeam, cache.PrefixJudge, cache.PrefixTable} {
		n, err := store.InvalidatePrefix(ctx, prefix)
		if err != nil {
			return fmt.Errorf("invalidate %q: %w", prefix, err)
		}
		removed += n
	}
	logger.Info("Invalidated cached results after refresh", "count", removed)
	return nil
}
