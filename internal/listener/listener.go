// Package listener provides a Postgres LISTEN/NOTIFY consumer that keeps the
// response cache fresh. It holds a dedicated pgx connection (not from the
// pool) listening on the `dataset_updated` channel.
//
// The ingestion job fires pg_notify after loading new results; each event
// names the dataset and optionally the team or judge whose data changed, and
// the matching cache prefixes are dropped.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/debatestats/gateway/internal/cache"
	"github.com/debatestats/gateway/internal/config"
)

const (
	channel          = config.DatasetUpdatedTopic
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// UpdateEvent is the JSON payload from pg_notify('dataset_updated', ...).
type UpdateEvent struct {
	Dataset   string `json:"dataset"`
	TeamID    string `json:"team_id,omitempty"`
	JudgeID   string `json:"judge_id,omitempty"`
	Timestamp int64  `json:"ts,omitempty"`
}

// Prefixes returns the cache prefixes made stale by the event. An event
// without a team or judge invalidates every team and judge entry.
func (e UpdateEvent) Prefixes() []string {
	prefixes := []string{cache.PrefixDataset}
	if e.TeamID == "" && e.JudgeID == "" {
		return append(prefixes, cache.PrefixTeam, cache.PrefixJudge, cache.PrefixTable)
	}
	if e.TeamID != "" {
		team := cache.TeamKey(e.TeamID, "")
		prefixes = append(prefixes, team, cache.TableKey(team))
	}
	if e.JudgeID != "" {
		judge := cache.JudgeKey(e.JudgeID, "")
		prefixes = append(prefixes, judge, cache.TableKey(judge))
	}
	return prefixes
}

// Start opens a dedicated connection and listens on the dataset_updated
// channel. It reconnects automatically on connection loss. Blocks until ctx
// is cancelled. Intended to be called with `go`.
func Start(ctx context.Context, dbURL string, store cache.Store, logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, store, logger)
		if ctx.Err() != nil {
			logger.Info("Dataset listener stopped (context cancelled)")
			return
		}

		logger.Error("Dataset listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, store cache.Store, logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+channel)
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", channel, err)
	}
	logger.Info("Dataset listener connected", "channel", channel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		Handle(ctx, store, notification.Payload, logger)
	}
}

// Handle parses one notification payload and drops the stale cache entries.
// It returns the number of entries removed.
func Handle(ctx context.Context, store cache.Store, payload string, logger *slog.Logger) int {
	var event UpdateEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		logger.Warn("Failed to parse dataset event",
			"payload", payload, "error", err)
		return 0
	}

	removed := 0
	for _, prefix := range event.Prefixes() {
		n, err := store.InvalidatePrefix(ctx, prefix)
		if err != nil {
			logger.Warn("Failed to invalidate cache prefix", "prefix", prefix, "error", err)
			continue
		}
		removed += n
	}

	logger.Info("Dataset update received",
		"dataset", event.Dataset,
		"team_id", event.TeamID,
		"judge_id", event.JudgeID,
		"invalidated", removed)
	return removed
}
