package maintenance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/debatestats/gateway/internal/cache"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeExec struct {
	mu    sync.Mutex
	stmts []string
	err   error
}

func (f *fakeExec) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stmts = append(f.stmts, sql)
	return pgconn.NewCommandTag("REFRESH MATERIALIZED VIEW"), f.err
}

func (f *fakeExec) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stmts)
}

func TestRefreshMaterializedViews(t *testing.T) {
	db := &fakeExec{}
	require.NoError(t, RefreshMaterializedViews(context.Background(), db, discard()))
	assert.Equal(t, []string{
		"REFRESH MATERIALIZED VIEW CONCURRENTLY mv_team_results",
		"REFRESH MATERIALIZED VIEW CONCURRENTLY mv_judge_records",
	}, db.stmts)
}

func TestRefreshStopsOnError(t *testing.T) {
	db := &fakeExec{err: errors.New("lock timeout")}
	c := cache.New(true)
	defer c.Close()
	c.Set(context.Background(), cache.TeamKey("t1", "profile"), []byte("{}"), time.Minute)

	err := Refresh(context.Background(), db, c, discard())
	assert.ErrorIs(t, err, db.err)
	assert.Len(t, db.stmts, 1)
	_, _, ok := c.Get(context.Background(), cache.TeamKey("t1", "profile"))
	assert.True(t, ok, "cache kept when refresh fails")
}

func TestRefreshInvalidatesResults(t *testing.T) {
	ctx := context.Background()
	c := cache.New(true)
	defer c.Close()
	c.Set(ctx, cache.TeamKey("t1", "profile"), []byte("{}"), time.Minute)
	c.Set(ctx, cache.TableKey(cache.JudgeKey("j1", "record")), []byte("{}"), time.Minute)
	c.Set(ctx, "dataset:list", []byte("[]"), time.Minute)

	require.NoError(t, Refresh(ctx, &fakeExec{}, c, discard()))
	assert.Equal(t, 1, c.Stats(ctx)["total_keys"])
}

func TestStartRunsTasksUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	db := &fakeExec{}
	c := cache.New(true)
	defer c.Close()

	done := make(chan struct{})
	go func() {
		Start(ctx, db, c, Config{RefreshInterval: 5 * time.Millisecond, EvictInterval: 5 * time.Millisecond}, discard())
		close(done)
	}()

	require.Eventually(t, func() bool { return db.count() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
