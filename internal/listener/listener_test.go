package listener

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/debatestats/gateway/internal/cache"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPrefixes(t *testing.T) {
	tests := []struct {
		name  string
		event UpdateEvent
		want  []string
	}{
		{
			name:  "whole dataset",
			event: UpdateEvent{Dataset: "hs-policy"},
			want:  []string{"dataset:", "team:", "judge:", "table:"},
		},
		{
			name:  "one team",
			event: UpdateEvent{Dataset: "hs-policy", TeamID: "t1"},
			want:  []string{"dataset:", "team:t1:", "table:team:t1:"},
		},
		{
			name:  "team and judge",
			event: UpdateEvent{TeamID: "t1", JudgeID: "j1"},
			want:  []string{"dataset:", "team:t1:", "table:team:t1:", "judge:j1:", "table:judge:j1:"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.Prefixes())
		})
	}
}

func TestHandle(t *testing.T) {
	c := cache.New(true)
	defer c.Close()
	ctx := context.Background()
	for _, key := range []string{
		"dataset:list",
		cache.TeamKey("t1", "profile"),
		cache.TeamKey("t10", "profile"),
		cache.TableKey(cache.TeamKey("t1", "career")) + "?format=json",
		cache.JudgeKey("j1", "record"),
	} {
		c.Set(ctx, key, []byte("{}"), time.Minute)
	}

	n := Handle(ctx, c, `{"dataset":"hs-policy","team_id":"t1"}`, discard())
	assert.Equal(t, 3, n)

	_, _, ok := c.Get(ctx, cache.TeamKey("t10", "profile"))
	assert.True(t, ok, "prefix match stops at the id separator")
	_, _, ok = c.Get(ctx, cache.JudgeKey("j1", "record"))
	assert.True(t, ok)
}

func TestHandleBadPayload(t *testing.T) {
	c := cache.New(true)
	defer c.Close()
	assert.Equal(t, 0, Handle(context.Background(), c, "not json", discard()))
}
