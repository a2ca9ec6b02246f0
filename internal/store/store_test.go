package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debatestats/gateway/internal/db"
	"github.com/debatestats/gateway/internal/debate"
)

type fakeRow struct {
	raw []byte
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	switch d := dest[0].(type) {
	case *[]byte:
		*d = r.raw
	case *int:
		*d = 1
	}
	return nil
}

type fakeQuerier struct {
	rows  map[string]fakeRow
	calls []string
	args  [][]any
	err   error
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.calls = append(q.calls, sql)
	q.args = append(q.args, args)
	if row, ok := q.rows[sql]; ok {
		return row
	}
	return fakeRow{err: pgx.ErrNoRows}
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.calls = append(q.calls, sql)
	q.args = append(q.args, args)
	return pgconn.NewCommandTag("INSERT 0 1"), q.err
}

func TestDocumentPassthrough(t *testing.T) {
	q := &fakeQuerier{rows: map[string]fakeRow{
		db.StmtTeamProfile: {raw: []byte(`{"id":"t1"}`)},
	}}
	src := NewPGSource(q)

	raw, err := src.TeamProfile(context.Background(), "t1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"t1"}`, string(raw))
	assert.Equal(t, []any{"t1"}, q.args[0])
}

func TestDocumentNotFound(t *testing.T) {
	q := &fakeQuerier{rows: map[string]fakeRow{
		db.StmtJudgeProfile: {raw: nil},
		db.StmtDatasetBySlug: {raw: []byte("null")},
	}}
	src := NewPGSource(q)

	_, err := src.JudgeProfile(context.Background(), "j1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = src.Dataset(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = src.TeamResults(context.Background(), "t1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDocumentQueryError(t *testing.T) {
	boom := errors.New("boom")
	q := &fakeQuerier{rows: map[string]fakeRow{db.StmtDatasetList: {err: boom}}}

	_, err := NewPGSource(q).Datasets(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestSaveFeedback(t *testing.T) {
	q := &fakeQuerier{}
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	err := NewPGSource(q).SaveFeedback(context.Background(), debate.Feedback{
		ID: "f1", Page: "/teams/t1", Message: "typo", CreatedAt: at,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{db.StmtFeedback}, q.calls)
	assert.Equal(t, []any{"f1", "/teams/t1", "typo", "", at}, q.args[0])

	q.err = errors.New("down")
	assert.Error(t, NewPGSource(q).SaveFeedback(context.Background(), debate.Feedback{ID: "f2"}))
}

func TestTypedHelpers(t *testing.T) {
	q := &fakeQuerier{rows: map[string]fakeRow{
		db.StmtTeamResults: {raw: []byte(`[{"id":"r1","tournament":{"name":"Emory","season":2023}}]`)},
		db.StmtJudgeRecord: {raw: []byte(`{"id":"j1","rounds":[{"id":"a","side":"Aff","outcome":"W","result":{"team":{"id":"t1"}}}]}`)},
	}}
	src := NewPGSource(q)

	results, err := TeamResults(context.Background(), src, "t1")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Emory", results[0].Tournament.Name)

	rec, err := JudgeRecord(context.Background(), src, "j1")
	require.NoError(t, err)
	require.Len(t, rec.Rounds, 1)
	assert.Equal(t, "t1", rec.Rounds[0].Result.Team.ID)
}

func TestPing(t *testing.T) {
	q := &fakeQuerier{rows: map[string]fakeRow{db.StmtHealthCheck: {}}}
	assert.NoError(t, NewPGSource(q).Ping(context.Background()))
	assert.Error(t, NewPGSource(&fakeQuerier{}).Ping(context.Background()))
}
