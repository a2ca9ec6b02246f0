// Package store reads debate data from Postgres. Postgres functions return
// complete JSON documents; Source hands back the raw bytes so handlers can
// pass them through, and the typed helpers decode them where a table needs
// records.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/debatestats/gateway/internal/db"
	"github.com/debatestats/gateway/internal/debate"
)

// ErrNotFound is returned when a lookup yields no document.
var ErrNotFound = errors.New("not found")

// Source is the data access surface used by the API and the CLI.
type Source interface {
	Datasets(ctx context.Context) ([]byte, error)
	Dataset(ctx context.Context, slug string) ([]byte, error)
	TeamProfile(ctx context.Context, teamID string) ([]byte, error)
	TeamResults(ctx context.Context, teamID string) ([]byte, error)
	JudgeProfile(ctx context.Context, judgeID string) ([]byte, error)
	JudgeRecord(ctx context.Context, judgeID string) ([]byte, error)
	SaveFeedback(ctx context.Context, fb debate.Feedback) error
	Ping(ctx context.Context) error
}

// Querier is the subset of pgxpool.Pool used by PGSource.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PGSource implements Source with prepared statements.
type PGSource struct {
	q Querier
}

// NewPGSource returns a Source backed by q, usually a *db.Pool.
func NewPGSource(q Querier) *PGSource {
	return &PGSource{q: q}
}

func (s *PGSource) Datasets(ctx context.Context) ([]byte, error) {
	return s.document(ctx, db.StmtDatasetList)
}

func (s *PGSource) Dataset(ctx context.Context, slug string) ([]byte, error) {
	return s.document(ctx, db.StmtDatasetBySlug, slug)
}

func (s *PGSource) TeamProfile(ctx context.Context, teamID string) ([]byte, error) {
	return s.document(ctx, db.StmtTeamProfile, teamID)
}

func (s *PGSource) TeamResults(ctx context.Context, teamID string) ([]byte, error) {
	return s.document(ctx, db.StmtTeamResults, teamID)
}

func (s *PGSource) JudgeProfile(ctx context.Context, judgeID string) ([]byte, error) {
	return s.document(ctx, db.StmtJudgeProfile, judgeID)
}

func (s *PGSource) JudgeRecord(ctx context.Context, judgeID string) ([]byte, error) {
	return s.document(ctx, db.StmtJudgeRecord, judgeID)
}

// SaveFeedback inserts a feedback message.
func (s *PGSource) SaveFeedback(ctx context.Context, fb debate.Feedback) error {
	_, err := s.q.Exec(ctx, db.StmtFeedback, fb.ID, fb.Page, fb.Message, fb.Email, fb.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// Ping runs the health check statement.
func (s *PGSource) Ping(ctx context.Context) error {
	var n int
	if err := s.q.QueryRow(ctx, db.StmtHealthCheck).Scan(&n); err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	return nil
}

// document scans a single JSON column. A missing row or a NULL document is
// ErrNotFound.
func (s *PGSource) document(ctx context.Context, stmt string, args ...any) ([]byte, error) {
	var raw []byte
	err := s.q.QueryRow(ctx, stmt, args...).Scan(&raw)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("query %s: %w", stmt, err)
	case raw == nil || string(raw) == "null":
		return nil, ErrNotFound
	}
	return raw, nil
}

// TeamResults loads and decodes a team's tournament results.
func TeamResults(ctx context.Context, src Source, teamID string) ([]debate.TournamentResult, error) {
	raw, err := src.TeamResults(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return debate.DecodeResults(raw)
}

// JudgeRecord loads and decodes a judge's record.
func JudgeRecord(ctx context.Context, src Source, judgeID string) (*debate.JudgeRecord, error) {
	raw, err := src.JudgeRecord(ctx, judgeID)
	if err != nil {
		return nil, err
	}
	return debate.DecodeJudgeRecord(raw)
}
