// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/debatestats/gateway/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, StmtHealthCheck).Scan(&n)
}

// Prepared statement names.
const (
	StmtHealthCheck   = "health_check"
	StmtDatasetList   = "dataset_list"
	StmtDatasetBySlug = "dataset_by_slug"
	StmtTeamProfile   = "api_team_profile"
	StmtTeamResults   = "api_team_results"
	StmtJudgeProfile  = "api_judge_profile"
	StmtJudgeRecord   = "api_judge_record"
	StmtFeedback      = "insert_feedback"
)

// Statements maps prepared statement names to SQL. Postgres functions
// return complete JSON documents that handlers pass through unchanged.
var Statements = map[string]string{
	// Health
	StmtHealthCheck: "SELECT 1",

	// Datasets
	StmtDatasetList:   "SELECT coalesce(json_agg(row_to_json(d) ORDER BY d.slug), '[]'::json) FROM " + config.DatasetsTable + " d",
	StmtDatasetBySlug: "SELECT row_to_json(d) FROM " + config.DatasetsTable + " d WHERE d.slug = $1",

	// Teams
	StmtTeamProfile: "SELECT api_team_profile($1)",
	StmtTeamResults: "SELECT api_team_results($1)",

	// Judges
	StmtJudgeProfile: "SELECT api_judge_profile($1)",
	StmtJudgeRecord:  "SELECT api_judge_record($1)",

	// Feedback
	StmtFeedback: "INSERT INTO " + config.FeedbackTable + " (id, page, message, email, created_at) VALUES ($1, $2, $3, NULLIF($4, ''), $5)",
}

func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	for name, sql := range Statements {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
