// Command tables renders debate result tables in the terminal.
//
// Usage:
//
//	debatestats-tables career t123
//	debatestats-tables tournaments t123 --sort date --dir desc --expand r9
//	debatestats-tables judge j42 --interactive
//	debatestats-tables refresh
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/debatestats/gateway/internal/cache"
	"github.com/debatestats/gateway/internal/config"
	"github.com/debatestats/gateway/internal/db"
	"github.com/debatestats/gateway/internal/debate"
	"github.com/debatestats/gateway/internal/maintenance"
	"github.com/debatestats/gateway/internal/render"
	"github.com/debatestats/gateway/internal/store"
	"github.com/debatestats/gateway/internal/table"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// viewFlags are the presentation flags shared by every table command.
type viewFlags struct {
	tier        string
	format      string
	sort        string
	dir         string
	expand      string
	page        int
	interactive bool
}

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	if err := newRootCmd(nil).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. A nil src connects to Postgres.
func newRootCmd(src store.Source) *cobra.Command {
	var vf viewFlags
	root := &cobra.Command{
		Use:          "debatestats-tables",
		Short:        "Render debate result tables in the terminal",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&vf.tier, "tier", "", "responsive tier: core, sm, md, lg (default from terminal width)")
	pf.StringVar(&vf.format, "format", "text", "output format: text, html, json, csv")
	pf.StringVar(&vf.sort, "sort", "", "column key to sort by")
	pf.StringVar(&vf.dir, "dir", "asc", "sort direction: asc, desc")
	pf.StringVar(&vf.expand, "expand", "", "comma separated row keys to expand")
	pf.IntVar(&vf.page, "page", 0, "zero-based page")
	pf.BoolVarP(&vf.interactive, "interactive", "i", false, "read sort/expand/click commands from stdin")

	root.AddCommand(careerCmd(&vf, src))
	root.AddCommand(tournamentsCmd(&vf, src))
	root.AddCommand(judgeCmd(&vf, src))
	root.AddCommand(refreshCmd())
	return root
}

// --------------------------------------------------------------------------
// table commands
// --------------------------------------------------------------------------

func careerCmd(vf *viewFlags, src store.Source) *cobra.Command {
	return &cobra.Command{
		Use:   "career <teamID>",
		Short: "Per-season summary of a team's results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSource(src, func(ctx context.Context, src store.Source) error {
				results, err := store.TeamResults(ctx, src, args[0])
				if err != nil {
					return fmt.Errorf("load results for %s: %w", args[0], err)
				}
				t, err := debate.CareerSummaryTable(results)
				if err != nil {
					return err
				}
				return show(cmd, vf, t)
			})
		},
	}
}

func tournamentsCmd(vf *viewFlags, src store.Source) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "tournaments <teamID>",
		Short: "A team's tournament history with expandable speaker results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSource(src, func(ctx context.Context, src store.Source) error {
				results, err := store.TeamResults(ctx, src, args[0])
				if err != nil {
					return fmt.Errorf("load results for %s: %w", args[0], err)
				}
				build := debate.TournamentListTable
				if plain {
					build = debate.PlainTournamentListTable
				}
				t, err := build(results)
				if err != nil {
					return err
				}
				return show(cmd, vf, t)
			})
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "list tournaments without speaker drill-down")
	return cmd
}

func judgeCmd(vf *viewFlags, src store.Source) *cobra.Command {
	return &cobra.Command{
		Use:   "judge <judgeID>",
		Short: "Teams a judge has adjudicated; click a row to open the team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSource(src, func(ctx context.Context, src store.Source) error {
				record, err := store.JudgeRecord(ctx, src, args[0])
				if err != nil {
					return fmt.Errorf("load record for %s: %w", args[0], err)
				}
				out := cmd.OutOrStdout()
				nav := debate.NavigatorFunc(func(path string, query url.Values) {
					target := path
					if len(query) > 0 {
						target += "?" + query.Encode()
					}
					fmt.Fprintf(out, "open %s\n", target)
				})
				t, err := debate.JudgeRecordTable(record, url.Values{"id": {args[0]}}, nav)
				if err != nil {
					return err
				}
				return show(cmd, vf, t)
			})
		},
	}
}

// show applies the view flags to t and renders it once, or starts an
// interactive session.
func show[T any](cmd *cobra.Command, vf *viewFlags, t *table.Table[T]) error {
	q := url.Values{}
	if vf.sort != "" {
		q.Set(render.ParamSort, vf.sort)
		q.Set(render.ParamDir, vf.dir)
	}
	q.Set(render.ParamExpand, vf.expand)
	q.Set(render.ParamPage, fmt.Sprint(vf.page))
	state, err := render.ParseState(q)
	if err != nil {
		return err
	}
	if err := render.Apply(t, state); err != nil {
		return err
	}

	tier, err := resolveTier(vf.tier, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	s := &session[T]{t: t, tier: tier, format: vf.format, out: cmd.OutOrStdout()}
	if vf.interactive {
		return s.run(cmd.InOrStdin())
	}
	return s.render()
}

// resolveTier uses the explicit flag, then the terminal width, then lg.
func resolveTier(flag string, out io.Writer) (table.Tier, error) {
	if flag != "" {
		return table.ParseTier(flag)
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
			return table.TierForColumns(cols), nil
		}
	}
	return table.TierLG, nil
}

// --------------------------------------------------------------------------
// refresh command
// --------------------------------------------------------------------------

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh result materialized views and drop cached responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				// Only a shared cache outlives this process.
				var shared cache.Store
				if cfg.CacheEnabled && cfg.RedisURL != "" {
					rs, err := cache.NewRedis(ctx, cfg.RedisURL)
					if err != nil {
						return err
					}
					defer rs.Close()
					shared = rs
				}
				return maintenance.Refresh(ctx, pool, shared, logger)
			})
		},
	}
}

// --------------------------------------------------------------------------
// helpers
// --------------------------------------------------------------------------

func withSource(src store.Source, fn func(ctx context.Context, src store.Source) error) error {
	if src != nil {
		return fn(context.Background(), src)
	}
	return runDB(func(ctx context.Context, _ *config.Config, pool *db.Pool) error {
		return fn(ctx, store.NewPGSource(pool))
	})
}

func runDB(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
