package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/debatestats/gateway/internal/api/respond"
	"github.com/debatestats/gateway/internal/cache"
	"github.com/debatestats/gateway/internal/debate"
	"github.com/debatestats/gateway/internal/feature"
	"github.com/debatestats/gateway/internal/render"
	"github.com/debatestats/gateway/internal/store"
	"github.com/debatestats/gateway/internal/table"
)

// stateParams are the query parameters owned by the table itself.
var stateParams = []string{
	render.ParamSort, render.ParamDir, render.ParamExpand, render.ParamClick, render.ParamPage,
}

// tableEndpoint describes one rendered table resource.
type tableEndpoint[T any] struct {
	// key prefixes every cache entry for the resource.
	key   string
	what  string
	build func(ctx context.Context, nav debate.Navigator) (*table.Table[T], error)
	// clickOptional renders the table instead of failing when its rows
	// have no click handler.
	clickOptional bool
}

// redirect records the navigation requested by a row click.
type redirect struct {
	target string
}

func (rd *redirect) Navigate(path string, query url.Values) {
	rd.target = path
	if len(query) > 0 {
		rd.target += "?" + query.Encode()
	}
}

// serveTable renders a table with the presentation state carried in the
// query string. A click parameter runs the row click handler and answers
// with a 303 redirect to the requested page.
func serveTable[T any](h *Handler, w http.ResponseWriter, r *http.Request, ep tableEndpoint[T]) {
	q := r.URL.Query()

	formatter, err := render.ByName(q.Get(render.ParamFormat), render.NewQueryLinks(r.URL))
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_FORMAT", "Unsupported format", err.Error())
		return
	}
	tier, err := render.ResolveTier(q, h.cfg.DefaultTier)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_TIER", "tier must be core, sm, md or lg; width must be a pixel count", err.Error())
		return
	}
	state, err := render.ParseState(q)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_STATE", "Invalid table state", err.Error())
		return
	}

	cacheKey := ep.key + "?" + q.Encode()
	if state.Click == "" {
		if data, etag, ok := h.cache.Get(r.Context(), cacheKey); ok {
			if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
				respond.WriteNotModified(w, etag)
				return
			}
			respond.WriteBody(w, formatter.ContentType(), data, etag, cache.TTLTables, true)
			return
		}
	}

	nav := &redirect{}
	t, err := ep.build(r.Context(), nav)
	if err != nil {
		if errors.Is(err, table.ErrConfig) {
			h.logger.Error("Table misconfigured", "table", ep.what, "error", err)
			respond.WriteErrorDetail(w, http.StatusInternalServerError, "TABLE_CONFIG", "Table is misconfigured", err.Error())
			return
		}
		h.dataError(w, err, ep.what)
		return
	}

	if err := render.Apply(t, state); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_SORT", "Column cannot be sorted", err.Error())
		return
	}

	if state.Click != "" {
		switch err := t.ClickRow(state.Click); {
		case errors.Is(err, table.ErrNoRowClick) && ep.clickOptional:
		case errors.Is(err, table.ErrNoRowClick):
			respond.WriteError(w, http.StatusBadRequest, "NOT_CLICKABLE", "Rows of this table are not clickable")
			return
		case errors.Is(err, table.ErrUnknownRow):
			respond.WriteError(w, http.StatusNotFound, "ROW_NOT_FOUND", "No row "+state.Click)
			return
		case err != nil:
			h.logger.Error("Row click failed", "table", ep.what, "error", err)
			respond.WriteError(w, http.StatusInternalServerError, "CLICK_FAILED", "Row click failed")
			return
		}
		if nav.target != "" {
			http.Redirect(w, r, nav.target, http.StatusSeeOther)
			return
		}
	}

	var buf bytes.Buffer
	if err := formatter.Format(t.View(tier), &buf); err != nil {
		h.logger.Error("Failed to render table", "table", ep.what, "format", formatter.Name(), "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "RENDER_FAILED", "Failed to render table")
		return
	}

	data := buf.Bytes()
	var etag string
	if state.Click == "" {
		etag = h.cache.Set(r.Context(), cacheKey, data, cache.TTLTables)
	} else {
		etag = cache.ComputeETag(data)
	}
	respond.WriteBody(w, formatter.ContentType(), data, etag, cache.TTLTables, false)
}

// CareerTable renders a team's per-season summary.
// @Summary Team career table
// @Description Per-season tournament counts with a totals row.
// @Tags tables
// @Produce html,json,plain,text/csv
// @Param teamID path string true "Team ID"
// @Param format query string false "Output format" Enums(html, json, text, csv)
// @Param tier query string false "Responsive tier" Enums(core, sm, md, lg)
// @Param width query int false "Viewport width in pixels"
// @Param sort query string false "Sorted column key"
// @Param dir query string false "Sort direction" Enums(asc, desc)
// @Param page query int false "Zero-based page"
// @Success 200 {string} string
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /tables/team/{teamID}/career [get]
func (h *Handler) CareerTable(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "teamID")
	if !ok {
		return
	}
	serveTable(h, w, r, tableEndpoint[debate.Season]{
		key:  cache.TableKey(cache.TeamKey(id, "career")),
		what: "team results",
		build: func(ctx context.Context, _ debate.Navigator) (*table.Table[debate.Season], error) {
			results, err := store.TeamResults(ctx, h.src, id)
			if err != nil {
				return nil, err
			}
			return debate.CareerSummaryTable(results)
		},
	})
}

// TournamentsTable renders a team's tournament history.
// @Summary Team tournament table
// @Description Tournament history; rows expand into speaker results when enabled.
// @Tags tables
// @Produce html,json,plain,text/csv
// @Param teamID path string true "Team ID"
// @Param format query string false "Output format" Enums(html, json, text, csv)
// @Param tier query string false "Responsive tier" Enums(core, sm, md, lg)
// @Param width query int false "Viewport width in pixels"
// @Param sort query string false "Sorted column key"
// @Param dir query string false "Sort direction" Enums(asc, desc)
// @Param expand query string false "Comma separated result IDs to expand"
// @Param page query int false "Zero-based page"
// @Success 200 {string} string
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /tables/team/{teamID}/tournaments [get]
func (h *Handler) TournamentsTable(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "teamID")
	if !ok {
		return
	}
	build := debate.PlainTournamentListTable
	if h.features.Enabled(feature.TournamentExpansion) {
		build = debate.TournamentListTable
	}
	serveTable(h, w, r, tableEndpoint[debate.TournamentResult]{
		key:  cache.TableKey(cache.TeamKey(id, "tournaments")),
		what: "team results",
		build: func(ctx context.Context, _ debate.Navigator) (*table.Table[debate.TournamentResult], error) {
			results, err := store.TeamResults(ctx, h.src, id)
			if err != nil {
				return nil, err
			}
			return build(results)
		},
	})
}

// JudgeRecordTable renders the teams a judge has adjudicated.
// @Summary Judge record table
// @Description Rounds judged; with click set, answers 303 to the team page.
// @Tags tables
// @Produce html,json,plain,text/csv
// @Param judgeID path string true "Judge ID"
// @Param format query string false "Output format" Enums(html, json, text, csv)
// @Param tier query string false "Responsive tier" Enums(core, sm, md, lg)
// @Param width query int false "Viewport width in pixels"
// @Param sort query string false "Sorted column key"
// @Param dir query string false "Sort direction" Enums(asc, desc)
// @Param click query string false "Round ID to open"
// @Success 200 {string} string
// @Success 303 {string} string
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /tables/judge/{judgeID}/record [get]
func (h *Handler) JudgeRecordTable(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "judgeID")
	if !ok {
		return
	}
	query := debate.OmitQuery(r.URL.Query(), stateParams...)
	navigable := h.features.Enabled(feature.JudgeNavigation)
	serveTable(h, w, r, tableEndpoint[debate.JudgeRound]{
		key:  cache.TableKey(cache.JudgeKey(id, "record")),
		what: "judge record",
		build: func(ctx context.Context, nav debate.Navigator) (*table.Table[debate.JudgeRound], error) {
			record, err := store.JudgeRecord(ctx, h.src, id)
			if err != nil {
				return nil, err
			}
			if !navigable {
				nav = nil
			}
			return debate.JudgeRecordTable(record, query, nav)
		},
		clickOptional: !navigable,
	})
}
