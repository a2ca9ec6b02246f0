package handler

import (
	"context"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"github.com/debatestats/gateway/internal/api/respond"
	"github.com/debatestats/gateway/internal/cache"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)

// ListDatasets returns every published dataset.
// @Summary List datasets
// @Description Returns the dataset catalogue as raw JSON from Postgres.
// @Tags datasets
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Router /dataset [get]
func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, r, cache.PrefixDataset+"list", cache.TTLDatasets, "datasets", h.src.Datasets)
}

// GetDataset returns one dataset by slug.
// @Summary Get dataset
// @Tags datasets
// @Produce json
// @Param slug path string true "Dataset slug"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /dataset/{slug} [get]
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !slugPattern.MatchString(slug) {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_SLUG", "slug must be lowercase letters, digits and dashes")
		return
	}
	h.passthrough(w, r, cache.PrefixDataset+"slug:"+slug, cache.TTLDatasets, "dataset",
		func(ctx context.Context) ([]byte, error) { return h.src.Dataset(ctx, slug) })
}

// GetTeam returns a team profile.
// @Summary Get team profile
// @Description Returns a team profile as raw JSON from the api_team_profile function.
// @Tags teams
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /team/{teamID} [get]
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "teamID")
	if !ok {
		return
	}
	h.passthrough(w, r, cache.TeamKey(id, "profile"), cache.TTLProfile, "team",
		func(ctx context.Context) ([]byte, error) { return h.src.TeamProfile(ctx, id) })
}

// GetTeamResults returns a team's tournament results.
// @Summary Get team results
// @Tags teams
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /team/{teamID}/results [get]
func (h *Handler) GetTeamResults(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "teamID")
	if !ok {
		return
	}
	h.passthrough(w, r, cache.TeamKey(id, "results"), cache.TTLResults, "team results",
		func(ctx context.Context) ([]byte, error) { return h.src.TeamResults(ctx, id) })
}

// GetJudge returns a judge profile.
// @Summary Get judge profile
// @Tags judges
// @Produce json
// @Param judgeID path string true "Judge ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /judge/{judgeID} [get]
func (h *Handler) GetJudge(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "judgeID")
	if !ok {
		return
	}
	h.passthrough(w, r, cache.JudgeKey(id, "profile"), cache.TTLProfile, "judge",
		func(ctx context.Context) ([]byte, error) { return h.src.JudgeProfile(ctx, id) })
}

// GetJudgeRecord returns a judge's adjudication record.
// @Summary Get judge record
// @Tags judges
// @Produce json
// @Param judgeID path string true "Judge ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /judge/{judgeID}/record [get]
func (h *Handler) GetJudgeRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "judgeID")
	if !ok {
		return
	}
	h.passthrough(w, r, cache.JudgeKey(id, "record"), cache.TTLResults, "judge record",
		func(ctx context.Context) ([]byte, error) { return h.src.JudgeRecord(ctx, id) })
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, param string) (string, bool) {
	id := chi.URLParam(r, param)
	if !validID(id) {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "ID must be 1-64 letters, digits, dashes or underscores")
		return "", false
	}
	return id, true
}
