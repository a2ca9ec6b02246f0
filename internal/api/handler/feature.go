package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/debatestats/gateway/internal/api/respond"
	"github.com/debatestats/gateway/internal/debate"
)

const (
	maxFeedbackBytes   = 16 << 10
	maxFeedbackMessage = 2000
)

// GetFeatures lists the gateway feature flags.
// @Summary List feature flags
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /feature [get]
func (h *Handler) GetFeatures(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"flags": h.features.List(),
	})
}

type feedbackRequest struct {
	Page    string `json:"page"`
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

// PostFeedback stores a visitor message.
// @Summary Submit feedback
// @Tags meta
// @Accept json
// @Produce json
// @Param body body feedbackRequest true "Feedback"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /feedback [post]
func (h *Handler) PostFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFeedbackBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.WriteError(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "Feedback body is too large")
			return
		}
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_BODY", "Body must be a JSON feedback object", err.Error())
		return
	}

	req.Page = strings.TrimSpace(req.Page)
	req.Message = strings.TrimSpace(req.Message)
	req.Email = strings.TrimSpace(req.Email)
	switch {
	case req.Page == "":
		respond.WriteError(w, http.StatusBadRequest, "MISSING_PAGE", "page is required")
		return
	case req.Message == "":
		respond.WriteError(w, http.StatusBadRequest, "MISSING_MESSAGE", "message is required")
		return
	case len(req.Message) > maxFeedbackMessage:
		respond.WriteError(w, http.StatusBadRequest, "MESSAGE_TOO_LONG", "message exceeds 2000 bytes")
		return
	case req.Email != "" && !strings.Contains(req.Email, "@"):
		respond.WriteError(w, http.StatusBadRequest, "INVALID_EMAIL", "email is not valid")
		return
	}

	fb := debate.Feedback{
		ID:        uuid.NewString(),
		Page:      req.Page,
		Message:   req.Message,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.src.SaveFeedback(r.Context(), fb); err != nil {
		h.logger.Error("Failed to save feedback", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "DB_ERROR", "Failed to save feedback")
		return
	}

	h.logger.Info("Feedback received", "id", fb.ID, "page", fb.Page)
	respond.WriteJSONObject(w, http.StatusCreated, map[string]interface{}{
		"id":        fb.ID,
		"createdAt": fb.CreatedAt.Format(time.RFC3339),
	})
}
