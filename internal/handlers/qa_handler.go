package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/ternarybob/doceo/internal/services/qa"
)

// QAHandler serves the grounded question-answering endpoint.
type QAHandler struct {
	qa     *qa.Service
	logger arbor.ILogger
}

// NewQAHandler creates a new Q&A handler
func NewQAHandler(qaSvc *qa.Service, logger arbor.ILogger) *QAHandler {
	return &QAHandler{
		qa:     qaSvc,
		logger: logger,
	}
}

type askRequest struct {
	Question string                    `json:"question"`
	History  []models.ConversationTurn `json:"history"`
}

// AskHandler handles POST /api/content/{id}/ask requests
func (h *QAHandler) AskHandler(w http.ResponseWriter, r *http.Request, contentID string) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" {
		WriteError(w, http.StatusBadRequest, "question is required")
		return
	}

	h.logger.Info().
		Str("content_id", contentID).
		Int("history_turns", len(req.History)).
		Msg("Answering content question")

	answer, err := h.qa.AskQuestion(r.Context(), contentID, req.Question, req.History)
	if err != nil {
		h.logger.Error().Err(err).Str("content_id", contentID).Msg("Failed to answer question")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, answer)
}
