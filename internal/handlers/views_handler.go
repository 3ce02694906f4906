package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/services/views"
)

// ViewsHandler serves the derived-view endpoints over a completed analysis
// bundle: summaries, practice questions, key concepts, and related content.
type ViewsHandler struct {
	views  *views.Service
	logger arbor.ILogger
}

// NewViewsHandler creates a new derived-views handler
func NewViewsHandler(viewsSvc *views.Service, logger arbor.ILogger) *ViewsHandler {
	return &ViewsHandler{
		views:  viewsSvc,
		logger: logger,
	}
}

// SummaryHandler handles GET /api/content/{id}/summary?type= requests.
// The type defaults to "short".
func (h *ViewsHandler) SummaryHandler(w http.ResponseWriter, r *http.Request, contentID string) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	summaryType := r.URL.Query().Get("type")
	switch summaryType {
	case "":
		summaryType = views.SummaryTypeShort
	case views.SummaryTypeShort, views.SummaryTypeBullets, views.SummaryTypeDetailed:
	default:
		WriteError(w, http.StatusBadRequest, "type must be short, bullets, or detailed")
		return
	}

	summary, err := h.views.GenerateSummary(contentID, summaryType)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, summary)
}

// QuestionsHandler handles POST /api/content/{id}/questions requests.
func (h *ViewsHandler) QuestionsHandler(w http.ResponseWriter, r *http.Request, contentID string) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	opts := &views.QuestionOptions{Count: 5}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(opts); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	questions, err := h.views.GeneratePracticeQuestions(contentID, opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
		"count":     len(questions),
	})
}

// ConceptsHandler handles GET /api/content/{id}/concepts requests.
func (h *ViewsHandler) ConceptsHandler(w http.ResponseWriter, r *http.Request, contentID string) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	concepts, err := h.views.ExtractKeyConcepts(contentID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"concepts": concepts,
		"count":    len(concepts),
	})
}

// RelatedHandler handles GET /api/content/{id}/related requests.
func (h *ViewsHandler) RelatedHandler(w http.ResponseWriter, r *http.Request, contentID string) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	opts := &views.RelatedOptions{
		ClassroomID:   r.URL.Query().Get("classroom_id"),
		Limit:         5,
		MinSimilarity: 0.5,
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			opts.Limit = limit
		}
	}
	if simStr := r.URL.Query().Get("min_similarity"); simStr != "" {
		sim, err := strconv.ParseFloat(simStr, 64)
		if err != nil || sim < 0 || sim > 1 {
			WriteError(w, http.StatusBadRequest, "min_similarity must be between 0 and 1")
			return
		}
		opts.MinSimilarity = sim
	}

	related, err := h.views.FindRelatedContent(contentID, opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"related": related,
		"count":   len(related),
	})
}
