package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/services/analyzer"
)

// AnalysisHandler serves the async processing endpoints: start a run and
// poll its status.
type AnalysisHandler struct {
	analyzer *analyzer.Service
	logger   arbor.ILogger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analyzerSvc *analyzer.Service, logger arbor.ILogger) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer: analyzerSvc,
		logger:   logger,
	}
}

// ProcessHandler handles POST /api/content/process requests. The run is
// asynchronous: a 202 response means the run was accepted, not that it
// succeeded. A run already in flight for the same content ID returns 409.
func (h *AnalysisHandler) ProcessHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req analyzer.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.SourceURL = strings.TrimSpace(req.SourceURL)
	if req.SourceURL == "" {
		WriteError(w, http.StatusBadRequest, "source_url is required")
		return
	}
	if req.Title == "" {
		WriteError(w, http.StatusBadRequest, "title is required")
		return
	}

	if req.ContentID == "" {
		req.ContentID = common.NewContentID()
	}

	if err := h.analyzer.StartProcessing(&req); err != nil {
		h.logger.Warn().Err(err).Str("content_id", req.ContentID).Msg("Failed to start analysis run")
		WriteServiceError(w, err)
		return
	}

	h.logger.Info().
		Str("content_id", req.ContentID).
		Str("source_url", req.SourceURL).
		Msg("Analysis run accepted")

	WriteStarted(w, req.ContentID)
}

// StatusHandler handles GET /api/content/status?content_id= requests. An
// unknown content ID reports state "none" rather than an error, so clients
// can poll before the first run.
func (h *AnalysisHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	contentID := r.URL.Query().Get("content_id")
	if contentID == "" {
		WriteError(w, http.StatusBadRequest, "content_id query parameter is required")
		return
	}

	status, err := h.analyzer.GetStatus(contentID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, status)
}
