package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
)

// APIHandler serves system endpoints: health, version, and the API 404.
type APIHandler struct {
	storage interfaces.StorageManager
	llmSvc  interfaces.LLMService
	logger  arbor.ILogger
}

func NewAPIHandler(storage interfaces.StorageManager, llmSvc interfaces.LLMService, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		storage: storage,
		llmSvc:  llmSvc,
		logger:  logger,
	}
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version":    common.GetVersion(),
		"build":      common.GetBuild(),
		"git_commit": common.GetGitCommit(),
	})
}

// HealthHandler fans out to the storage and model dependencies and reports
// per-component status. Overall status is degraded if any component fails.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	components := map[string]string{
		"storage": "ok",
		"llm":     "ok",
	}
	healthy := true

	if _, err := h.storage.ContentStorage().CountContentItems(); err != nil {
		components["storage"] = err.Error()
		healthy = false
	}

	if err := h.llmSvc.HealthCheck(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("LLM health check failed")
		components["llm"] = err.Error()
		healthy = false
	}

	status := "ok"
	statusCode := http.StatusOK
	if !healthy {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	WriteJSON(w, statusCode, map[string]interface{}{
		"status":     status,
		"mode":       h.llmSvc.GetMode(),
		"components": components,
	})
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
