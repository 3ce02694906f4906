package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

// ContentHandler serves content item listing, lookup, stats, and deletion.
type ContentHandler struct {
	storage interfaces.StorageManager
	logger  arbor.ILogger
}

// NewContentHandler creates a new content handler
func NewContentHandler(storage interfaces.StorageManager, logger arbor.ILogger) *ContentHandler {
	return &ContentHandler{
		storage: storage,
		logger:  logger,
	}
}

// ListHandler handles GET /api/content requests
func (h *ContentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	opts := &interfaces.ContentListOptions{
		ClassroomID: r.URL.Query().Get("classroom_id"),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			opts.Limit = limit
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			opts.Offset = offset
		}
	}

	items, err := h.storage.ContentStorage().ListContentItems(opts)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list content items")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// StatsHandler handles GET /api/content/stats requests
func (h *ContentHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	total, err := h.storage.ContentStorage().CountContentItems()
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	statuses, err := h.storage.StatusStorage().ListStatuses()
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	byState := map[string]int{}
	for _, status := range statuses {
		byState[string(status.State)]++
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"total_items": total,
		"by_state":    byState,
	})
}

// GetHandler handles GET /api/content/{id} requests
func (h *ContentHandler) GetHandler(w http.ResponseWriter, r *http.Request, contentID string) {
	item, err := h.storage.ContentStorage().GetContentItem(contentID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	status, err := h.storage.StatusStorage().GetStatus(contentID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"item":   item,
		"status": status,
	})
}

// DeleteHandler handles DELETE /api/content/{id} requests. The item, its
// status, and its analysis bundle are all removed.
func (h *ContentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request, contentID string) {
	if _, err := h.storage.ContentStorage().GetContentItem(contentID); err != nil {
		WriteServiceError(w, err)
		return
	}

	status, err := h.storage.StatusStorage().GetStatus(contentID)
	if err == nil && status.InFlight() {
		WriteError(w, http.StatusConflict, "content is being processed, try again later")
		return
	}

	if err := h.storage.AnalysisStorage().DeleteAnalysis(contentID); err != nil && !errors.Is(err, models.ErrNotProcessed) {
		h.logger.Warn().Err(err).Str("content_id", contentID).Msg("Failed to delete analysis bundle")
	}
	if err := h.storage.StatusStorage().DeleteStatus(contentID); err != nil {
		h.logger.Warn().Err(err).Str("content_id", contentID).Msg("Failed to delete processing status")
	}
	if err := h.storage.ContentStorage().DeleteContentItem(contentID); err != nil {
		WriteServiceError(w, err)
		return
	}

	h.logger.Info().Str("content_id", contentID).Msg("Content item deleted")
	WriteSuccess(w, "content deleted")
}
