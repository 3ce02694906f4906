package badger

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// StatusStorage implements the StatusStorage interface for Badger
type StatusStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewStatusStorage creates a new StatusStorage instance
func NewStatusStorage(db *BadgerDB, logger arbor.ILogger) interfaces.StatusStorage {
	return &StatusStorage{
		db:     db,
		logger: logger,
	}
}

func (s *StatusStorage) SaveStatus(status *models.ProcessingStatus) error {
	if status.ContentID == "" {
		return fmt.Errorf("status content ID is required")
	}

	if status.UpdatedAt.IsZero() {
		status.UpdatedAt = time.Now()
	}

	if err := s.db.Store().Upsert(statusKey(status.ContentID), status); err != nil {
		return fmt.Errorf("failed to save processing status: %w", err)
	}
	return nil
}

// GetStatus returns the stored status for the content ID. Unknown IDs yield
// a {state: none} record rather than an error, matching the polling
// contract.
func (s *StatusStorage) GetStatus(contentID string) (*models.ProcessingStatus, error) {
	var status models.ProcessingStatus
	if err := s.db.Store().Get(statusKey(contentID), &status); err != nil {
		if err == badgerhold.ErrNotFound {
			return &models.ProcessingStatus{
				ContentID: contentID,
				State:     models.StateNone,
			}, nil
		}
		return nil, fmt.Errorf("failed to get processing status: %w", err)
	}
	return &status, nil
}

func (s *StatusStorage) ListStatuses() ([]*models.ProcessingStatus, error) {
	var statuses []models.ProcessingStatus
	if err := s.db.Store().Find(&statuses, nil); err != nil {
		return nil, fmt.Errorf("failed to list processing statuses: %w", err)
	}

	result := make([]*models.ProcessingStatus, len(statuses))
	for i := range statuses {
		result[i] = &statuses[i]
	}
	return result, nil
}

func (s *StatusStorage) DeleteStatus(contentID string) error {
	if err := s.db.Store().Delete(statusKey(contentID), &models.ProcessingStatus{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete processing status: %w", err)
	}
	return nil
}

func statusKey(contentID string) string {
	return "status:" + contentID
}
