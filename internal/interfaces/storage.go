package interfaces

import (
	"github.com/ternarybob/doceo/internal/models"
)

// ContentListOptions filters content item listings.
type ContentListOptions struct {
	ClassroomID string
	Limit       int
	Offset      int
}

// ContentStorage persists content item records.
type ContentStorage interface {
	SaveContentItem(item *models.ContentItem) error
	GetContentItem(id string) (*models.ContentItem, error)
	ListContentItems(opts *ContentListOptions) ([]*models.ContentItem, error)
	DeleteContentItem(id string) error
	CountContentItems() (int, error)
}

// StatusStorage persists per-item processing status records, keyed by
// content ID.
type StatusStorage interface {
	SaveStatus(status *models.ProcessingStatus) error
	// GetStatus returns the stored status, or a {state: none} record for an
	// unknown content ID rather than an error.
	GetStatus(contentID string) (*models.ProcessingStatus, error)
	ListStatuses() ([]*models.ProcessingStatus, error)
	DeleteStatus(contentID string) error
}

// AnalysisStorage persists analysis bundles, keyed by content ID. Saves are
// atomic wholesale replacements: a reader sees either the previous complete
// bundle or the new one, never a mix.
type AnalysisStorage interface {
	SaveAnalysis(analysis *models.ContentAnalysis) error
	// GetAnalysis returns models.ErrNotProcessed when no bundle exists.
	GetAnalysis(contentID string) (*models.ContentAnalysis, error)
	DeleteAnalysis(contentID string) error
}

// StorageManager provides access to all storage implementations
type StorageManager interface {
	ContentStorage() ContentStorage
	StatusStorage() StatusStorage
	AnalysisStorage() AnalysisStorage
	// RunGC reclaims value-log space. Safe to call while the store is in
	// use; intended for periodic maintenance.
	RunGC() error
	Close() error
}
