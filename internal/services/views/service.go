package views

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

// Service implements the on-demand derived views over stored analysis
// bundles: summaries, practice question assembly, key concepts, and
// related-content lookup. Bundles are read-only here; the analyzer is the
// only writer.
type Service struct {
	storage interfaces.StorageManager
	logger  arbor.ILogger
}

// NewService creates a new derived-view service
func NewService(storage interfaces.StorageManager, logger arbor.ILogger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// completedAnalysis loads the bundle for a content item whose processing
// state is complete. Any other state fails with models.ErrNotProcessed,
// including an in-flight reprocessing run over an older bundle.
func (s *Service) completedAnalysis(contentID string) (*models.ContentAnalysis, error) {
	status, err := s.storage.StatusStorage().GetStatus(contentID)
	if err != nil {
		return nil, err
	}
	if status.State != models.StateComplete {
		return nil, models.ErrNotProcessed
	}

	return s.storage.AnalysisStorage().GetAnalysis(contentID)
}
