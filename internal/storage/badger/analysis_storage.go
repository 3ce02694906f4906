package badger

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// AnalysisStorage implements the AnalysisStorage interface for Badger
type AnalysisStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewAnalysisStorage creates a new AnalysisStorage instance
func NewAnalysisStorage(db *BadgerDB, logger arbor.ILogger) interfaces.AnalysisStorage {
	return &AnalysisStorage{
		db:     db,
		logger: logger,
	}
}

// SaveAnalysis wholesale-replaces the bundle for the content ID. Badger
// commits the upsert in a single transaction, so readers see either the
// previous complete bundle or the new one.
func (s *AnalysisStorage) SaveAnalysis(analysis *models.ContentAnalysis) error {
	if analysis.ContentID == "" {
		return fmt.Errorf("analysis content ID is required")
	}

	analysis.ProcessingVersion = models.ProcessingVersion
	if analysis.ProcessedAt.IsZero() {
		analysis.ProcessedAt = time.Now()
	}

	if err := s.db.Store().Upsert(analysisKey(analysis.ContentID), analysis); err != nil {
		return fmt.Errorf("failed to save analysis bundle: %w", err)
	}

	s.logger.Debug().
		Str("content_id", analysis.ContentID).
		Int("key_concepts", len(analysis.KeyConcepts)).
		Int("practice_questions", len(analysis.PracticeQuestions)).
		Int("embedding_dim", len(analysis.Embedding)).
		Msg("Analysis bundle saved")

	return nil
}

func (s *AnalysisStorage) GetAnalysis(contentID string) (*models.ContentAnalysis, error) {
	var analysis models.ContentAnalysis
	if err := s.db.Store().Get(analysisKey(contentID), &analysis); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, models.ErrNotProcessed
		}
		return nil, fmt.Errorf("failed to get analysis bundle: %w", err)
	}
	return &analysis, nil
}

func (s *AnalysisStorage) DeleteAnalysis(contentID string) error {
	if err := s.db.Store().Delete(analysisKey(contentID), &models.ContentAnalysis{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete analysis bundle: %w", err)
	}
	return nil
}

func analysisKey(contentID string) string {
	return "analysis:" + contentID
}
