package views

import "github.com/ternarybob/doceo/internal/models"

// ExtractKeyConcepts returns the key concepts from the stored analysis
// bundle. No model call is made; the concepts are served as persisted.
func (s *Service) ExtractKeyConcepts(contentID string) ([]models.KeyConcept, error) {
	analysis, err := s.completedAnalysis(contentID)
	if err != nil {
		return nil, err
	}
	return analysis.KeyConcepts, nil
}
