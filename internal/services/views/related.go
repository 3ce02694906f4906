package views

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

// RelatedOptions controls the related-content search.
type RelatedOptions struct {
	ClassroomID   string  `json:"classroom_id"`
	Limit         int     `json:"limit"`
	MinSimilarity float64 `json:"min_similarity"`
}

// FindRelatedContent ranks other completed content items by cosine
// similarity of their embeddings against the source item. A source with no
// embedding yields an empty result, not an error. Candidates without
// embeddings are skipped.
func (s *Service) FindRelatedContent(contentID string, opts *RelatedOptions) ([]models.RelatedResult, error) {
	source, err := s.completedAnalysis(contentID)
	if err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit < 1 {
		limit = 5
	}

	if !source.HasEmbedding() {
		s.logger.Debug().Str("content_id", contentID).Msg("Source has no embedding, returning empty related list")
		return []models.RelatedResult{}, nil
	}

	items, err := s.storage.ContentStorage().ListContentItems(&interfaces.ContentListOptions{ClassroomID: opts.ClassroomID})
	if err != nil {
		return nil, fmt.Errorf("failed to list content items: %w", err)
	}

	type scored struct {
		result     models.RelatedResult
		uploadedAt int64
	}

	candidates := []scored{}
	for _, item := range items {
		if item.ID == contentID {
			continue
		}

		analysis, err := s.storage.AnalysisStorage().GetAnalysis(item.ID)
		if err != nil {
			if errors.Is(err, models.ErrNotProcessed) {
				continue
			}
			return nil, fmt.Errorf("failed to load analysis for %s: %w", item.ID, err)
		}
		if !analysis.HasEmbedding() {
			continue
		}

		similarity := cosineSimilarity(source.Embedding, analysis.Embedding)
		if similarity < opts.MinSimilarity {
			continue
		}

		candidates = append(candidates, scored{
			result: models.RelatedResult{
				ContentID:       item.ID,
				Title:           item.Title,
				Subject:         item.Subject,
				Similarity:      similarity,
				RelevanceReason: relevanceReason(source, analysis, item.Subject),
			},
			uploadedAt: item.UploadedAt.UnixNano(),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].result.Similarity != candidates[j].result.Similarity {
			return candidates[i].result.Similarity > candidates[j].result.Similarity
		}
		return candidates[i].uploadedAt > candidates[j].uploadedAt
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results := make([]models.RelatedResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, c.result)
	}
	return results, nil
}

// cosineSimilarity returns 0 for mismatched or zero-length vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// relevanceReason names the strongest overlap between two bundles: a shared
// topic first, then a shared concept term, then a generic subject match.
func relevanceReason(source, other *models.ContentAnalysis, subject string) string {
	if topic := firstOverlap(source.Topics, other.Topics); topic != "" {
		return fmt.Sprintf("Both cover %s", topic)
	}

	sourceTerms := make([]string, 0, len(source.KeyConcepts))
	for _, c := range source.KeyConcepts {
		sourceTerms = append(sourceTerms, c.Term)
	}
	otherTerms := make([]string, 0, len(other.KeyConcepts))
	for _, c := range other.KeyConcepts {
		otherTerms = append(otherTerms, c.Term)
	}
	if term := firstOverlap(sourceTerms, otherTerms); term != "" {
		return fmt.Sprintf("Shared key concept: %s", term)
	}

	if subject != "" {
		return fmt.Sprintf("Related %s material", subject)
	}
	return "Similar subject matter"
}

func firstOverlap(a, b []string) string {
	seen := make(map[string]string, len(b))
	for _, v := range b {
		seen[strings.ToLower(strings.TrimSpace(v))] = v
	}
	for _, v := range a {
		if _, ok := seen[strings.ToLower(strings.TrimSpace(v))]; ok {
			return v
		}
	}
	return ""
}
