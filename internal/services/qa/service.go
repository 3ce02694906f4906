package qa

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/ternarybob/doceo/internal/services/llm"
	"github.com/ternarybob/doceo/internal/services/views"
)

// relatedContextLimit caps how many related items are folded into the
// answer prompt, with a permissive similarity floor so sparse classrooms
// still contribute context.
const (
	relatedContextLimit         = 3
	relatedContextMinSimilarity = 0.3
)

// answerSchema validates the model's structured Q&A response.
type answerSchema struct {
	Answer            string   `json:"answer" validate:"required"`
	Confidence        float64  `json:"confidence" validate:"gte=0,lte=1"`
	Sources           []string `json:"sources"`
	RelatedConcepts   []string `json:"related_concepts"`
	FollowUpQuestions []string `json:"follow_up_questions"`
}

// Service answers student questions grounded in a content item's stored
// analysis bundle plus related-content context.
type Service struct {
	storage interfaces.StorageManager
	llmSvc  interfaces.LLMService
	views   *views.Service
	logger  arbor.ILogger
}

// NewService creates a new Q&A service
func NewService(storage interfaces.StorageManager, llmSvc interfaces.LLMService, viewsSvc *views.Service, logger arbor.ILogger) *Service {
	return &Service{
		storage: storage,
		llmSvc:  llmSvc,
		views:   viewsSvc,
		logger:  logger,
	}
}

// AskQuestion answers one question about a completed content item. The
// conversation history is caller-supplied and trimmed to the most recent
// turns; nothing is persisted between calls.
func (s *Service) AskQuestion(ctx context.Context, contentID, question string, history []models.ConversationTurn) (*models.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question cannot be empty", models.ErrInvalidInput)
	}

	status, err := s.storage.StatusStorage().GetStatus(contentID)
	if err != nil {
		return nil, err
	}
	if status.State != models.StateComplete {
		return nil, models.ErrNotProcessed
	}

	item, err := s.storage.ContentStorage().GetContentItem(contentID)
	if err != nil {
		return nil, err
	}

	analysis, err := s.storage.AnalysisStorage().GetAnalysis(contentID)
	if err != nil {
		return nil, err
	}

	related, err := s.views.FindRelatedContent(contentID, &views.RelatedOptions{
		ClassroomID:   item.ClassroomID,
		Limit:         relatedContextLimit,
		MinSimilarity: relatedContextMinSimilarity,
	})
	if err != nil {
		// Related context is an enrichment, not a requirement
		s.logger.Warn().Err(err).Str("content_id", contentID).Msg("Failed to gather related context for answer")
		related = nil
	}

	messages := buildAnswerMessages(item, analysis, related, history, question)

	response, err := s.llmSvc.Chat(ctx, messages)
	if err != nil {
		return nil, err
	}

	decoded, err := llm.DecodeStructured[answerSchema](response)
	if err != nil {
		var schemaErr *models.SchemaValidationError
		if errors.As(err, &schemaErr) {
			s.logger.Warn().Err(err).Str("content_id", contentID).Msg("Model returned malformed answer payload")
		}
		return nil, err
	}

	return &models.Answer{
		Answer:            decoded.Answer,
		Confidence:        decoded.Confidence,
		Sources:           decoded.Sources,
		RelatedConcepts:   decoded.RelatedConcepts,
		FollowUpQuestions: decoded.FollowUpQuestions,
	}, nil
}
