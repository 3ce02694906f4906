package testgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/ternarybob/doceo/internal/services/llm"
)

// TestRequest describes the pass-1 test authoring job.
type TestRequest struct {
	Subject         string `json:"subject" validate:"required"`
	GradeRange      string `json:"grade_range" validate:"required"`
	CurriculumText  string `json:"curriculum_text" validate:"required"`
	Instruction     string `json:"instruction"`
	TotalMarks      int    `json:"total_marks" validate:"gte=0"`
	DurationMinutes int    `json:"duration_minutes" validate:"gte=0"`
}

// questionsSchema is the pass-1 model payload: questions without IDs, which
// are assigned locally after validation.
type questionsSchema struct {
	Questions []struct {
		Type    string             `json:"type" validate:"required,oneof=mcq short_answer essay true_false matching"`
		Text    string             `json:"text" validate:"required"`
		Marks   int                `json:"marks" validate:"gte=0"`
		Options []string           `json:"options"`
		Pairs   []models.MatchPair `json:"pairs"`
	} `json:"questions" validate:"required,min=1,dive"`
}

// answersSchema is the pass-2 model payload keyed by question ID.
type answersSchema struct {
	Answers map[string]models.TestAnswer `json:"answers" validate:"required"`
}

// Service implements the two-pass test authoring flow: questions first,
// then an answer key keyed by the finalized question IDs.
type Service struct {
	llmSvc interfaces.LLMService
	logger arbor.ILogger
}

// NewService creates a new test authoring service
func NewService(llmSvc interfaces.LLMService, logger arbor.ILogger) *Service {
	return &Service{
		llmSvc: llmSvc,
		logger: logger,
	}
}

// GenerateTestQuestions runs pass 1: author the test paper's questions from
// curriculum material. IDs are assigned locally, never by the model.
func (s *Service) GenerateTestQuestions(ctx context.Context, req *TestRequest) ([]models.TestQuestion, error) {
	if strings.TrimSpace(req.CurriculumText) == "" {
		return nil, fmt.Errorf("%w: curriculum text cannot be empty", models.ErrInvalidInput)
	}
	if req.Subject == "" || req.GradeRange == "" {
		return nil, fmt.Errorf("%w: subject and grade range are required", models.ErrInvalidInput)
	}

	s.logger.Info().
		Str("subject", req.Subject).
		Str("grade_range", req.GradeRange).
		Int("total_marks", req.TotalMarks).
		Msg("Authoring test questions")

	response, err := s.llmSvc.Chat(ctx, buildQuestionMessages(req))
	if err != nil {
		return nil, err
	}

	decoded, err := llm.DecodeStructured[questionsSchema](response)
	if err != nil {
		return nil, err
	}

	questions := make([]models.TestQuestion, 0, len(decoded.Questions))
	for _, q := range decoded.Questions {
		if q.Type == models.QuestionTypeMCQ && len(q.Options) < 2 {
			return nil, &models.SchemaValidationError{
				Err: fmt.Errorf("mcq question %q has %d options, need at least 2", q.Text, len(q.Options)),
			}
		}
		if q.Type == models.QuestionTypeMatching && len(q.Pairs) < 2 {
			return nil, &models.SchemaValidationError{
				Err: fmt.Errorf("matching question %q has %d pairs, need at least 2", q.Text, len(q.Pairs)),
			}
		}

		questions = append(questions, models.TestQuestion{
			ID:      common.NewQuestionID(),
			Type:    q.Type,
			Text:    q.Text,
			Marks:   q.Marks,
			Options: q.Options,
			Pairs:   q.Pairs,
		})
	}

	return questions, nil
}

// GenerateAnswers runs pass 2: produce the answer key for previously
// authored questions. The merge is tolerant: a question the model skipped
// keeps a zero-value answer record, and IDs the model invented are dropped.
func (s *Service) GenerateAnswers(ctx context.Context, questions []models.TestQuestion, subject, gradeRange string) (map[string]models.TestAnswer, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions to answer", models.ErrInvalidInput)
	}

	response, err := s.llmSvc.Chat(ctx, buildAnswerMessages(questions, subject, gradeRange))
	if err != nil {
		return nil, err
	}

	decoded, err := llm.DecodeStructured[answersSchema](response)
	if err != nil {
		return nil, err
	}

	answers := make(map[string]models.TestAnswer, len(questions))
	for _, q := range questions {
		answer, ok := decoded.Answers[q.ID]
		if !ok {
			s.logger.Warn().Str("question_id", q.ID).Msg("Answer key missing entry for question")
			answers[q.ID] = models.TestAnswer{}
			continue
		}
		if q.Type == models.QuestionTypeMCQ && !containsOption(q.Options, answer.CorrectAnswer) {
			s.logger.Warn().
				Str("question_id", q.ID).
				Str("correct_answer", answer.CorrectAnswer).
				Msg("MCQ answer is not one of the question's options")
		}
		answers[q.ID] = answer
	}

	return answers, nil
}

func containsOption(options []string, answer string) bool {
	for _, opt := range options {
		if opt == answer {
			return true
		}
	}
	return false
}
