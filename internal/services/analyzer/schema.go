package analyzer

import (
	"fmt"

	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/models"
)

// analysisSchema is the expected structure of the model's analysis response.
// All fields are validated with go-playground/validator tags before anything
// is persisted; constrained enums reject out-of-range values outright.
type analysisSchema struct {
	Summaries                   models.Summaries    `json:"summaries" validate:"required"`
	KeyConcepts                 []models.KeyConcept `json:"key_concepts" validate:"required,min=1,dive"`
	PracticeQuestions           []schemaQuestion    `json:"practice_questions" validate:"required,min=1,dive"`
	Topics                      []string            `json:"topics" validate:"required,min=1"`
	Prerequisites               []string            `json:"prerequisites"`
	LearningObjectives          []string            `json:"learning_objectives"`
	DifficultyLevel             string              `json:"difficulty_level" validate:"required,oneof=beginner intermediate advanced"`
	EstimatedReadingTimeMinutes int                 `json:"estimated_reading_time_minutes" validate:"gte=0"`
}

// schemaQuestion mirrors models.Question minus the ID, which is assigned
// locally rather than trusted from the model.
type schemaQuestion struct {
	Type                 string   `json:"type" validate:"required,oneof=mcq short_answer essay"`
	Text                 string   `json:"text" validate:"required"`
	Options              []string `json:"options,omitempty"`
	CorrectAnswer        string   `json:"correct_answer"`
	Explanation          string   `json:"explanation"`
	Difficulty           string   `json:"difficulty" validate:"required,oneof=easy medium hard"`
	BloomsLevel          string   `json:"blooms_level" validate:"required,oneof=remember understand apply analyze evaluate create"`
	Topic                string   `json:"topic"`
	EstimatedTimeMinutes int      `json:"estimated_time_minutes" validate:"gte=0"`
}

// toQuestions converts schema questions into domain questions with freshly
// assigned IDs, enforcing MCQ answer/options consistency. Violations fail
// the whole bundle: a half-valid bundle is never persisted.
func toQuestions(schemaQuestions []schemaQuestion) ([]models.Question, error) {
	questions := make([]models.Question, 0, len(schemaQuestions))
	for i, sq := range schemaQuestions {
		if sq.Type == models.QuestionTypeMCQ {
			if len(sq.Options) < 2 {
				return nil, &models.SchemaValidationError{
					Err: fmt.Errorf("mcq question %d has %d options, need at least 2", i, len(sq.Options)),
				}
			}
			if !contains(sq.Options, sq.CorrectAnswer) {
				return nil, &models.SchemaValidationError{
					Err: fmt.Errorf("mcq question %d correct answer is not among its options", i),
				}
			}
		}

		questions = append(questions, models.Question{
			ID:                   common.NewQuestionID(),
			Type:                 sq.Type,
			Text:                 sq.Text,
			Options:              sq.Options,
			CorrectAnswer:        sq.CorrectAnswer,
			Explanation:          sq.Explanation,
			Difficulty:           sq.Difficulty,
			BloomsLevel:          sq.BloomsLevel,
			Topic:                sq.Topic,
			EstimatedTimeMinutes: sq.EstimatedTimeMinutes,
		})
	}
	return questions, nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
