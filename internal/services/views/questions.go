package views

import (
	"fmt"
	"strings"

	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/models"
)

// QuestionOptions filters and shapes practice question assembly.
type QuestionOptions struct {
	Count       int      `json:"count"`
	Difficulty  string   `json:"difficulty"` // easy, medium, hard, or mixed
	Types       []string `json:"types"`      // subset of mcq, short_answer, essay
	FocusTopics []string `json:"focus_topics"`
}

var mixedCycle = []string{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard}

// GeneratePracticeQuestions assembles exactly count questions from the
// stored bundle, cycling through the requested types. For difficulty
// "mixed", difficulties are assigned round-robin across easy/medium/hard so
// the distribution never strays from an even split by more than one.
func (s *Service) GeneratePracticeQuestions(contentID string, opts *QuestionOptions) ([]models.Question, error) {
	analysis, err := s.completedAnalysis(contentID)
	if err != nil {
		return nil, err
	}

	count := opts.Count
	if count < 1 {
		return nil, fmt.Errorf("%w: question count must be at least 1, got %d", models.ErrInvalidInput, count)
	}

	types := opts.Types
	if len(types) == 0 {
		types = []string{models.QuestionTypeMCQ, models.QuestionTypeShortAnswer, models.QuestionTypeEssay}
	}
	for _, t := range types {
		switch t {
		case models.QuestionTypeMCQ, models.QuestionTypeShortAnswer, models.QuestionTypeEssay:
		default:
			return nil, fmt.Errorf("%w: invalid question type '%s'", models.ErrInvalidInput, t)
		}
	}

	difficulty := opts.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyMixed
	}
	switch difficulty {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard, models.DifficultyMixed:
	default:
		return nil, fmt.Errorf("%w: invalid difficulty '%s'", models.ErrInvalidInput, difficulty)
	}

	pool := filterByTopics(analysis.PracticeQuestions, opts.FocusTopics)
	if len(pool) == 0 {
		pool = analysis.PracticeQuestions
	}

	byType := make(map[string][]models.Question)
	for _, q := range pool {
		byType[q.Type] = append(byType[q.Type], q)
	}

	cursor := make(map[string]int)
	questions := make([]models.Question, 0, count)
	for i := 0; i < count; i++ {
		qType := types[i%len(types)]

		assigned := difficulty
		if difficulty == models.DifficultyMixed {
			assigned = mixedCycle[i%len(mixedCycle)]
		}

		var question models.Question
		if candidates := byType[qType]; len(candidates) > 0 {
			question = candidates[cursor[qType]%len(candidates)]
			cursor[qType]++
			question.ID = common.NewQuestionID()
		} else {
			// Nothing of this type in the bundle; synthesize from concepts
			question = s.synthesizeQuestion(analysis, qType, i)
		}

		question.Difficulty = assigned
		questions = append(questions, question)
	}

	return questions, nil
}

// filterByTopics keeps questions whose topic matches any focus topic
// (case-insensitive substring in either direction).
func filterByTopics(questions []models.Question, focusTopics []string) []models.Question {
	if len(focusTopics) == 0 {
		return questions
	}

	filtered := []models.Question{}
	for _, q := range questions {
		topic := strings.ToLower(q.Topic)
		for _, focus := range focusTopics {
			focus = strings.ToLower(focus)
			if strings.Contains(topic, focus) || strings.Contains(focus, topic) {
				filtered = append(filtered, q)
				break
			}
		}
	}
	return filtered
}

// synthesizeQuestion builds a deterministic question from the bundle's key
// concepts when the stored pool has none of the requested type.
func (s *Service) synthesizeQuestion(analysis *models.ContentAnalysis, qType string, seq int) models.Question {
	concepts := analysis.KeyConcepts
	concept := concepts[seq%len(concepts)]

	question := models.Question{
		ID:                   common.NewQuestionID(),
		Type:                 qType,
		BloomsLevel:          "understand",
		Topic:                concept.Term,
		EstimatedTimeMinutes: 3,
	}

	switch qType {
	case models.QuestionTypeMCQ:
		options := []string{concept.Definition}
		for _, other := range concepts {
			if other.Term == concept.Term {
				continue
			}
			options = append(options, other.Definition)
			if len(options) == 4 {
				break
			}
		}
		question.Text = fmt.Sprintf("Which of the following best describes %q?", concept.Term)
		question.Options = options
		question.CorrectAnswer = concept.Definition
		question.Explanation = fmt.Sprintf("%s: %s", concept.Term, concept.Definition)

	case models.QuestionTypeShortAnswer:
		question.Text = fmt.Sprintf("In your own words, define %q.", concept.Term)
		question.CorrectAnswer = concept.Definition
		question.Explanation = fmt.Sprintf("A complete answer covers: %s", concept.Definition)
		question.EstimatedTimeMinutes = 5

	default: // essay
		question.Text = fmt.Sprintf("Explain the role of %q in this material and how it relates to the other key ideas.", concept.Term)
		question.CorrectAnswer = concept.Definition
		question.Explanation = "Responses should connect the concept to the document's main topics."
		question.EstimatedTimeMinutes = 15
	}

	return question
}
