package testgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

const validQuestionsResponse = `{
	"questions": [
		{"type": "mcq", "text": "Which gas do plants absorb?", "marks": 2, "options": ["Carbon dioxide", "Oxygen", "Nitrogen"]},
		{"type": "short_answer", "text": "Define photosynthesis.", "marks": 4},
		{"type": "true_false", "text": "Photosynthesis occurs in the mitochondria.", "marks": 1},
		{"type": "matching", "text": "Match each structure to its role.", "marks": 3, "pairs": [{"left": "Chloroplast", "right": "Photosynthesis"}, {"left": "Stomata", "right": "Gas exchange"}]}
	]
}`

type fakeLLM struct {
	response string
	err      error
	messages []interfaces.Message
}

func (f *fakeLLM) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	f.messages = messages
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) HealthCheck(ctx context.Context) error { return nil }
func (f *fakeLLM) GetMode() interfaces.LLMMode           { return interfaces.LLMModeFake }
func (f *fakeLLM) Close() error                          { return nil }

func testRequest() *TestRequest {
	return &TestRequest{
		Subject:         "Biology",
		GradeRange:      "8-10",
		CurriculumText:  "Photosynthesis unit covering light reactions, the Calvin cycle, and leaf structure.",
		Instruction:     "Focus on conceptual understanding.",
		TotalMarks:      10,
		DurationMinutes: 45,
	}
}

func TestGenerateTestQuestionsAssignsIDs(t *testing.T) {
	llmSvc := &fakeLLM{response: validQuestionsResponse}
	svc := NewService(llmSvc, arbor.NewLogger())

	questions, err := svc.GenerateTestQuestions(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Failed to generate test questions: %v", err)
	}
	if len(questions) != 4 {
		t.Fatalf("Expected 4 questions, got %d", len(questions))
	}

	seen := map[string]bool{}
	for _, q := range questions {
		if !strings.HasPrefix(q.ID, "q_") {
			t.Errorf("Expected locally assigned ID, got %q", q.ID)
		}
		if seen[q.ID] {
			t.Errorf("Duplicate question ID %s", q.ID)
		}
		seen[q.ID] = true
	}

	if questions[0].Type != models.QuestionTypeMCQ || len(questions[0].Options) != 3 {
		t.Errorf("Unexpected first question: %+v", questions[0])
	}
	if questions[3].Type != models.QuestionTypeMatching || len(questions[3].Pairs) != 2 {
		t.Errorf("Unexpected matching question: %+v", questions[3])
	}
}

func TestGenerateTestQuestionsValidation(t *testing.T) {
	svc := NewService(&fakeLLM{response: validQuestionsResponse}, arbor.NewLogger())

	req := testRequest()
	req.CurriculumText = "   "
	if _, err := svc.GenerateTestQuestions(context.Background(), req); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty curriculum, got %v", err)
	}

	req = testRequest()
	req.Subject = ""
	if _, err := svc.GenerateTestQuestions(context.Background(), req); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for missing subject, got %v", err)
	}
}

func TestGenerateTestQuestionsRejectsInvalidMCQ(t *testing.T) {
	response := `{"questions": [{"type": "mcq", "text": "Pick one.", "marks": 2, "options": ["Only option"]}]}`
	svc := NewService(&fakeLLM{response: response}, arbor.NewLogger())

	_, err := svc.GenerateTestQuestions(context.Background(), testRequest())
	var schemaErr *models.SchemaValidationError
	if !errors.As(err, &schemaErr) {
		t.Errorf("Expected SchemaValidationError for single-option mcq, got %v", err)
	}
}

func TestGenerateAnswersMergesByID(t *testing.T) {
	questions := []models.TestQuestion{
		{ID: "q_a", Type: models.QuestionTypeMCQ, Text: "Which gas?", Marks: 2, Options: []string{"Carbon dioxide", "Oxygen"}},
		{ID: "q_b", Type: models.QuestionTypeEssay, Text: "Explain the Calvin cycle.", Marks: 5},
	}

	response := `{
		"answers": {
			"q_a": {"correct_answer": "Carbon dioxide", "explanation": "Plants fix carbon dioxide.", "grading_criteria": "2 marks for the correct option"},
			"q_b": {"correct_answer": "A model answer covering carbon fixation.", "explanation": "", "grading_criteria": "1 mark per stage described"}
		}
	}`
	llmSvc := &fakeLLM{response: response}
	svc := NewService(llmSvc, arbor.NewLogger())

	answers, err := svc.GenerateAnswers(context.Background(), questions, "Biology", "8-10")
	if err != nil {
		t.Fatalf("Failed to generate answers: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("Expected 2 answers, got %d", len(answers))
	}
	if answers["q_a"].CorrectAnswer != "Carbon dioxide" {
		t.Errorf("Unexpected mcq answer: %+v", answers["q_a"])
	}

	// The pass-2 prompt carries the question IDs
	prompt := llmSvc.messages[len(llmSvc.messages)-1].Content
	if !strings.Contains(prompt, "q_a") || !strings.Contains(prompt, "q_b") {
		t.Error("Expected question IDs in the answer-key prompt")
	}
}

func TestGenerateAnswersTolerantMerge(t *testing.T) {
	questions := []models.TestQuestion{
		{ID: "q_a", Type: models.QuestionTypeShortAnswer, Text: "Define osmosis.", Marks: 3},
		{ID: "q_b", Type: models.QuestionTypeShortAnswer, Text: "Define diffusion.", Marks: 3},
	}

	// Model skipped q_b and invented q_z
	response := `{
		"answers": {
			"q_a": {"correct_answer": "Water movement across a membrane.", "explanation": "", "grading_criteria": ""},
			"q_z": {"correct_answer": "Invented.", "explanation": "", "grading_criteria": ""}
		}
	}`
	svc := NewService(&fakeLLM{response: response}, arbor.NewLogger())

	answers, err := svc.GenerateAnswers(context.Background(), questions, "Biology", "8-10")
	if err != nil {
		t.Fatalf("Expected tolerant merge, got error: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("Expected one entry per question, got %d", len(answers))
	}
	if answers["q_a"].CorrectAnswer == "" {
		t.Error("Expected q_a answer preserved")
	}
	if answers["q_b"].CorrectAnswer != "" {
		t.Errorf("Expected zero-value answer for skipped question, got %+v", answers["q_b"])
	}
	if _, ok := answers["q_z"]; ok {
		t.Error("Expected invented IDs to be dropped")
	}
}

func TestGenerateAnswersPropagatesModelFailure(t *testing.T) {
	svc := NewService(&fakeLLM{err: &models.ModelInvocationError{Provider: "fake", Err: fmt.Errorf("rate limited")}}, arbor.NewLogger())

	_, err := svc.GenerateAnswers(context.Background(), []models.TestQuestion{{ID: "q_a", Type: models.QuestionTypeEssay, Text: "T"}}, "Biology", "8-10")
	var invocationErr *models.ModelInvocationError
	if !errors.As(err, &invocationErr) {
		t.Errorf("Expected ModelInvocationError, got %v", err)
	}
}
