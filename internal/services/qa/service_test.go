package qa

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/ternarybob/doceo/internal/services/views"
	"github.com/ternarybob/doceo/internal/storage/badger"
)

const validAnswerResponse = `{
	"answer": "Chlorophyll absorbs light energy for the light reactions.",
	"confidence": 0.85,
	"sources": ["Detailed summary", "Chlorophyll"],
	"related_concepts": ["Chlorophyll", "Calvin cycle"],
	"follow_up_questions": ["What happens in the Calvin cycle?"]
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

func newTestService(t *testing.T, llmSvc interfaces.LLMService) (*Service, interfaces.StorageManager) {
	t.Helper()

	storage, err := badger.NewManager(arbor.NewLogger(), &common.BadgerConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("Failed to open test storage: %v", err)
	}
	t.Cleanup(func() {
		storage.Close()
	})

	viewsSvc := views.NewService(storage, arbor.NewLogger())
	return NewService(storage, llmSvc, viewsSvc, arbor.NewLogger()), storage
}

func seedCompleted(t *testing.T, storage interfaces.StorageManager, id string) {
	t.Helper()

	if err := storage.ContentStorage().SaveContentItem(&models.ContentItem{
		ID:          id,
		Title:       "Photosynthesis",
		Subject:     "Biology",
		GradeLevel:  "9",
		ClassroomID: "class_a",
	}); err != nil {
		t.Fatalf("Failed to seed content item: %v", err)
	}

	status := models.NewProcessingStatus(id)
	status.MarkComplete()
	if err := storage.StatusStorage().SaveStatus(status); err != nil {
		t.Fatalf("Failed to seed status: %v", err)
	}

	if err := storage.AnalysisStorage().SaveAnalysis(&models.ContentAnalysis{
		ContentID: id,
		Summaries: models.Summaries{
			Short:    "Plants convert light into chemical energy.",
			Bullets:  "- Light reactions\n- Calvin cycle",
			Detailed: "Photosynthesis converts light energy into glucose via the light reactions and the Calvin cycle.",
		},
		KeyConcepts: []models.KeyConcept{
			{Term: "Chlorophyll", Definition: "The green pigment that absorbs light", Category: "concept", Importance: 9},
		},
		PracticeQuestions: []models.Question{
			{ID: "q_1", Type: models.QuestionTypeShortAnswer, Text: "What is chlorophyll?", Difficulty: models.DifficultyEasy, BloomsLevel: "remember"},
		},
		Topics:          []string{"Photosynthesis"},
		DifficultyLevel: "beginner",
	}); err != nil {
		t.Fatalf("Failed to seed analysis: %v", err)
	}
}

func TestAskQuestionReturnsGroundedAnswer(t *testing.T) {
	llmSvc := &fakeLLM{response: validAnswerResponse}
	svc, storage := newTestService(t, llmSvc)
	seedCompleted(t, storage, "content_1")

	answer, err := svc.AskQuestion(context.Background(), "content_1", "What does chlorophyll do?", nil)
	if err != nil {
		t.Fatalf("Failed to answer question: %v", err)
	}
	if answer.Confidence != 0.85 {
		t.Errorf("Expected confidence 0.85, got %f", answer.Confidence)
	}
	if len(answer.FollowUpQuestions) != 1 {
		t.Errorf("Expected 1 follow-up question, got %d", len(answer.FollowUpQuestions))
	}

	// Prompt carries the bundle and ends with the student's question
	if len(llmSvc.messages) < 2 {
		t.Fatalf("Expected system and user messages, got %d", len(llmSvc.messages))
	}
	last := llmSvc.messages[len(llmSvc.messages)-1]
	if last.Role != "user" || last.Content != "What does chlorophyll do?" {
		t.Errorf("Expected question as final message, got %+v", last)
	}
	if !strings.Contains(llmSvc.messages[1].Content, "Chlorophyll") {
		t.Error("Expected key concepts folded into the prompt")
	}
}

func TestAskQuestionTruncatesHistory(t *testing.T) {
	llmSvc := &fakeLLM{response: validAnswerResponse}
	svc, storage := newTestService(t, llmSvc)
	seedCompleted(t, storage, "content_1")

	history := make([]models.ConversationTurn, 25)
	for i := range history {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		history[i] = models.ConversationTurn{Role: role, Content: fmt.Sprintf("turn %d", i)}
	}

	if _, err := svc.AskQuestion(context.Background(), "content_1", "Next question?", history); err != nil {
		t.Fatalf("Failed to answer question: %v", err)
	}

	// system + context + trimmed history + question
	expected := 2 + maxHistoryTurns + 1
	if len(llmSvc.messages) != expected {
		t.Errorf("Expected %d messages after truncation, got %d", expected, len(llmSvc.messages))
	}

	// The oldest surviving turn is the start of the trailing window
	firstHistory := llmSvc.messages[2]
	if firstHistory.Content != "turn 15" {
		t.Errorf("Expected history window to start at turn 15, got %q", firstHistory.Content)
	}
}

func TestAskQuestionRequiresCompleteState(t *testing.T) {
	svc, storage := newTestService(t, &fakeLLM{response: validAnswerResponse})

	if err := storage.ContentStorage().SaveContentItem(&models.ContentItem{ID: "content_1", Title: "T"}); err != nil {
		t.Fatalf("Failed to save item: %v", err)
	}
	status := models.NewProcessingStatus("content_1")
	if err := storage.StatusStorage().SaveStatus(status); err != nil {
		t.Fatalf("Failed to save status: %v", err)
	}

	_, err := svc.AskQuestion(context.Background(), "content_1", "Anything?", nil)
	if !errors.Is(err, models.ErrNotProcessed) {
		t.Errorf("Expected ErrNotProcessed for pending item, got %v", err)
	}
}

func TestAskQuestionRejectsEmptyQuestion(t *testing.T) {
	svc, storage := newTestService(t, &fakeLLM{response: validAnswerResponse})
	seedCompleted(t, storage, "content_1")

	_, err := svc.AskQuestion(context.Background(), "content_1", "   ", nil)
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for blank question, got %v", err)
	}
}

func TestAskQuestionRejectsMalformedAnswer(t *testing.T) {
	llmSvc := &fakeLLM{response: `{"answer": "sure", "confidence": 1.7}`}
	svc, storage := newTestService(t, llmSvc)
	seedCompleted(t, storage, "content_1")

	_, err := svc.AskQuestion(context.Background(), "content_1", "What?", nil)
	var schemaErr *models.SchemaValidationError
	if !errors.As(err, &schemaErr) {
		t.Errorf("Expected SchemaValidationError for out-of-range confidence, got %v", err)
	}
}
