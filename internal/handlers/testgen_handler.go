package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/ternarybob/doceo/internal/services/testgen"
)

// TestGenHandler serves the two-pass test authoring endpoints.
type TestGenHandler struct {
	testgen *testgen.Service
	logger  arbor.ILogger
}

// NewTestGenHandler creates a new test authoring handler
func NewTestGenHandler(testgenSvc *testgen.Service, logger arbor.ILogger) *TestGenHandler {
	return &TestGenHandler{
		testgen: testgenSvc,
		logger:  logger,
	}
}

// QuestionsHandler handles POST /api/tests/questions requests (pass 1).
func (h *TestGenHandler) QuestionsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req testgen.TestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.logger.Info().
		Str("subject", req.Subject).
		Str("grade_range", req.GradeRange).
		Msg("Authoring test questions")

	questions, err := h.testgen.GenerateTestQuestions(r.Context(), &req)
	if err != nil {
		h.logger.Error().Err(err).Msg("Test question authoring failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
		"count":     len(questions),
	})
}

type answersRequest struct {
	Questions  []models.TestQuestion `json:"questions"`
	Subject    string                `json:"subject"`
	GradeRange string                `json:"grade_range"`
}

// AnswersHandler handles POST /api/tests/answers requests (pass 2).
func (h *TestGenHandler) AnswersHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req answersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Questions) == 0 {
		WriteError(w, http.StatusBadRequest, "questions are required")
		return
	}

	answers, err := h.testgen.GenerateAnswers(r.Context(), req.Questions, req.Subject, req.GradeRange)
	if err != nil {
		h.logger.Error().Err(err).Msg("Answer key authoring failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"answers": answers,
		"count":   len(answers),
	})
}
