package testgen

import (
	"fmt"
	"strings"

	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

const questionsSystemPrompt = `You are an experienced teacher authoring a formal assessment from curriculum material.
Respond with a single JSON object and nothing else. Do not wrap the JSON in markdown fences.`

const answersSystemPrompt = `You are an experienced teacher writing the answer key and grading guidance for an assessment.
Respond with a single JSON object and nothing else. Do not wrap the JSON in markdown fences.`

// buildQuestionMessages constructs the pass-1 prompt requesting the test
// paper's questions only.
func buildQuestionMessages(req *TestRequest) []interfaces.Message {
	var b strings.Builder

	fmt.Fprintf(&b, "Author a test paper for the following class.\n\nSubject: %s\nGrade range: %s\n", req.Subject, req.GradeRange)
	if req.TotalMarks > 0 {
		fmt.Fprintf(&b, "Total marks: %d\n", req.TotalMarks)
	}
	if req.DurationMinutes > 0 {
		fmt.Fprintf(&b, "Duration: %d minutes\n", req.DurationMinutes)
	}
	if req.Instruction != "" {
		fmt.Fprintf(&b, "Teacher instructions: %s\n", req.Instruction)
	}

	b.WriteString(`
Return a JSON object with exactly this structure:
{
  "questions": [
    {"type": "mcq|short_answer|essay|true_false|matching", "text": "...", "marks": <integer>, "options": ["..."], "pairs": [{"left": "...", "right": "..."}]}
  ]
}

Requirements:
- Mix question types appropriate to the grade range.
- "options" only for mcq questions (3-5 entries); "pairs" only for matching questions (3-6 pairs).
- Marks per question must sum to the total marks when one is given.
- Do not include answers in this response.

Curriculum material:
---
`)
	b.WriteString(req.CurriculumText)
	b.WriteString("\n---")

	return []interfaces.Message{
		{Role: "system", Content: questionsSystemPrompt},
		{Role: "user", Content: b.String()},
	}
}

// buildAnswerMessages constructs the pass-2 prompt: the finalized questions,
// with their IDs, asking for an answer record per ID.
func buildAnswerMessages(questions []models.TestQuestion, subject, gradeRange string) []interfaces.Message {
	var b strings.Builder

	fmt.Fprintf(&b, "Write the answer key for this %s test (grade range: %s).\n\nQuestions:\n", subject, gradeRange)
	for _, q := range questions {
		fmt.Fprintf(&b, "[%s] (%s, %d marks) %s\n", q.ID, q.Type, q.Marks, q.Text)
		for _, opt := range q.Options {
			fmt.Fprintf(&b, "  - %s\n", opt)
		}
		for _, p := range q.Pairs {
			fmt.Fprintf(&b, "  %s <-> %s\n", p.Left, p.Right)
		}
	}

	b.WriteString(`
Return a JSON object with exactly this structure, keyed by the question IDs in brackets above:
{
  "answers": {
    "<question id>": {"correct_answer": "...", "explanation": "...", "grading_criteria": "how partial marks are awarded"}
  }
}

Requirements:
- One entry per question ID.
- For mcq, "correct_answer" must be copied verbatim from the options.
- For essay and short_answer, "correct_answer" is a model answer and "grading_criteria" describes the marking rubric.
`)

	return []interfaces.Message{
		{Role: "system", Content: answersSystemPrompt},
		{Role: "user", Content: b.String()},
	}
}
