package analyzer

import (
	"fmt"
	"strings"

	"github.com/ternarybob/doceo/internal/interfaces"
)

const analysisSystemPrompt = `You are an expert instructional designer analyzing learning material for students.
Respond with a single JSON object and nothing else. Do not wrap the JSON in markdown fences.`

// buildAnalysisMessages constructs the single structured prompt requesting
// the full artifact bundle for one document.
func buildAnalysisMessages(title, subject, gradeLevel, text string) []interfaces.Message {
	var b strings.Builder

	b.WriteString("Analyze the following learning document and produce a complete analysis bundle.\n\n")
	fmt.Fprintf(&b, "Title: %s\nSubject: %s\nGrade level: %s\n\n", title, subject, gradeLevel)

	b.WriteString(`Return a JSON object with exactly this structure:
{
  "summaries": {
    "short": "2-3 sentence summary",
    "bullets": "5-8 bullet points, one per line, each starting with '- '",
    "detailed": "2-4 paragraph detailed summary"
  },
  "key_concepts": [
    {"term": "...", "definition": "...", "category": "concept|definition|process|formula|fact", "importance": 1-10}
  ],
  "practice_questions": [
    {"type": "mcq|short_answer|essay", "text": "...", "options": ["..."], "correct_answer": "...", "explanation": "...", "difficulty": "easy|medium|hard", "blooms_level": "remember|understand|apply|analyze|evaluate|create", "topic": "...", "estimated_time_minutes": 1-15}
  ],
  "topics": ["..."],
  "prerequisites": ["..."],
  "learning_objectives": ["..."],
  "difficulty_level": "beginner|intermediate|advanced",
  "estimated_reading_time_minutes": <integer>
}

Requirements:
- 8 to 12 key concepts, ordered most important first.
- 8 to 10 practice questions spanning all three difficulty levels and a range of Bloom's levels.
- For mcq questions, "options" must contain 3-5 entries and "correct_answer" must be copied verbatim from "options".
- For short_answer and essay questions, omit "options".
- 3 to 8 topics, 0 to 5 prerequisites, 3 to 6 learning objectives.

Document text:
---
`)
	b.WriteString(text)
	b.WriteString("\n---")

	return []interfaces.Message{
		{Role: "system", Content: analysisSystemPrompt},
		{Role: "user", Content: b.String()},
	}
}

// buildEmbeddingInput assembles the text embedded for similarity search:
// title, detailed summary, and concept terms.
func buildEmbeddingInput(title, detailedSummary string, conceptTerms []string) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(detailedSummary)
	if len(conceptTerms) > 0 {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(conceptTerms, ", "))
	}
	return b.String()
}
