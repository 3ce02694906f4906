package qa

import (
	"fmt"
	"strings"

	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

const qaSystemPrompt = `You are a patient tutor answering a student's question about a specific learning document.
Ground every answer in the provided material. If the material does not cover the question, say so and lower your confidence.
Respond with a single JSON object and nothing else. Do not wrap the JSON in markdown fences.`

// maxHistoryTurns bounds the conversation window sent to the model.
const maxHistoryTurns = 10

// buildAnswerMessages assembles the grounded Q&A prompt: the document's
// analysis bundle, related-content context, the trailing conversation
// window, and the student's question.
func buildAnswerMessages(item *models.ContentItem, analysis *models.ContentAnalysis, related []models.RelatedResult, history []models.ConversationTurn, question string) []interfaces.Message {
	var b strings.Builder

	fmt.Fprintf(&b, "Document: %s\nSubject: %s\nGrade level: %s\n\n", item.Title, item.Subject, item.GradeLevel)

	b.WriteString("Detailed summary:\n")
	b.WriteString(analysis.Summaries.Detailed)
	b.WriteString("\n\nKey concepts:\n")
	for _, c := range analysis.KeyConcepts {
		fmt.Fprintf(&b, "- %s: %s\n", c.Term, c.Definition)
	}

	if len(analysis.Topics) > 0 {
		fmt.Fprintf(&b, "\nTopics: %s\n", strings.Join(analysis.Topics, ", "))
	}

	if len(related) > 0 {
		b.WriteString("\nRelated material in this classroom:\n")
		for _, r := range related {
			fmt.Fprintf(&b, "- %s (%s): %s\n", r.Title, r.Subject, r.RelevanceReason)
		}
	}

	b.WriteString(`
Return a JSON object with exactly this structure:
{
  "answer": "the grounded answer",
  "confidence": 0.0-1.0,
  "sources": ["summary sections or concept terms the answer draws on"],
  "related_concepts": ["concept terms from the material relevant to the answer"],
  "follow_up_questions": ["2-3 questions the student could ask next"]
}
`)

	messages := []interfaces.Message{
		{Role: "system", Content: qaSystemPrompt},
		{Role: "user", Content: b.String()},
	}

	for _, turn := range trimHistory(history) {
		role := turn.Role
		if role != "assistant" {
			role = "user"
		}
		messages = append(messages, interfaces.Message{Role: role, Content: turn.Content})
	}

	messages = append(messages, interfaces.Message{Role: "user", Content: question})
	return messages
}

// trimHistory keeps only the most recent turns.
func trimHistory(history []models.ConversationTurn) []models.ConversationTurn {
	if len(history) <= maxHistoryTurns {
		return history
	}
	return history[len(history)-maxHistoryTurns:]
}
