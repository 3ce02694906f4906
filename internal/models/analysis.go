package models

import (
	"time"
)

// ProcessingVersion is stamped on every ContentAnalysis write so readers can
// detect bundles produced by an older schema.
const ProcessingVersion = 2

// Summaries holds the three pre-generated summary granularities.
type Summaries struct {
	Short    string `json:"short" validate:"required"`
	Bullets  string `json:"bullets" validate:"required"`
	Detailed string `json:"detailed" validate:"required"`
}

// KeyConcept is one term extracted from the analyzed document.
type KeyConcept struct {
	Term       string `json:"term" validate:"required"`
	Definition string `json:"definition" validate:"required"`
	Category   string `json:"category" validate:"required,oneof=concept definition process formula fact"`
	Importance int    `json:"importance" validate:"min=1,max=10"`
}

// ContentAnalysis is the full artifact bundle derived from one content item.
// It is wholesale-replaced on each successful reprocessing; derived-view
// generators treat it as read-only.
type ContentAnalysis struct {
	ContentID          string       `json:"content_id" validate:"required"`
	Summaries          Summaries    `json:"summaries" validate:"required"`
	KeyConcepts        []KeyConcept `json:"key_concepts" validate:"required,min=1,dive"`
	PracticeQuestions  []Question   `json:"practice_questions" validate:"required,min=1,dive"`
	Topics             []string     `json:"topics"`
	Prerequisites      []string     `json:"prerequisites"`
	LearningObjectives []string     `json:"learning_objectives"`

	// Embedding is best-effort: empty when the embedding call failed, which
	// degrades related-content lookup but never blocks the textual bundle.
	Embedding []float32 `json:"embedding,omitempty"`

	DifficultyLevel             string    `json:"difficulty_level" validate:"required,oneof=beginner intermediate advanced"`
	EstimatedReadingTimeMinutes int       `json:"estimated_reading_time_minutes" validate:"gte=0"`
	ProcessedAt                 time.Time `json:"processed_at"`
	ProcessingVersion           int       `json:"processing_version"`
}

// HasEmbedding reports whether the bundle carries a usable embedding vector.
func (a *ContentAnalysis) HasEmbedding() bool {
	return len(a.Embedding) > 0
}

// RelatedResult is one semantic-similarity match for a content item.
type RelatedResult struct {
	ContentID       string  `json:"content_id"`
	Title           string  `json:"title"`
	Subject         string  `json:"subject"`
	Similarity      float64 `json:"similarity"`
	RelevanceReason string  `json:"relevance_reason"`
}

// SummaryView is the rendered response for one summary granularity.
type SummaryView struct {
	Content            string   `json:"content"`
	WordCount          int      `json:"word_count"`
	KeyPoints          []string `json:"key_points"`
	ReadingTimeMinutes int      `json:"reading_time_minutes"`
}

// ConversationTurn is one entry in a Q&A conversation window. Supplied by
// the caller, never persisted.
type ConversationTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Answer is the grounded response to one Q&A question.
type Answer struct {
	Answer            string   `json:"answer"`
	Confidence        float64  `json:"confidence"` // 0-1
	Sources           []string `json:"sources"`
	RelatedConcepts   []string `json:"related_concepts"`
	FollowUpQuestions []string `json:"follow_up_questions"`
}
