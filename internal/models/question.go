package models

// Question types
const (
	QuestionTypeMCQ         = "mcq"
	QuestionTypeShortAnswer = "short_answer"
	QuestionTypeEssay       = "essay"
	QuestionTypeTrueFalse   = "true_false"
	QuestionTypeMatching    = "matching"
)

// Difficulty levels
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyMixed  = "mixed" // request-only: round-robin across easy/medium/hard
)

// Question is one generated practice question. Immutable once generated;
// the ID is unique within its owning bundle or test.
type Question struct {
	ID                   string   `json:"id" validate:"required"`
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

// MatchPair is one left/right pairing in a matching-type test question.
type MatchPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// TestQuestion is one question authored by the two-pass test flow. Unlike
// practice questions it carries marks and may use matching/true-false types.
type TestQuestion struct {
	ID      string      `json:"id" validate:"required"`
	Type    string      `json:"type" validate:"required,oneof=mcq short_answer essay true_false matching"`
	Text    string      `json:"text" validate:"required"`
	Marks   int         `json:"marks" validate:"gte=0"`
	Options []string    `json:"options,omitempty"`
	Pairs   []MatchPair `json:"pairs,omitempty"`
}

// TestAnswer is the pass-2 answer record for one test question. A question
// with no matching answer keeps zero values here rather than failing the
// whole authoring operation.
type TestAnswer struct {
	CorrectAnswer   string `json:"correct_answer"`
	Explanation     string `json:"explanation"`
	GradingCriteria string `json:"grading_criteria"`
}
