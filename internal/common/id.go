package common

import (
	"github.com/google/uuid"
)

// NewContentID generates a unique content item ID with the "content_" prefix
// Format: content_<uuid>
func NewContentID() string {
	return "content_" + uuid.New().String()
}

// NewQuestionID generates a unique question ID with the "q_" prefix
// Format: q_<uuid>
func NewQuestionID() string {
	return "q_" + uuid.New().String()
}
