package models

import (
	"time"
)

// ContentItem represents one uploaded learning document tracked through the
// analysis pipeline. It is created by the upload collaborator and treated as
// immutable once processing starts.
type ContentItem struct {
	ID          string    `json:"id"`           // content_{uuid} or caller-supplied
	SourceURL   string    `json:"source_url"`   // Location of the uploaded document
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	GradeLevel  string    `json:"grade_level"`
	ClassroomID string    `json:"classroom_id"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// ContentStats summarizes tracked content by processing state.
type ContentStats struct {
	TotalItems  int            `json:"total_items"`
	ByState     map[string]int `json:"by_state"`
	LastUpdated time.Time      `json:"last_updated"`
}
