package models

import (
	"time"
)

// ProcessingState is the lifecycle state of one content item's analysis run.
type ProcessingState string

const (
	StateNone     ProcessingState = "none"
	StatePending  ProcessingState = "pending"
	StateRunning  ProcessingState = "running"
	StateComplete ProcessingState = "complete"
	StateFailed   ProcessingState = "failed"
)

// ProcessingStatus records per-item processing state. One record per content
// item, written only by the analyzer, polled by consumers until a terminal
// state is reached.
type ProcessingStatus struct {
	ContentID string          `json:"content_id"`
	State     ProcessingState `json:"state"`
	Progress  int             `json:"progress"` // 0-100
	Error     string          `json:"error,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewProcessingStatus creates a pending status for a fresh run.
func NewProcessingStatus(contentID string) *ProcessingStatus {
	return &ProcessingStatus{
		ContentID: contentID,
		State:     StatePending,
		Progress:  0,
		UpdatedAt: time.Now(),
	}
}

// MarkRunning transitions the status to running with the given progress.
func (s *ProcessingStatus) MarkRunning(progress int) {
	s.State = StateRunning
	s.Progress = progress
	s.Error = ""
	s.UpdatedAt = time.Now()
}

// MarkComplete transitions the status to complete at full progress.
func (s *ProcessingStatus) MarkComplete() {
	s.State = StateComplete
	s.Progress = 100
	s.Error = ""
	s.UpdatedAt = time.Now()
}

// MarkFailed transitions the status to failed with the error detail.
func (s *ProcessingStatus) MarkFailed(errMsg string) {
	s.State = StateFailed
	s.Error = errMsg
	s.UpdatedAt = time.Now()
}

// InFlight reports whether a run is currently pending or running.
func (s *ProcessingStatus) InFlight() bool {
	return s.State == StatePending || s.State == StateRunning
}

// IsTerminal reports whether the run has finished, successfully or not.
func (s *ProcessingStatus) IsTerminal() bool {
	return s.State == StateComplete || s.State == StateFailed
}
