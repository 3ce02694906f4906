package interfaces

import (
	"context"
)

// LLMMode represents the operational mode of the LLM service
type LLMMode string

const (
	// LLMModeCloud indicates the service uses cloud-based LLM APIs
	LLMModeCloud LLMMode = "cloud"

	// LLMModeFake indicates an in-memory implementation used by tests
	LLMModeFake LLMMode = "fake"
)

// Message represents a single message in a model conversation
type Message struct {
	// Role identifies the message sender: "user", "assistant", or "system"
	Role string

	// Content contains the text content of the message
	Content string
}

// LLMService defines the interface for generative model operations. The
// service performs a single bounded attempt per call; retry policy belongs
// to callers. Implementations wrap provider transport failures in
// models.ModelInvocationError so orchestration can distinguish them from
// schema problems.
type LLMService interface {
	// Chat generates a completion for the conversation history. The messages
	// slice should contain the full context in chronological order including
	// system prompts.
	Chat(ctx context.Context, messages []Message) (string, error)

	// HealthCheck verifies the service is operational
	HealthCheck(ctx context.Context) error

	// GetMode returns the operational mode of the service
	GetMode() LLMMode

	// Close releases resources held by the service
	Close() error
}
