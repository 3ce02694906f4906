package llm

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
)

// NewServices creates the generative and embedding services from
// configuration. The generative provider is selected by
// llm.default_provider; embeddings always come from Gemini. When the Gemini
// key is absent under the Claude provider, embeddings are disabled rather
// than failing startup, and analysis runs proceed without vectors.
func NewServices(cfg *common.Config, logger arbor.ILogger) (interfaces.LLMService, interfaces.EmbeddingService, error) {
	logger.Info().Str("provider", string(cfg.LLM.DefaultProvider)).Msg("Initializing LLM service")

	switch cfg.LLM.DefaultProvider {
	case common.LLMProviderGemini:
		gemini, err := NewGeminiService(&cfg.Gemini, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Gemini service: %w", err)
		}
		return gemini, gemini, nil

	case common.LLMProviderClaude:
		claude, err := NewClaudeService(&cfg.Claude, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Claude service: %w", err)
		}

		gemini, err := NewGeminiService(&cfg.Gemini, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Embedding service unavailable; analysis will proceed without embeddings")
			return claude, nil, nil
		}
		return claude, gemini, nil

	default:
		return nil, nil, fmt.Errorf("invalid LLM provider '%s': must be 'claude' or 'gemini'", cfg.LLM.DefaultProvider)
	}
}
