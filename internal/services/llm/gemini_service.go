package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// GeminiService implements both the LLMService and EmbeddingService
// interfaces using Google Gemini models.
type GeminiService struct {
	config  *common.GeminiConfig
	logger  arbor.ILogger
	client  *genai.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// convertMessagesToGemini converts []interfaces.Message to Gemini Content
// format. System messages are extracted separately for SystemInstruction.
func convertMessagesToGemini(messages []interfaces.Message) ([]*genai.Content, string, error) {
	if len(messages) == 0 {
		return nil, "", fmt.Errorf("messages cannot be empty")
	}

	hasUserMessage := false
	for _, msg := range messages {
		if msg.Role == "user" {
			hasUserMessage = true
			break
		}
	}
	if !hasUserMessage {
		return nil, "", fmt.Errorf("at least one message must have role 'user'")
	}

	contents := make([]*genai.Content, 0, len(messages))
	var systemText string
	for _, msg := range messages {
		if msg.Role == "system" {
			if systemText == "" {
				systemText = msg.Content
			}
			continue
		}

		var geminiRole string
		switch msg.Role {
		case "assistant":
			geminiRole = genai.RoleModel
		default:
			geminiRole = genai.RoleUser
		}

		part := genai.NewPartFromText(msg.Content)
		contents = append(contents, &genai.Content{
			Role:  geminiRole,
			Parts: []*genai.Part{part},
		})
	}

	return contents, systemText, nil
}

// NewGeminiService creates a new Gemini service instance serving both chat
// completions and embeddings.
func NewGeminiService(geminiConfig *common.GeminiConfig, logger arbor.ILogger) (*GeminiService, error) {
	if geminiConfig.APIKey == "" {
		return nil, fmt.Errorf("Google API key is required for Gemini service (set via GOOGLE_API_KEY, DOCEO_GEMINI_API_KEY, or gemini.api_key in config)")
	}

	if geminiConfig.EmbedModel == "" {
		geminiConfig.EmbedModel = "gemini-embedding-001"
	}
	if geminiConfig.ChatModel == "" {
		geminiConfig.ChatModel = "gemini-2.0-flash"
	}
	if geminiConfig.EmbedDimension <= 0 {
		geminiConfig.EmbedDimension = 768
	}

	timeout, err := time.ParseDuration(geminiConfig.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", geminiConfig.Timeout, err)
	}

	rps := geminiConfig.RateLimit
	if rps <= 0 {
		rps = 2
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  geminiConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	service := &GeminiService{
		config:  geminiConfig,
		logger:  logger,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		timeout: timeout,
	}

	logger.Info().
		Str("embed_model", geminiConfig.EmbedModel).
		Str("chat_model", geminiConfig.ChatModel).
		Int("embed_dimension", geminiConfig.EmbedDimension).
		Dur("timeout", timeout).
		Msg("Gemini service initialized successfully")

	return service, nil
}

// Embed generates an embedding vector for the given text using the
// configured embedding model and output dimensionality.
func (s *GeminiService) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty for embedding generation")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.limiter.Wait(timeoutCtx); err != nil {
		return nil, &models.ModelInvocationError{Provider: "gemini", Err: err}
	}

	startTime := time.Now()
	s.logger.Debug().
		Int("text_length", len(text)).
		Msg("Starting embedding generation")

	embedding, err := s.generateEmbedding(timeoutCtx, text)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int("text_length", len(text)).
			Msg("Embedding generation failed")
		return nil, err
	}

	s.logger.Debug().
		Int("text_length", len(text)).
		Int("embedding_dim", len(embedding)).
		Dur("duration", time.Since(startTime)).
		Msg("Embedding generation completed successfully")

	return embedding, nil
}

// ModelName returns the embedding model identifier.
func (s *GeminiService) ModelName() string {
	return s.config.EmbedModel
}

// Dimension returns the configured embedding vector length.
func (s *GeminiService) Dimension() int {
	return s.config.EmbedDimension
}

// Chat generates a completion response based on the conversation history.
func (s *GeminiService) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("messages cannot be empty for chat completion")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.limiter.Wait(timeoutCtx); err != nil {
		return "", &models.ModelInvocationError{Provider: "gemini", Err: err}
	}

	startTime := time.Now()
	s.logger.Debug().
		Int("message_count", len(messages)).
		Msg("Starting chat completion")

	response, err := s.generateCompletion(timeoutCtx, messages)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int("message_count", len(messages)).
			Msg("Chat completion failed")
		return "", err
	}

	s.logger.Debug().
		Int("message_count", len(messages)).
		Int("response_length", len(response)).
		Dur("duration", time.Since(startTime)).
		Msg("Chat completion completed successfully")

	return response, nil
}

// HealthCheck verifies the Gemini service is operational by probing both
// the embedding and the chat model with short timeouts.
func (s *GeminiService) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("genai client is not initialized")
	}

	if err := s.performEmbeddingHealthCheck(ctx); err != nil {
		return fmt.Errorf("embedding model health check failed: %w", err)
	}
	if err := s.performChatHealthCheck(ctx); err != nil {
		return fmt.Errorf("chat model health check failed: %w", err)
	}

	s.logger.Info().
		Str("embed_model", s.config.EmbedModel).
		Str("chat_model", s.config.ChatModel).
		Msg("Gemini service health check passed")

	return nil
}

func (s *GeminiService) performEmbeddingHealthCheck(ctx context.Context) error {
	healthCheckCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	embedding, err := s.generateEmbedding(healthCheckCtx, "health check probe")
	if err != nil {
		return fmt.Errorf("embedding probe failed: %w", err)
	}
	if len(embedding) == 0 {
		return fmt.Errorf("embedding probe returned empty vector")
	}

	return nil
}

func (s *GeminiService) performChatHealthCheck(ctx context.Context) error {
	healthCheckCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	testMessages := []interfaces.Message{
		{Role: "user", Content: "ping"},
	}

	response, err := s.generateCompletion(healthCheckCtx, testMessages)
	if err != nil {
		return fmt.Errorf("chat probe failed: %w", err)
	}
	if len(strings.TrimSpace(response)) == 0 {
		return fmt.Errorf("chat probe returned empty response")
	}

	return nil
}

// GetMode returns the current operational mode of the LLM service.
func (s *GeminiService) GetMode() interfaces.LLMMode {
	return interfaces.LLMModeCloud
}

// Close releases resources and performs cleanup operations.
func (s *GeminiService) Close() error {
	s.logger.Info().Msg("Closing Gemini service")

	// genai.Client doesn't require explicit Close
	s.client = nil

	return nil
}

// generateEmbedding encapsulates the embedding call with the configured
// output dimensionality.
func (s *GeminiService) generateEmbedding(ctx context.Context, text string) ([]float32, error) {
	outputDim := int32(s.config.EmbedDimension)
	embeddingConfig := &genai.EmbedContentConfig{
		OutputDimensionality: &outputDim,
	}

	result, err := s.client.Models.EmbedContent(ctx, s.config.EmbedModel, []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, embeddingConfig)
	if err != nil {
		return nil, &models.ModelInvocationError{Provider: "gemini", Err: err}
	}

	var embedding []float32
	if result != nil && len(result.Embeddings) > 0 {
		embedding = result.Embeddings[0].Values
	}

	if embedding == nil {
		return nil, &models.ModelInvocationError{Provider: "gemini", Err: fmt.Errorf("no embedding returned from API")}
	}

	if len(embedding) != s.config.EmbedDimension {
		return nil, fmt.Errorf("embedding dimension mismatch: expected %d, got %d", s.config.EmbedDimension, len(embedding))
	}

	return embedding, nil
}

// generateCompletion encapsulates the chat completion call.
func (s *GeminiService) generateCompletion(ctx context.Context, messages []interfaces.Message) (string, error) {
	geminiContents, systemText, err := convertMessagesToGemini(messages)
	if err != nil {
		return "", fmt.Errorf("failed to convert messages to Gemini format: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(s.config.Temperature),
	}

	if systemText != "" {
		config.SystemInstruction = genai.NewContentFromText(systemText, genai.RoleUser)
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.config.ChatModel, geminiContents, config)
	if err != nil {
		return "", &models.ModelInvocationError{Provider: "gemini", Err: err}
	}

	// Iterate candidates until non-empty text is found
	var response strings.Builder
	if resp != nil && len(resp.Candidates) > 0 {
		for _, candidate := range resp.Candidates {
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					response.WriteString(part.Text)
				}
			}
			if response.Len() > 0 {
				break
			}
		}
	}

	if response.Len() == 0 {
		return "", &models.ModelInvocationError{Provider: "gemini", Err: fmt.Errorf("no response generated from chat model")}
	}

	return response.String(), nil
}
