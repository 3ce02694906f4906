package analyzer

import (
	"context"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/ternarybob/doceo/internal/services/llm"
)

// ProcessRequest describes one content item to analyze.
type ProcessRequest struct {
	ContentID   string `json:"content_id"`
	SourceURL   string `json:"source_url"`
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	GradeLevel  string `json:"grade_level"`
	ClassroomID string `json:"classroom_id"`
}

// Service orchestrates one analysis run per content item: extract text,
// invoke the model once for the full bundle, embed best-effort, then
// wholesale-replace the stored bundle. It is the only writer of
// ContentAnalysis and ProcessingStatus records.
type Service struct {
	storage   interfaces.StorageManager
	llmSvc    interfaces.LLMService
	embedder  interfaces.EmbeddingService
	extractor interfaces.TextExtractor
	logger    arbor.ILogger

	deadline      time.Duration
	maxInputChars int

	// At most one in-flight run per content ID. Concurrent runs would race
	// on the wholesale replace and could leave a complete status pointing at
	// a stale bundle.
	mu       sync.Mutex
	inflight map[string]struct{}
	wg       sync.WaitGroup
}

// NewService creates the analysis orchestrator. The embedder may be nil, in
// which case bundles are stored without embeddings.
func NewService(
	storage interfaces.StorageManager,
	llmSvc interfaces.LLMService,
	embedder interfaces.EmbeddingService,
	textExtractor interfaces.TextExtractor,
	config *common.AnalyzerConfig,
	logger arbor.ILogger,
) *Service {
	deadline, err := time.ParseDuration(config.RunDeadline)
	if err != nil || deadline <= 0 {
		deadline = 10 * time.Minute
	}

	maxInputChars := config.MaxInputChars
	if maxInputChars <= 0 {
		maxInputChars = 60000
	}

	return &Service{
		storage:       storage,
		llmSvc:        llmSvc,
		embedder:      embedder,
		extractor:     textExtractor,
		logger:        logger,
		deadline:      deadline,
		maxInputChars: maxInputChars,
		inflight:      make(map[string]struct{}),
	}
}

// StartProcessing registers the content item, sets its status to pending,
// and launches the analysis run in the background. A request for an item
// whose prior run is still pending or running is rejected with
// models.ErrAlreadyProcessing rather than started as a second run.
func (s *Service) StartProcessing(req *ProcessRequest) error {
	s.mu.Lock()
	if _, active := s.inflight[req.ContentID]; active {
		s.mu.Unlock()
		return models.ErrAlreadyProcessing
	}

	// Persisted in-flight state from a previous process is also rejected;
	// the janitor fails runs that exceed their deadline.
	status, err := s.storage.StatusStorage().GetStatus(req.ContentID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if status.InFlight() {
		s.mu.Unlock()
		return models.ErrAlreadyProcessing
	}

	s.inflight[req.ContentID] = struct{}{}
	s.mu.Unlock()

	item := &models.ContentItem{
		ID:          req.ContentID,
		SourceURL:   req.SourceURL,
		Title:       req.Title,
		Subject:     req.Subject,
		GradeLevel:  req.GradeLevel,
		ClassroomID: req.ClassroomID,
	}
	if existing, err := s.storage.ContentStorage().GetContentItem(req.ContentID); err == nil {
		item.UploadedAt = existing.UploadedAt
	}
	if err := s.storage.ContentStorage().SaveContentItem(item); err != nil {
		s.release(req.ContentID)
		return err
	}

	if err := s.storage.StatusStorage().SaveStatus(models.NewProcessingStatus(req.ContentID)); err != nil {
		s.release(req.ContentID)
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.release(req.ContentID)

		ctx, cancel := context.WithTimeout(context.Background(), s.deadline)
		defer cancel()

		s.run(ctx, req)
	}()

	return nil
}

// GetStatus returns the processing status for the content ID. Unknown IDs
// yield {state: none}; safe to poll arbitrarily often.
func (s *Service) GetStatus(contentID string) (*models.ProcessingStatus, error) {
	return s.storage.StatusStorage().GetStatus(contentID)
}

// Wait blocks until all in-flight runs complete. Used by graceful shutdown
// and tests.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) release(contentID string) {
	s.mu.Lock()
	delete(s.inflight, contentID)
	s.mu.Unlock()
}

// run executes one analysis pass. Extraction and model failures are
// terminal: status becomes failed and no partial bundle is written.
// Embedding failures degrade related-content lookup only.
func (s *Service) run(ctx context.Context, req *ProcessRequest) {
	logger := s.logger
	logger.Info().
		Str("content_id", req.ContentID).
		Str("source_url", req.SourceURL).
		Msg("Starting content analysis run")

	status, err := s.storage.StatusStorage().GetStatus(req.ContentID)
	if err != nil {
		logger.Error().Err(err).Str("content_id", req.ContentID).Msg("Failed to load status for run")
		return
	}

	status.MarkRunning(0)
	if err := s.storage.StatusStorage().SaveStatus(status); err != nil {
		logger.Error().Err(err).Str("content_id", req.ContentID).Msg("Failed to persist running status")
		return
	}

	// Step 1: extract text
	text, err := s.extractor.Extract(ctx, req.SourceURL)
	if err != nil {
		s.failRun(status, err, "Text extraction failed")
		return
	}
	if len(text) > s.maxInputChars {
		text = text[:s.maxInputChars]
	}
	s.advance(status, 25)

	// Step 2: single structured model call for the full bundle
	messages := buildAnalysisMessages(req.Title, req.Subject, req.GradeLevel, text)
	response, err := s.llmSvc.Chat(ctx, messages)
	if err != nil {
		s.failRun(status, err, "Model invocation failed")
		return
	}

	schema, err := llm.DecodeStructured[analysisSchema](response)
	if err != nil {
		s.failRun(status, err, "Model response failed schema validation")
		return
	}

	questions, err := toQuestions(schema.PracticeQuestions)
	if err != nil {
		s.failRun(status, err, "Generated questions failed validation")
		return
	}
	s.advance(status, 60)

	// Step 3: best-effort embedding
	var embedding []float32
	if s.embedder != nil {
		terms := make([]string, 0, len(schema.KeyConcepts))
		for _, concept := range schema.KeyConcepts {
			terms = append(terms, concept.Term)
		}
		input := buildEmbeddingInput(req.Title, schema.Summaries.Detailed, terms)

		embedding, err = s.embedder.Embed(ctx, input)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("content_id", req.ContentID).
				Msg("Embedding generation failed, storing bundle without embedding")
			embedding = nil
		}
	}
	s.advance(status, 85)

	// Step 4: wholesale-replace the bundle, then complete the status
	analysis := &models.ContentAnalysis{
		ContentID:                   req.ContentID,
		Summaries:                   schema.Summaries,
		KeyConcepts:                 schema.KeyConcepts,
		PracticeQuestions:           questions,
		Topics:                      schema.Topics,
		Prerequisites:               schema.Prerequisites,
		LearningObjectives:          schema.LearningObjectives,
		Embedding:                   embedding,
		DifficultyLevel:             schema.DifficultyLevel,
		EstimatedReadingTimeMinutes: schema.EstimatedReadingTimeMinutes,
		ProcessedAt:                 time.Now(),
	}

	if err := s.storage.AnalysisStorage().SaveAnalysis(analysis); err != nil {
		s.failRun(status, err, "Failed to persist analysis bundle")
		return
	}

	status.MarkComplete()
	if err := s.storage.StatusStorage().SaveStatus(status); err != nil {
		logger.Error().Err(err).Str("content_id", req.ContentID).Msg("Failed to persist complete status")
		return
	}

	logger.Info().
		Str("content_id", req.ContentID).
		Int("key_concepts", len(analysis.KeyConcepts)).
		Int("practice_questions", len(analysis.PracticeQuestions)).
		Bool("has_embedding", analysis.HasEmbedding()).
		Msg("Content analysis run completed")
}

func (s *Service) advance(status *models.ProcessingStatus, progress int) {
	status.MarkRunning(progress)
	if err := s.storage.StatusStorage().SaveStatus(status); err != nil {
		s.logger.Warn().Err(err).Str("content_id", status.ContentID).Msg("Failed to persist progress update")
	}
}

func (s *Service) failRun(status *models.ProcessingStatus, cause error, msg string) {
	s.logger.Error().
		Err(cause).
		Str("content_id", status.ContentID).
		Msg(msg)

	status.MarkFailed(cause.Error())
	if err := s.storage.StatusStorage().SaveStatus(status); err != nil {
		s.logger.Error().Err(err).Str("content_id", status.ContentID).Msg("Failed to persist failed status")
	}
}
