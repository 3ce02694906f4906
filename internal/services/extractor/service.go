package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

// Service turns a source document reference into normalized plain text.
// HTTP(S) URLs are fetched with a bounded timeout; file paths are read
// directly. Supported formats: HTML, PDF, markdown, and plain text.
type Service struct {
	config     *common.ExtractorConfig
	logger     arbor.ILogger
	httpClient *http.Client
	minLength  int
}

// Compile-time interface assertion
var _ interfaces.TextExtractor = (*Service)(nil)

// NewService creates a new text extraction service
func NewService(config *common.ExtractorConfig, logger arbor.ILogger) *Service {
	timeout, err := time.ParseDuration(config.FetchTimeout)
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
	}

	minLength := config.MinTextLength
	if minLength <= 0 {
		minLength = 100
	}

	return &Service{
		config:     config,
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
		minLength:  minLength,
	}
}

// Extract fetches the source and returns normalized plain text. Sources that
// are unreachable, unsupported, or yield fewer than the configured minimum
// characters fail with models.ExtractionError.
func (s *Service) Extract(ctx context.Context, sourceURL string) (string, error) {
	if strings.TrimSpace(sourceURL) == "" {
		return "", &models.ExtractionError{SourceURL: sourceURL, Err: fmt.Errorf("source URL is empty")}
	}

	data, contentType, err := s.fetch(ctx, sourceURL)
	if err != nil {
		return "", &models.ExtractionError{SourceURL: sourceURL, Err: err}
	}

	text, err := s.extractText(sourceURL, data, contentType)
	if err != nil {
		return "", &models.ExtractionError{SourceURL: sourceURL, Err: err}
	}

	text = normalizeWhitespace(text)

	// Guards against silently analyzing an empty or corrupted document
	if len(text) < s.minLength {
		return "", &models.ExtractionError{
			SourceURL: sourceURL,
			Err:       fmt.Errorf("extracted text too short: %d characters (minimum %d)", len(text), s.minLength),
		}
	}

	s.logger.Debug().
		Str("source_url", sourceURL).
		Int("text_length", len(text)).
		Msg("Text extraction completed")

	return text, nil
}

// fetch retrieves the raw document bytes and a content-type hint.
func (s *Service) fetch(ctx context.Context, sourceURL string) ([]byte, string, error) {
	parsed, err := url.Parse(sourceURL)
	if err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		return s.fetchHTTP(ctx, sourceURL)
	}

	// Local path, with or without a file:// scheme
	path := sourceURL
	if err == nil && parsed.Scheme == "file" {
		path = parsed.Path
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read source file: %w", err)
	}
	return data, "", nil
}

func (s *Service) fetchHTTP(ctx context.Context, sourceURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("source returned status %d", resp.StatusCode)
	}

	maxBytes := s.config.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 20 * 1024 * 1024
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// extractText dispatches on document format.
func (s *Service) extractText(sourceURL string, data []byte, contentType string) (string, error) {
	switch {
	case isPDF(sourceURL, contentType, data):
		return s.extractPDF(data)
	case isHTML(sourceURL, contentType, data):
		return s.extractHTML(data)
	default:
		// Markdown and plain text pass through
		return string(data), nil
	}
}

func isPDF(sourceURL, contentType string, data []byte) bool {
	if strings.Contains(contentType, "application/pdf") {
		return true
	}
	if strings.EqualFold(filepath.Ext(strings.SplitN(sourceURL, "?", 2)[0]), ".pdf") {
		return true
	}
	return len(data) > 4 && string(data[:5]) == "%PDF-"
}

func isHTML(sourceURL, contentType string, data []byte) bool {
	if strings.Contains(contentType, "text/html") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(strings.SplitN(sourceURL, "?", 2)[0]))
	if ext == ".html" || ext == ".htm" {
		return true
	}
	head := strings.ToLower(string(data[:min(len(data), 512)]))
	return strings.Contains(head, "<!doctype html") || strings.Contains(head, "<html")
}

var whitespaceRe = regexp.MustCompile(`[ \t]+`)
var blankLinesRe = regexp.MustCompile(`\n{3,}`)

// normalizeWhitespace collapses runs of spaces and excess blank lines.
func normalizeWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
