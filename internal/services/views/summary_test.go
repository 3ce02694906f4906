package views

import (
	"errors"
	"strings"
	"testing"

	"github.com/ternarybob/doceo/internal/models"
)

func TestGenerateSummaryGranularities(t *testing.T) {
	svc, storage := newTestService(t)
	seedSample(t, storage, "content_1")

	short, err := svc.GenerateSummary("content_1", SummaryTypeShort)
	if err != nil {
		t.Fatalf("Failed to generate short summary: %v", err)
	}
	if !strings.Contains(short.Content, "glucose") {
		t.Errorf("Unexpected short summary: %q", short.Content)
	}

	detailed, err := svc.GenerateSummary("content_1", SummaryTypeDetailed)
	if err != nil {
		t.Fatalf("Failed to generate detailed summary: %v", err)
	}
	if detailed.WordCount <= short.WordCount {
		t.Errorf("Expected detailed summary to have more words than short (%d vs %d)", detailed.WordCount, short.WordCount)
	}

	bullets, err := svc.GenerateSummary("content_1", SummaryTypeBullets)
	if err != nil {
		t.Fatalf("Failed to generate bullets summary: %v", err)
	}
	if len(bullets.KeyPoints) != 3 {
		t.Errorf("Expected 3 key points, got %d: %v", len(bullets.KeyPoints), bullets.KeyPoints)
	}
	for _, point := range bullets.KeyPoints {
		if strings.HasPrefix(point, "- ") || strings.HasPrefix(point, "* ") {
			t.Errorf("Expected list markers stripped from key point: %q", point)
		}
	}
}

func TestGenerateSummaryWordCountAndReadingTime(t *testing.T) {
	svc, storage := newTestService(t)

	analysis := sampleAnalysis()
	analysis.Summaries.Detailed = strings.TrimSpace(strings.Repeat("word ", 401))
	seedCompleted(t, storage, &models.ContentItem{ID: "content_1", Title: "T"}, analysis)

	summary, err := svc.GenerateSummary("content_1", SummaryTypeDetailed)
	if err != nil {
		t.Fatalf("Failed to generate summary: %v", err)
	}
	if summary.WordCount != 401 {
		t.Errorf("Expected word count 401, got %d", summary.WordCount)
	}
	// 401 words at 200 wpm rounds up to 3 minutes
	if summary.ReadingTimeMinutes != 3 {
		t.Errorf("Expected reading time 3, got %d", summary.ReadingTimeMinutes)
	}
}

func TestGenerateSummaryInvalidType(t *testing.T) {
	svc, storage := newTestService(t)
	seedSample(t, storage, "content_1")

	_, err := svc.GenerateSummary("content_1", "haiku")
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for unknown summary type, got %v", err)
	}
}
