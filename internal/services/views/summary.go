package views

import (
	"fmt"
	"strings"

	"github.com/ternarybob/doceo/internal/models"
)

// Summary types
const (
	SummaryTypeShort    = "short"
	SummaryTypeBullets  = "bullets"
	SummaryTypeDetailed = "detailed"
)

// GenerateSummary returns the pre-generated summary at the requested
// granularity with a deterministically computed word count and reading time
// (200 words per minute, rounded up).
func (s *Service) GenerateSummary(contentID, summaryType string) (*models.SummaryView, error) {
	analysis, err := s.completedAnalysis(contentID)
	if err != nil {
		return nil, err
	}

	var content string
	switch summaryType {
	case SummaryTypeShort:
		content = analysis.Summaries.Short
	case SummaryTypeBullets:
		content = analysis.Summaries.Bullets
	case SummaryTypeDetailed:
		content = analysis.Summaries.Detailed
	default:
		return nil, fmt.Errorf("%w: summary type '%s' must be short, bullets, or detailed", models.ErrInvalidInput, summaryType)
	}

	wordCount := countWords(content)

	return &models.SummaryView{
		Content:            content,
		WordCount:          wordCount,
		KeyPoints:          bulletLines(analysis.Summaries.Bullets),
		ReadingTimeMinutes: readingTimeMinutes(wordCount),
	}, nil
}

// countWords counts whitespace-separated tokens.
func countWords(text string) int {
	return len(strings.Fields(text))
}

// readingTimeMinutes is ceil(wordCount / 200).
func readingTimeMinutes(wordCount int) int {
	if wordCount == 0 {
		return 0
	}
	return (wordCount + 199) / 200
}

// bulletLines splits the bullets summary into individual points, stripping
// list markers.
func bulletLines(bullets string) []string {
	points := []string{}
	for _, line := range strings.Split(bullets, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		line = strings.TrimPrefix(line, "• ")
		if line != "" {
			points = append(points, line)
		}
	}
	return points
}
