package extractor

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// extractHTML converts an HTML document to markdown-flavored plain text.
// Script, style, and navigation chrome are stripped before conversion.
func (s *Service) extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, nav, header, footer, noscript, iframe").Remove()

	body := doc.Find("body")
	html, err := body.Html()
	if err != nil || strings.TrimSpace(html) == "" {
		html = string(data)
	}

	converter := md.NewConverter("", true, nil)
	converted, err := converter.ConvertString(html)
	if err != nil {
		s.logger.Warn().Err(err).Msg("HTML to markdown conversion failed, using fallback")
		return stripHTMLTags(string(data)), nil
	}

	if strings.TrimSpace(converted) == "" {
		return stripHTMLTags(string(data)), nil
	}

	return converted, nil
}

var tagRe = regexp.MustCompile(`<[^>]*>`)
var spaceRe = regexp.MustCompile(`\s+`)

// stripHTMLTags removes basic HTML tags for fallback cases
func stripHTMLTags(htmlStr string) string {
	stripped := tagRe.ReplaceAllString(htmlStr, "")
	cleaned := spaceRe.ReplaceAllString(stripped, " ")

	// Decode HTML entities (basic set)
	cleaned = strings.ReplaceAll(cleaned, "&amp;", "&")
	cleaned = strings.ReplaceAll(cleaned, "&lt;", "<")
	cleaned = strings.ReplaceAll(cleaned, "&gt;", ">")
	cleaned = strings.ReplaceAll(cleaned, "&quot;", "\"")
	cleaned = strings.ReplaceAll(cleaned, "&#39;", "'")
	cleaned = strings.ReplaceAll(cleaned, "&nbsp;", " ")

	return strings.TrimSpace(cleaned)
}
