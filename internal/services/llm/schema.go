package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/doceo/internal/models"
)

// validate is shared across decodes; validator.Validate is safe for
// concurrent use.
var validate = validator.New()

var fencePattern = regexp.MustCompile(`(?s)^\s*` + "```" + `(?:json|JSON)?\s*\n?(.*?)\n?\s*` + "```" + `\s*$`)

// CleanMarkdownFences removes markdown code fences that models wrap around
// JSON output.
func CleanMarkdownFences(s string) string {
	s = strings.TrimSpace(s)

	if matches := fencePattern.FindStringSubmatch(s); len(matches) > 1 {
		s = matches[1]
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}

// DecodeStructured parses a model response into the target schema type and
// validates it with go-playground/validator struct tags. Enum fields use
// oneof tags, so any out-of-enum value fails with SchemaValidationError
// instead of being silently coerced.
func DecodeStructured[T any](response string) (*T, error) {
	cleaned := CleanMarkdownFences(response)

	var target T
	if err := json.Unmarshal([]byte(cleaned), &target); err != nil {
		return nil, &models.SchemaValidationError{Err: fmt.Errorf("failed to parse JSON: %w", err)}
	}

	if err := validate.Struct(&target); err != nil {
		return nil, &models.SchemaValidationError{Err: err}
	}

	return &target, nil
}
