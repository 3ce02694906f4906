package interfaces

import (
	"context"
)

// TextExtractor turns a source document reference into normalized plain
// text. It performs no retries; the caller decides whether to retry the
// whole pipeline run. Unreachable, unsupported, or near-empty sources fail
// with models.ExtractionError.
type TextExtractor interface {
	Extract(ctx context.Context, sourceURL string) (string, error)
}
