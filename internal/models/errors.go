package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the read-side contracts.
var (
	// ErrNotFound indicates an unknown content ID.
	ErrNotFound = errors.New("content not found")

	// ErrNotProcessed indicates an artifact was requested before a
	// successful analysis run exists for the item.
	ErrNotProcessed = errors.New("content not processed")

	// ErrAlreadyProcessing indicates a processing request for an item whose
	// prior run is still pending or running.
	ErrAlreadyProcessing = errors.New("content is already being processed")

	// ErrInvalidInput indicates a malformed caller request: bad enum values,
	// out-of-range counts, or missing required fields.
	ErrInvalidInput = errors.New("invalid input")
)

// ExtractionError indicates the source document was unreachable, unsupported,
// or yielded too little text to analyze.
type ExtractionError struct {
	SourceURL string
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.SourceURL, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// SchemaValidationError indicates the model's response could not be parsed
// or validated against the expected output schema.
type SchemaValidationError struct {
	Err error
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("model response failed schema validation: %v", e.Err)
}

func (e *SchemaValidationError) Unwrap() error {
	return e.Err
}

// ModelInvocationError indicates a transport-level model failure: timeout,
// rate limit, or auth/connectivity problems.
type ModelInvocationError struct {
	Provider string
	Err      error
}

func (e *ModelInvocationError) Error() string {
	return fmt.Sprintf("model invocation failed (%s): %v", e.Provider, e.Err)
}

func (e *ModelInvocationError) Unwrap() error {
	return e.Err
}
