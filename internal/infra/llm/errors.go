package llm

import (
	"errors"
	"fmt"
)

// ErrEmptyCompletion is returned when a provider answers without any text.
var ErrEmptyCompletion = errors.New("empty completion")

// GenerationError is the single failure signal of a provider adapter.
// Transport, auth, quota and malformed-reply failures all collapse into it.
type GenerationError struct {
	Provider ProviderID
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: generation failed: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// statusError carries a non-2xx HTTP reply from an OpenAI-compatible API.
type statusError struct {
	StatusCode int
	Message    string
}

func (e *statusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}
