package coach

import "errors"

// ValidationError reports a missing or empty required input field.
// No provider is contacted when it is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	// ErrMessageRequired is returned for an empty or missing message.
	ErrMessageRequired = &ValidationError{Message: "Message is required."}

	// ErrScenarioDetailsRequired is returned when only one of scenario/details is given.
	ErrScenarioDetailsRequired = &ValidationError{Message: "Both 'scenario' and 'details' are required."}

	// ErrAllProvidersFailed is returned when every available provider failed
	// or none is configured.
	ErrAllProvidersFailed = errors.New("all providers failed")
)
