package coach

import (
	"strings"
)

// Input is one coaching request. Either Message or Scenario+Details is used.
type Input struct {
	RequestID string
	Message   string
	Scenario  string
	Details   string
}

// Prompt validates the input and returns the trimmed user message sent to providers.
func (in Input) Prompt() (string, error) {
	if msg := strings.TrimSpace(in.Message); msg != "" {
		return msg, nil
	}

	scenario := strings.TrimSpace(in.Scenario)
	details := strings.TrimSpace(in.Details)
	switch {
	case scenario == "" && details == "":
		return "", ErrMessageRequired
	case scenario == "" || details == "":
		return "", ErrScenarioDetailsRequired
	}
	return "Scenario: " + scenario + "\nDetails: " + details, nil
}

// IsGreeting reports whether message is a bare greeting ("hi", "hello", "hey").
func IsGreeting(message string) bool {
	_, ok := greetings[strings.ToLower(strings.TrimSpace(message))]
	return ok
}
