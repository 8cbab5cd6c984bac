package coach

import (
	"time"

	"github.com/Harsha1029/ai-conversation-coach-backend/internal/infra/llm"
)

// TopicGenerationAttempt is published once per provider attempt.
const TopicGenerationAttempt = "coach.generation.attempt"

// Stage tells whether an attempt used the router's choice or the fallback list.
type Stage string

const (
	StagePreferred Stage = "preferred"
	StageFallback  Stage = "fallback"
)

// Outcome of a single provider attempt.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
)

// AttemptEvent is the payload published on TopicGenerationAttempt.
// It carries no message content.
type AttemptEvent struct {
	RequestID string
	Provider  llm.ProviderID
	Stage     Stage
	Outcome   Outcome
	Duration  time.Duration
	Error     string
	At        time.Time
}

// Publisher is the subset of eventbus.EventBus the service needs.
type Publisher interface {
	Publish(topic string, payload any)
}
