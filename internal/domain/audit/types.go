package audit

import (
	"time"

	"github.com/Harsha1029/ai-conversation-coach-backend/internal/domain/coach"
	"github.com/Harsha1029/ai-conversation-coach-backend/internal/infra/llm"
)

// Attempt is one recorded provider call. Rows are append-only and carry no
// message content.
type Attempt struct {
	ID         string         `json:"id"`
	RequestID  string         `json:"request_id,omitempty"`
	Provider   llm.ProviderID `json:"provider"`
	Stage      coach.Stage    `json:"stage"`
	Outcome    coach.Outcome  `json:"outcome"`
	DurationMS int64          `json:"duration_ms"`
	Error      string         `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// FromEvent converts an orchestrator event into an unsaved Attempt.
func FromEvent(evt coach.AttemptEvent) *Attempt {
	created := evt.At
	if created.IsZero() {
		created = time.Now()
	}
	return &Attempt{
		RequestID:  evt.RequestID,
		Provider:   evt.Provider,
		Stage:      evt.Stage,
		Outcome:    evt.Outcome,
		DurationMS: evt.Duration.Milliseconds(),
		Error:      evt.Error,
		CreatedAt:  created.UTC(),
	}
}
