package coach

import (
	"context"
	"errors"
	"sync"

	"github.com/Harsha1029/ai-conversation-coach-backend/internal/infra/llm"
)

// fakeGenerator records calls and returns a canned reply or error.
type fakeGenerator struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int
	block bool
}

func (f *fakeGenerator) Generate(ctx context.Context, _ string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeGenerator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func succeeding(reply string) *fakeGenerator { return &fakeGenerator{reply: reply} }

func failing(id llm.ProviderID) *fakeGenerator {
	return &fakeGenerator{err: &llm.GenerationError{Provider: id, Err: errors.New("boom")}}
}

// recordingPublisher collects published attempt events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []AttemptEvent
}

func (p *recordingPublisher) Publish(topic string, payload any) {
	if topic != TopicGenerationAttempt {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, payload.(AttemptEvent))
}
