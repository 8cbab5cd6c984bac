package llm

import (
	"context"
	"errors"
	"testing"
)

// stubProvider is a minimal LLMProvider stub; no HTTP needed.
type stubProvider struct {
	id      ProviderID
	content string
	err     error
	last    ChatRequest
}

func (s *stubProvider) ChatCompletion(_ context.Context, req ChatRequest) (*ChatResponse, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &ChatResponse{Content: s.content}, nil
}

func (s *stubProvider) ModelInfo() ModelMeta { return ModelMeta{ID: "stub-model", Provider: s.id} }

func TestGenerator_Generate_InjectsSystemPrompt(t *testing.T) {
	t.Parallel()

	p := &stubProvider{id: ProviderGroq, content: "  raw text\n"}
	g := NewGenerator(p, GeneratorOptions{SystemPrompt: "be a coach", Temperature: 0.7, MaxTokens: 800})

	out, err := g.Generate(context.Background(), "I need to quit")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "  raw text\n" {
		t.Errorf("expected unmodified completion, got %q", out)
	}
	if len(p.last.Messages) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(p.last.Messages))
	}
	if p.last.Messages[0] != (Message{Role: RoleSystem, Content: "be a coach"}) {
		t.Errorf("unexpected system message %+v", p.last.Messages[0])
	}
	if p.last.Messages[1] != (Message{Role: RoleUser, Content: "I need to quit"}) {
		t.Errorf("unexpected user message %+v", p.last.Messages[1])
	}
	if p.last.Temperature != 0.7 || p.last.MaxTokens != 800 {
		t.Errorf("unexpected generation params %+v", p.last)
	}
}

func TestGenerator_Generate_WrapsProviderError(t *testing.T) {
	t.Parallel()

	cause := errors.New("quota exceeded")
	g := NewGenerator(&stubProvider{id: ProviderOpenAI, err: cause}, GeneratorOptions{})

	_, err := g.Generate(context.Background(), "x")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %T (%v)", err, err)
	}
	if genErr.Provider != ProviderOpenAI {
		t.Errorf("expected provider openai, got %q", genErr.Provider)
	}
	if !errors.Is(err, cause) {
		t.Error("expected GenerationError to unwrap to the provider cause")
	}
}

func TestGenerator_Generate_EmptyCompletionIsError(t *testing.T) {
	t.Parallel()

	g := NewGenerator(&stubProvider{id: ProviderGemini, content: "   "}, GeneratorOptions{})

	_, err := g.Generate(context.Background(), "x")
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion, got %v", err)
	}
}

func TestGenerator_Identity(t *testing.T) {
	t.Parallel()

	g := NewGenerator(&stubProvider{id: ProviderGemini}, GeneratorOptions{})
	if g.ID() != ProviderGemini || g.Model() != "stub-model" {
		t.Errorf("unexpected identity %q/%q", g.ID(), g.Model())
	}
}

func TestNewProvider_UnknownID_ReturnsError(t *testing.T) {
	t.Parallel()

	if _, err := NewProvider(context.Background(), ProviderSettings{ID: "anthropic"}); err == nil {
		t.Error("expected error for unknown provider, got nil")
	}
}

func TestNewProvider_BuildsOpenAICompatible(t *testing.T) {
	t.Parallel()

	p, err := NewProvider(context.Background(), ProviderSettings{ID: ProviderGroq, APIKey: "k", Model: "llama-3.1-8b-instant"})
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if p.ModelInfo().Provider != ProviderGroq {
		t.Errorf("expected groq provider, got %+v", p.ModelInfo())
	}
}
