package llm

import (
	"context"
	"fmt"
	"strings"
)

// GeneratorOptions are the fixed generation parameters shared by every call.
type GeneratorOptions struct {
	SystemPrompt string
	Temperature  float32
	MaxTokens    int
}

// Generator binds one provider to the system prompt and exposes the uniform
// "user message in, text out" contract used by the coaching orchestrator.
type Generator struct {
	provider LLMProvider
	opts     GeneratorOptions
}

// NewGenerator wraps provider with the given options.
func NewGenerator(provider LLMProvider, opts GeneratorOptions) *Generator {
	return &Generator{provider: provider, opts: opts}
}

// Generate performs exactly one outbound call and returns the completion text
// unmodified. Every failure is reported as *GenerationError.
func (g *Generator) Generate(ctx context.Context, userMessage string) (string, error) {
	msgs := make([]Message, 0, 2)
	if g.opts.SystemPrompt != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: g.opts.SystemPrompt})
	}
	msgs = append(msgs, Message{Role: RoleUser, Content: userMessage})

	resp, err := g.provider.ChatCompletion(ctx, ChatRequest{
		Messages:    msgs,
		Temperature: g.opts.Temperature,
		MaxTokens:   g.opts.MaxTokens,
	})
	if err != nil {
		return "", &GenerationError{Provider: g.ID(), Err: err}
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", &GenerationError{Provider: g.ID(), Err: ErrEmptyCompletion}
	}
	return resp.Content, nil
}

// ID returns the identity of the wrapped provider.
func (g *Generator) ID() ProviderID { return g.provider.ModelInfo().Provider }

// Model returns the model identifier of the wrapped provider.
func (g *Generator) Model() string { return g.provider.ModelInfo().ID }

// ProviderSettings describes one configured provider.
type ProviderSettings struct {
	ID      ProviderID
	APIKey  string
	Model   string
	BaseURL string
}

// NewProvider builds the adapter matching s.ID.
func NewProvider(ctx context.Context, s ProviderSettings) (LLMProvider, error) {
	switch s.ID {
	case ProviderGroq:
		return NewGroqProvider(s.APIKey, s.Model, s.BaseURL), nil
	case ProviderOpenAI:
		return NewOpenAIProvider(s.APIKey, s.Model, s.BaseURL), nil
	case ProviderGemini:
		return NewGeminiProvider(ctx, s.APIKey, s.Model, s.BaseURL)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", s.ID)
	}
}
