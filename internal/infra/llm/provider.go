package llm

import "context"

// LLMProvider is the model-agnostic interface for chat completions.
// Streaming is excluded: coaching replies are returned in one piece.
type LLMProvider interface {
	// ChatCompletion performs a non-streaming chat completion.
	ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	// ModelInfo returns static metadata about the provider/model.
	ModelInfo() ModelMeta
}
