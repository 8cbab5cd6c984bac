// Package llm defines the model-agnostic LLM provider abstraction.
// Adapters (Groq, OpenAI, Gemini) implement LLMProvider so the coaching
// domain is never coupled to a specific vendor.
package llm

// ProviderID names one of the external text-generation services.
type ProviderID string

const (
	ProviderGroq   ProviderID = "groq"
	ProviderOpenAI ProviderID = "openai"
	ProviderGemini ProviderID = "gemini"
)

// Message represents a single turn in a conversation (role + content).
type Message struct {
	Role    string // "system" | "user" | "assistant"
	Content string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatRequest is the input for a non-streaming chat completion.
type ChatRequest struct {
	// Model overrides the provider default when non-empty.
	Model       string
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// ChatResponse is the output from a non-streaming chat completion.
type ChatResponse struct {
	Content    string // The assistant message text.
	StopReason string // Provider finish reason, e.g. "stop" | "length" | "STOP".
	Tokens     int    // Total tokens consumed (prompt + completion).
}

// ModelMeta describes the model / provider identity.
type ModelMeta struct {
	ID       string     // e.g. "llama-3.1-8b-instant", "gpt-4o-mini"
	Provider ProviderID // e.g. "groq", "openai"
}
