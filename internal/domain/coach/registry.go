package coach

import (
	"context"

	"github.com/Harsha1029/ai-conversation-coach-backend/internal/infra/llm"
)

// TextGenerator is the single capability the orchestrator needs from a provider.
// *llm.Generator satisfies it.
type TextGenerator interface {
	Generate(ctx context.Context, userMessage string) (string, error)
}

// FallbackOrder is the fixed priority used once the preferred provider failed.
var FallbackOrder = []llm.ProviderID{llm.ProviderGroq, llm.ProviderOpenAI, llm.ProviderGemini}

// ProviderStatus describes one provider slot for reporting.
type ProviderStatus struct {
	ID        llm.ProviderID `json:"id"`
	Model     string         `json:"model,omitempty"`
	Available bool           `json:"available"`
}

// Registry holds the providers configured at startup. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	generators map[llm.ProviderID]TextGenerator
	models     map[llm.ProviderID]string
}

// NewRegistry creates a Registry from the configured generators.
// A provider absent from the map (or mapped to nil) is unavailable.
func NewRegistry(generators map[llm.ProviderID]TextGenerator) *Registry {
	// copy so the caller cannot mutate the registry after startup.
	gs := make(map[llm.ProviderID]TextGenerator, len(generators))
	models := make(map[llm.ProviderID]string, len(generators))
	for id, g := range generators {
		if g == nil {
			continue
		}
		gs[id] = g
		if m, ok := g.(interface{ Model() string }); ok {
			models[id] = m.Model()
		}
	}
	return &Registry{generators: gs, models: models}
}

// Get returns the generator for id and whether it is available.
func (r *Registry) Get(id llm.ProviderID) (TextGenerator, bool) {
	g, ok := r.generators[id]
	return g, ok
}

// Available reports whether id is configured.
func (r *Registry) Available(id llm.ProviderID) bool {
	_, ok := r.generators[id]
	return ok
}

// Ordered returns the available providers in FallbackOrder.
func (r *Registry) Ordered() []llm.ProviderID {
	out := make([]llm.ProviderID, 0, len(r.generators))
	for _, id := range FallbackOrder {
		if r.Available(id) {
			out = append(out, id)
		}
	}
	return out
}

// Len returns the number of available providers.
func (r *Registry) Len() int { return len(r.generators) }

// Statuses lists every known provider slot in FallbackOrder.
func (r *Registry) Statuses() []ProviderStatus {
	out := make([]ProviderStatus, 0, len(FallbackOrder))
	for _, id := range FallbackOrder {
		out = append(out, ProviderStatus{ID: id, Model: r.models[id], Available: r.Available(id)})
	}
	return out
}
