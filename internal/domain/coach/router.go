package coach

import (
	"strings"
	"unicode/utf8"

	"github.com/Harsha1029/ai-conversation-coach-backend/internal/infra/llm"
)

// complexMessageLength is the length above which a scenario counts as complex.
const complexMessageLength = 600

var emotionalKeywords = []string{"breakup", "relationship", "partner", "feel hurt"}

// Roles assigns providers to the three routing heuristics.
type Roles struct {
	Complex   llm.ProviderID // long scenarios
	Emotional llm.ProviderID // emotionally sensitive topics
	Default   llm.ProviderID // everything else, cheapest/fastest
}

// DefaultRoles returns the production role assignment.
func DefaultRoles() Roles {
	return Roles{
		Complex:   llm.ProviderOpenAI,
		Emotional: llm.ProviderGemini,
		Default:   llm.ProviderGroq,
	}
}

// Router picks a preferred provider for a message. It holds no mutable state.
type Router struct {
	registry *Registry
	roles    Roles
}

// NewRouter creates a Router over registry.
func NewRouter(registry *Registry, roles Roles) *Router {
	return &Router{registry: registry, roles: roles}
}

// Choose evaluates the heuristics in order; the first match wins.
// ok is false when no suitable provider is available.
func (r *Router) Choose(message string) (id llm.ProviderID, ok bool) {
	if utf8.RuneCountInString(message) > complexMessageLength && r.registry.Available(r.roles.Complex) {
		return r.roles.Complex, true
	}
	if containsAny(strings.ToLower(message), emotionalKeywords) && r.registry.Available(r.roles.Emotional) {
		return r.roles.Emotional, true
	}
	if r.registry.Available(r.roles.Default) {
		return r.roles.Default, true
	}
	return "", false
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
