package coach

import (
	"context"
	"reflect"
	"testing"

	"github.com/Harsha1029/ai-conversation-coach-backend/internal/infra/llm"
)

type modelGenerator struct{ model string }

func (m modelGenerator) Generate(context.Context, string) (string, error) { return "", nil }
func (m modelGenerator) Model() string                                   { return m.model }

func TestRegistry_OrderedFollowsFallbackOrder(t *testing.T) {
	t.Parallel()

	r := registryWith(llm.ProviderGemini, llm.ProviderGroq, llm.ProviderOpenAI)
	want := []llm.ProviderID{llm.ProviderGroq, llm.ProviderOpenAI, llm.ProviderGemini}
	if got := r.Ordered(); !reflect.DeepEqual(got, want) {
		t.Errorf("Ordered() = %v; want %v", got, want)
	}
}

func TestRegistry_SkipsNilAndUnavailable(t *testing.T) {
	t.Parallel()

	r := NewRegistry(map[llm.ProviderID]TextGenerator{
		llm.ProviderGroq:   nil,
		llm.ProviderGemini: succeeding("g"),
	})
	if r.Available(llm.ProviderGroq) {
		t.Error("nil generator must not be available")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d; want 1", r.Len())
	}
	if _, found := r.Get(llm.ProviderOpenAI); found {
		t.Error("unconfigured provider must not be found")
	}
}

func TestRegistry_CopiesInput(t *testing.T) {
	t.Parallel()

	in := map[llm.ProviderID]TextGenerator{llm.ProviderGroq: succeeding("g")}
	r := NewRegistry(in)
	in[llm.ProviderOpenAI] = succeeding("o")
	if r.Available(llm.ProviderOpenAI) {
		t.Error("registry must not observe caller mutations")
	}
}

func TestRegistry_Statuses(t *testing.T) {
	t.Parallel()

	r := NewRegistry(map[llm.ProviderID]TextGenerator{
		llm.ProviderOpenAI: modelGenerator{model: "gpt-4o-mini"},
	})
	want := []ProviderStatus{
		{ID: llm.ProviderGroq, Available: false},
		{ID: llm.ProviderOpenAI, Model: "gpt-4o-mini", Available: true},
		{ID: llm.ProviderGemini, Available: false},
	}
	if got := r.Statuses(); !reflect.DeepEqual(got, want) {
		t.Errorf("Statuses() = %+v; want %+v", got, want)
	}
}
