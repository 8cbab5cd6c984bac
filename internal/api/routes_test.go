package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/Harsha1029/ai-conversation-coach-backend/internal/domain/coach"
	"github.com/Harsha1029/ai-conversation-coach-backend/internal/infra/llm"
)

type generatorStub struct {
	reply string
	err   error
	calls atomic.Int32
}

func (g *generatorStub) Generate(context.Context, string) (string, error) {
	g.calls.Add(1)
	return g.reply, g.err
}

func newTestRouter(t *testing.T, gens map[llm.ProviderID]coach.TextGenerator, origins []string) http.Handler {
	t.Helper()
	svc := coach.NewService(coach.NewRegistry(gens))
	return NewRouter(svc, zap.NewNop(), origins)
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return out
}

func TestNewRouter_Home(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from /, got %d", rr.Code)
	}
	if got := decodeBody(t, rr)["message"]; got != "AI Conversation Coach Backend Running" {
		t.Errorf("unexpected message %v", got)
	}
	if rr.Header().Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id header")
	}
}

func TestNewRouter_Generate_FallbackHidesFailure(t *testing.T) {
	t.Parallel()
	groq := &generatorStub{err: errors.New("groq down")}
	openai := &generatorStub{reply: "Say this calmly."}
	router := newTestRouter(t, map[llm.ProviderID]coach.TextGenerator{
		llm.ProviderGroq:   groq,
		llm.ProviderOpenAI: openai,
	}, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/generate",
		strings.NewReader(`{"message":"my boss keeps interrupting me"}`)))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	out := decodeBody(t, rr)
	if out["response"] != "Say this calmly." {
		t.Errorf("unexpected body %v", out)
	}
	if groq.calls.Load() != 1 || openai.calls.Load() != 1 {
		t.Errorf("calls groq=%d openai=%d; want 1/1", groq.calls.Load(), openai.calls.Load())
	}
}

func TestNewRouter_Generate_GreetingWithoutProviders(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"message":" Hello "}`)))

	if got := decodeBody(t, rr)["response"]; got != coach.GreetingResponse {
		t.Errorf("unexpected greeting %v", got)
	}
}

func TestNewRouter_Generate_NoProviders(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"message":"I need help"}`)))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := decodeBody(t, rr)["error"]; got != "all providers failed" {
		t.Errorf("unexpected error %v", got)
	}
}

func TestNewRouter_Generate_EmptyMessage(t *testing.T) {
	t.Parallel()
	groq := &generatorStub{reply: "never"}
	router := newTestRouter(t, map[llm.ProviderID]coach.TextGenerator{llm.ProviderGroq: groq}, nil)

	for _, body := range []string{`{}`, ``} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body)))

		if got := decodeBody(t, rr)["error"]; got != "Message is required." {
			t.Errorf("body %q: unexpected error %v", body, got)
		}
	}
	if groq.calls.Load() != 0 {
		t.Error("no provider should be called for an empty message")
	}
}

func TestNewRouter_Providers(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, map[llm.ProviderID]coach.TextGenerator{
		llm.ProviderGemini: &generatorStub{},
	}, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/providers", nil))

	var out struct {
		Providers []coach.ProviderStatus `json:"providers"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Providers) != 3 {
		t.Fatalf("expected 3 provider slots, got %d", len(out.Providers))
	}
	want := []llm.ProviderID{llm.ProviderGroq, llm.ProviderOpenAI, llm.ProviderGemini}
	for i, p := range out.Providers {
		if p.ID != want[i] {
			t.Errorf("providers[%d] = %s; want %s", i, p.ID, want[i])
		}
		if p.Available != (p.ID == llm.ProviderGemini) {
			t.Errorf("providers[%d].Available = %v", i, p.Available)
		}
	}
}

func TestNewRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/generate", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rr.Code)
	}
}

func TestNewRouter_CORS_AllowsAnyOriginByDefault(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/generate", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected Access-Control-Allow-Origin on preflight")
	}
}

func TestNewRouter_CORS_WildcardEchoesOriginWithCredentials(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil, []string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Cookie", "session=abc")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin = %q; want the request origin", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Access-Control-Allow-Credentials = %q; want true", got)
	}
}

func TestNewRouter_CORS_RestrictedOrigins(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, nil, []string{"https://coach.example.com"})

	allowed := httptest.NewRequest(http.MethodGet, "/", nil)
	allowed.Header.Set("Origin", "https://coach.example.com")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, allowed)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://coach.example.com" {
		t.Errorf("allowed origin header = %q", got)
	}

	denied := httptest.NewRequest(http.MethodGet, "/", nil)
	denied.Header.Set("Origin", "https://evil.example.com")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, denied)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin should get no CORS header, got %q", got)
	}
}
