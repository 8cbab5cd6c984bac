// Unit tests for GeminiProvider.
// Uses httptest.NewServer to mock the Gemini generateContent REST endpoint.
package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newGeminiTestProvider(t *testing.T, h http.HandlerFunc) *GeminiProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	p, err := NewGeminiProvider(context.Background(), "gm-test", "gemini-2.5-flash", srv.URL)
	if err != nil {
		t.Fatalf("NewGeminiProvider failed: %v", err)
	}
	return p
}

func TestGeminiProvider_ChatCompletion_Success(t *testing.T) {
	t.Parallel()

	var path string
	var body map[string]any
	p := newGeminiTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Say this calmly."}]},"finishReason":"STOP"}],"usageMetadata":{"totalTokenCount":17}}`)) //nolint:errcheck
	})

	resp, err := p.ChatCompletion(context.Background(), ChatRequest{
		Messages:    []Message{{Role: RoleSystem, Content: "You are a coach."}, {Role: RoleUser, Content: "my partner is upset"}},
		Temperature: 0.7,
		MaxTokens:   800,
	})
	if err != nil {
		t.Fatalf("ChatCompletion failed: %v", err)
	}
	if resp.Content != "Say this calmly." {
		t.Errorf("expected candidate text, got %q", resp.Content)
	}
	if resp.StopReason != "STOP" || resp.Tokens != 17 {
		t.Errorf("unexpected stop/tokens: %q/%d", resp.StopReason, resp.Tokens)
	}
	if !strings.HasSuffix(path, "models/gemini-2.5-flash:generateContent") {
		t.Errorf("unexpected request path %q", path)
	}
	if _, ok := body["systemInstruction"]; !ok {
		t.Errorf("expected systemInstruction in request body, got %v", body)
	}
}

func TestGeminiProvider_ChatCompletion_NoCandidates_ReturnsError(t *testing.T) {
	t.Parallel()

	p := newGeminiTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`)) //nolint:errcheck
	})

	_, err := p.ChatCompletion(context.Background(), ChatRequest{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	if err == nil {
		t.Error("expected error for empty candidates, got nil")
	}
}

func TestGeminiProvider_ChatCompletion_APIError_ReturnsError(t *testing.T) {
	t.Parallel()

	p := newGeminiTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)) //nolint:errcheck
	})

	_, err := p.ChatCompletion(context.Background(), ChatRequest{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	if err == nil {
		t.Fatal("expected error for 400 response, got nil")
	}
	if !strings.HasPrefix(err.Error(), "gemini") {
		t.Errorf("expected provider prefix, got %q", err.Error())
	}
}

func TestGeminiProvider_ChatCompletion_OnlySystemMessage_ReturnsError(t *testing.T) {
	t.Parallel()

	p := &GeminiProvider{model: "gemini-2.5-flash"}
	_, err := p.ChatCompletion(context.Background(), ChatRequest{Messages: []Message{{Role: RoleSystem, Content: "x"}}})
	if err == nil {
		t.Error("expected error when no user content is given, got nil")
	}
}

func TestSplitGeminiMessages(t *testing.T) {
	t.Parallel()

	system, contents := splitGeminiMessages([]Message{
		{Role: RoleSystem, Content: "a"},
		{Role: RoleSystem, Content: "b"},
		{Role: RoleUser, Content: "hello"},
		{Role: RoleAssistant, Content: "hi"},
	})
	if system != "a\n\nb" {
		t.Errorf("system = %q", system)
	}
	if len(contents) != 2 || contents[0].Role != "user" || contents[1].Role != "model" {
		t.Fatalf("unexpected contents: %+v", contents)
	}
	if contents[0].Parts[0].Text != "hello" {
		t.Errorf("unexpected user text %q", contents[0].Parts[0].Text)
	}
}
