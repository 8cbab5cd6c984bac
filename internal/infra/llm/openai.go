// OpenAI-compatible HTTP adapter.
// OpenAIProvider speaks the Chat Completions wire format, which both OpenAI and
// Groq expose. Endpoint used:
//   - POST {baseURL}/chat/completions: non-streaming chat completion

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	mimeJSON            = "application/json"
	headerContentType   = "Content-Type"
	headerAuthorization = "Authorization"

	DefaultGroqBaseURL   = "https://api.groq.com/openai/v1"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"

	defaultHTTPTimeout = 60 * time.Second
	maxErrorBodyBytes  = 4 << 10
)

// OpenAIProvider implements LLMProvider against an OpenAI-compatible API.
type OpenAIProvider struct {
	id         ProviderID
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAIProvider creates a provider for api.openai.com (or a compatible baseURL).
func NewOpenAIProvider(apiKey, model, baseURL string) *OpenAIProvider {
	return newOpenAICompatible(ProviderOpenAI, apiKey, model, coalesce(baseURL, DefaultOpenAIBaseURL))
}

// NewGroqProvider creates a provider for Groq's OpenAI-compatible endpoint.
func NewGroqProvider(apiKey, model, baseURL string) *OpenAIProvider {
	return newOpenAICompatible(ProviderGroq, apiKey, model, coalesce(baseURL, DefaultGroqBaseURL))
}

func newOpenAICompatible(id ProviderID, apiKey, model, baseURL string) *OpenAIProvider {
	return &OpenAIProvider{
		id:      id,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}
}

// ─── internal wire types ────────────────────────────────────────────────────

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature *float32        `json:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

type openAIErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// ─── LLMProvider implementation ─────────────────────────────────────────────

// ChatCompletion performs a non-streaming chat via POST /chat/completions.
func (p *OpenAIProvider) ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(p.buildChatRequest(req))
	if err != nil {
		return nil, err
	}

	respBody, postErr := p.doPost(ctx, "/chat/completions", body)
	if postErr != nil {
		return nil, postErr
	}
	defer respBody.Close() //nolint:errcheck

	var out openAIChatResponse
	if decodeErr := json.NewDecoder(respBody).Decode(&out); decodeErr != nil {
		return nil, fmt.Errorf("%s: decode chat response: %w", p.id, decodeErr)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("%s: no choices in response", p.id)
	}
	return &ChatResponse{
		Content:    out.Choices[0].Message.Content,
		StopReason: out.Choices[0].FinishReason,
		Tokens:     out.Usage.TotalTokens,
	}, nil
}

func (p *OpenAIProvider) buildChatRequest(req ChatRequest) openAIChatRequest {
	msgs := make([]openAIMessage, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = openAIMessage(m)
	}
	out := openAIChatRequest{
		Model:     coalesce(req.Model, p.model),
		Messages:  msgs,
		MaxTokens: req.MaxTokens,
	}
	if req.Temperature != 0 {
		t := req.Temperature
		out.Temperature = &t
	}
	return out
}

// ModelInfo returns static metadata for this provider/model.
func (p *OpenAIProvider) ModelInfo() ModelMeta {
	return ModelMeta{ID: p.model, Provider: p.id}
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// doPost sends a POST request to baseURL+path and returns the response body.
// Caller is responsible for closing the returned ReadCloser.
func (p *OpenAIProvider) doPost(ctx context.Context, path string, body []byte) (io.ReadCloser, error) {
	url := p.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s post %s: build request: %w", p.id, path, err)
	}
	req.Header.Set(headerContentType, mimeJSON)
	req.Header.Set(headerAuthorization, "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s post %s: %w", p.id, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close() //nolint:errcheck
		return nil, fmt.Errorf("%s post %s: %w", p.id, path, readStatusError(resp))
	}
	return resp.Body, nil
}

// readStatusError extracts the API error message from a failed reply when present.
func readStatusError(resp *http.Response) *statusError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	var apiErr openAIErrorResponse
	if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
		return &statusError{StatusCode: resp.StatusCode, Message: apiErr.Error.Message}
	}
	return &statusError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
}

// coalesce returns val if non-empty, otherwise returns fallback.
func coalesce(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}
