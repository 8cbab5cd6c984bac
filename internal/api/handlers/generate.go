package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Harsha1029/ai-conversation-coach-backend/internal/domain/coach"
)

// CoachService is the orchestrator contract used by GenerateHandler.
// *coach.Service satisfies it.
type CoachService interface {
	Generate(ctx context.Context, in coach.Input) (string, error)
}

// GenerateHandler serves POST /generate.
type GenerateHandler struct {
	service CoachService
}

func NewGenerateHandler(service CoachService) *GenerateHandler {
	return &GenerateHandler{service: service}
}

type generateRequest struct {
	Message  string `json:"message"`
	Scenario string `json:"scenario"`
	Details  string `json:"details"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// errInvalidBody is reported for bodies that are not a JSON object.
const errInvalidBody = "invalid request body"

// Generate always answers 200; failures travel in the "error" key.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	// An empty body is an empty request and fails validation like one.
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusOK, errInvalidBody)
		return
	}

	text, err := h.service.Generate(r.Context(), coach.Input{
		RequestID: middleware.GetReqID(r.Context()),
		Message:   req.Message,
		Scenario:  req.Scenario,
		Details:   req.Details,
	})
	if err != nil {
		writeError(w, http.StatusOK, errorMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{Response: text})
}

// errorMessage maps orchestrator errors to the client-facing text. Provider
// details never reach the client.
func errorMessage(err error) string {
	var verr *coach.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return coach.ErrAllProvidersFailed.Error()
}
