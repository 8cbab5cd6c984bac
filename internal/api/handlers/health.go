package handlers

import (
	"net/http"

	"github.com/Harsha1029/ai-conversation-coach-backend/internal/domain/coach"
)

// statusMessage is returned by GET /.
const statusMessage = "AI Conversation Coach Backend Running"

// ProviderLister reports configured providers. *coach.Registry satisfies it.
type ProviderLister interface {
	Statuses() []coach.ProviderStatus
}

// StatusHandler serves the liveness and provider listing endpoints.
type StatusHandler struct {
	providers ProviderLister
}

func NewStatusHandler(providers ProviderLister) *StatusHandler {
	return &StatusHandler{providers: providers}
}

// Home handles GET /.
func (h *StatusHandler) Home(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": statusMessage})
}

// Providers handles GET /providers. It reports configuration only and makes
// no outbound calls.
func (h *StatusHandler) Providers(w http.ResponseWriter, _ *http.Request) {
	statuses := []coach.ProviderStatus{}
	if h.providers != nil {
		statuses = h.providers.Statuses()
	}
	writeJSON(w, http.StatusOK, map[string]any{"providers": statuses})
}
