// Package api wires the chi router for the coach backend.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Harsha1029/ai-conversation-coach-backend/internal/api/handlers"
	apmiddleware "github.com/Harsha1029/ai-conversation-coach-backend/internal/api/middleware"
	"github.com/Harsha1029/ai-conversation-coach-backend/internal/domain/coach"
)

// NewRouter creates the chi router with all routes.
// An empty allowedOrigins list allows every origin.
func NewRouter(svc *coach.Service, logger *zap.Logger, allowedOrigins []string) *chi.Mux {
	corsOpts := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{apmiddleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	// Browsers reject "*" on credentialed requests, so any-origin echoes the
	// request origin instead.
	if allowsAnyOrigin(allowedOrigins) {
		corsOpts.AllowOriginFunc = func(*http.Request, string) bool { return true }
	} else {
		corsOpts.AllowedOrigins = allowedOrigins
	}

	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apmiddleware.AccessLog(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(corsOpts))

	statusHandler := handlers.NewStatusHandler(svc.Registry())
	generateHandler := handlers.NewGenerateHandler(svc)

	r.Get("/", statusHandler.Home)                // GET /
	r.Get("/providers", statusHandler.Providers)  // GET /providers
	r.Post("/generate", generateHandler.Generate) // POST /generate

	return r
}

func allowsAnyOrigin(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
