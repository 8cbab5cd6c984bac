package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Harsha1029/ai-conversation-coach-backend/internal/api"
	"github.com/Harsha1029/ai-conversation-coach-backend/internal/domain/audit"
	"github.com/Harsha1029/ai-conversation-coach-backend/internal/domain/coach"
	"github.com/Harsha1029/ai-conversation-coach-backend/internal/infra/config"
	"github.com/Harsha1029/ai-conversation-coach-backend/internal/infra/eventbus"
	"github.com/Harsha1029/ai-conversation-coach-backend/internal/infra/llm"
	"github.com/Harsha1029/ai-conversation-coach-backend/internal/infra/sqlite"
)

// app is the fully wired backend.
type app struct {
	handler http.Handler
	service *coach.Service
	// closers are released in order on shutdown.
	closers []io.Closer
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// newApp builds providers, the orchestrator, the optional audit trail and
// the HTTP router. The audit consumer outlives ctx: it drains the bus and
// stops when the bus closer runs, before the database is closed.
func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	registry, err := buildRegistry(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := []coach.Option{
		coach.WithAttemptTimeout(cfg.ProviderTimeout),
		coach.WithLogger(logger.Named("coach")),
	}

	var closers []io.Closer
	if cfg.AuditDBPath != "" {
		db, err := sqlite.Open(ctx, cfg.AuditDBPath)
		if err != nil {
			return nil, fmt.Errorf("open audit database: %w", err)
		}
		bus := eventbus.New()
		auditSvc := audit.NewService(db, logger.Named("audit"))
		events := bus.Subscribe(coach.TopicGenerationAttempt)
		drained := make(chan struct{})
		go func() {
			defer close(drained)
			auditSvc.Consume(context.Background(), events)
		}()

		opts = append(opts, coach.WithPublisher(bus))
		closers = append(closers,
			closerFunc(func() error {
				bus.Close()
				<-drained
				return nil
			}),
			db,
		)
		logger.Info("audit trail enabled", zap.String("path", cfg.AuditDBPath))
	}

	svc := coach.NewService(registry, opts...)
	logProviders(logger, registry)

	return &app{
		handler: api.NewRouter(svc, logger, cfg.AllowedOrigins),
		service: svc,
		closers: closers,
	}, nil
}

// buildRegistry creates one generator per provider with an API key.
func buildRegistry(ctx context.Context, cfg config.Config) (*coach.Registry, error) {
	settings := []struct {
		id  llm.ProviderID
		cfg config.ProviderConfig
	}{
		{llm.ProviderGroq, cfg.Groq},
		{llm.ProviderOpenAI, cfg.OpenAI},
		{llm.ProviderGemini, cfg.Gemini},
	}

	opts := llm.GeneratorOptions{
		SystemPrompt: coach.SystemPrompt,
		Temperature:  cfg.Temperature,
		MaxTokens:    cfg.MaxTokens,
	}

	generators := make(map[llm.ProviderID]coach.TextGenerator, len(settings))
	for _, s := range settings {
		if !s.cfg.Enabled() {
			continue
		}
		provider, err := llm.NewProvider(ctx, llm.ProviderSettings{
			ID:      s.id,
			APIKey:  s.cfg.APIKey,
			Model:   s.cfg.Model,
			BaseURL: s.cfg.BaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("configure provider %s: %w", s.id, err)
		}
		generators[s.id] = llm.NewGenerator(provider, opts)
	}
	return coach.NewRegistry(generators), nil
}

func logProviders(logger *zap.Logger, registry *coach.Registry) {
	if registry.Len() == 0 {
		logger.Warn("no LLM provider configured; set GROQ_API_KEY, OPENAI_API_KEY or GEMINI_API_KEY")
		return
	}
	for _, st := range registry.Statuses() {
		if st.Available {
			logger.Info("provider enabled", zap.String("provider", string(st.ID)), zap.String("model", st.Model))
		}
	}
}
