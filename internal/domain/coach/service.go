package coach

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Harsha1029/ai-conversation-coach-backend/internal/infra/llm"
)

// DefaultAttemptTimeout bounds a single provider call.
const DefaultAttemptTimeout = 30 * time.Second

// Service runs the try-preferred-then-fallback state machine for one request.
type Service struct {
	registry *Registry
	router   *Router
	timeout  time.Duration
	logger   *zap.Logger
	events   Publisher
}

// Option customizes the service.
type Option func(*Service)

// WithAttemptTimeout overrides the per-attempt timeout. Zero disables it.
func WithAttemptTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithLogger sets the logger used for attempt logging.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPublisher publishes an AttemptEvent per provider attempt.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.events = p }
}

// WithRoles overrides the router role assignment.
func WithRoles(roles Roles) Option {
	return func(s *Service) { s.router = NewRouter(s.registry, roles) }
}

// NewService creates a Service over registry using DefaultRoles.
func NewService(registry *Registry, opts ...Option) *Service {
	s := &Service{
		registry: registry,
		router:   NewRouter(registry, DefaultRoles()),
		timeout:  DefaultAttemptTimeout,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the provider registry the service routes over.
func (s *Service) Registry() *Registry { return s.registry }

// Generate validates the input, answers greetings directly and otherwise
// returns the first successful completion. Provider failures are never
// returned; the caller sees either a *ValidationError or ErrAllProvidersFailed.
func (s *Service) Generate(ctx context.Context, in Input) (string, error) {
	message, err := in.Prompt()
	if err != nil {
		return "", err
	}
	if IsGreeting(message) {
		return GreetingResponse, nil
	}

	var failed llm.ProviderID
	if id, ok := s.router.Choose(message); ok {
		if text, ok := s.attempt(ctx, in.RequestID, id, StagePreferred, message); ok {
			return text, nil
		}
		failed = id
	}

	for _, id := range s.registry.Ordered() {
		if id == failed {
			continue
		}
		if text, ok := s.attempt(ctx, in.RequestID, id, StageFallback, message); ok {
			return text, nil
		}
	}

	s.logger.Warn("all providers failed",
		zap.String("request_id", in.RequestID),
		zap.Int("available", s.registry.Len()),
	)
	return "", ErrAllProvidersFailed
}

// attempt calls one provider once and reports whether it succeeded.
func (s *Service) attempt(ctx context.Context, requestID string, id llm.ProviderID, stage Stage, message string) (string, bool) {
	gen, ok := s.registry.Get(id)
	if !ok {
		return "", false
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := gen.Generate(callCtx, message)
	elapsed := time.Since(start)

	evt := AttemptEvent{
		RequestID: requestID,
		Provider:  id,
		Stage:     stage,
		Outcome:   OutcomeSuccess,
		Duration:  elapsed,
		At:        start.UTC(),
	}
	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("provider", string(id)),
		zap.String("stage", string(stage)),
		zap.Duration("duration", elapsed),
	}
	if err != nil {
		evt.Outcome = OutcomeError
		evt.Error = err.Error()
		s.logger.Warn("provider attempt failed", append(fields, zap.Error(err))...)
	} else {
		s.logger.Info("provider attempt succeeded", fields...)
	}
	if s.events != nil {
		s.events.Publish(TopicGenerationAttempt, evt)
	}
	return text, err == nil
}
