// Package audit records every provider attempt made by the coaching
// orchestrator into SQLite. All operations are append-only.
package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Harsha1029/ai-conversation-coach-backend/internal/domain/coach"
	"github.com/Harsha1029/ai-conversation-coach-backend/internal/infra/eventbus"
	"github.com/Harsha1029/ai-conversation-coach-backend/internal/infra/llm"
)

// ErrNotFound is returned by GetByID for unknown ids.
var ErrNotFound = errors.New("audit: attempt not found")

// DefaultListLimit applies when a non-positive limit is requested.
const DefaultListLimit = 20

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const selectColumns = `SELECT id, request_id, provider, stage, outcome, duration_ms, COALESCE(error, ''), created_at
	FROM generation_attempt`

// Service reads and writes the generation_attempt table.
type Service struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewService creates an audit service. A nil logger discards output.
func NewService(db *sql.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, logger: logger}
}

// Log appends one attempt. ID and CreatedAt are filled in when empty.
func (s *Service) Log(ctx context.Context, a *Attempt) error {
	if a.ID == "" {
		a.ID = newID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	var errText *string
	if a.Error != "" {
		errText = &a.Error
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO generation_attempt (id, request_id, provider, stage, outcome, duration_ms, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.RequestID, string(a.Provider), string(a.Stage), string(a.Outcome),
		a.DurationMS, errText, a.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("audit: insert attempt: %w", err)
	}
	return nil
}

// GetByID returns a single attempt.
func (s *Service) GetByID(ctx context.Context, id string) (*Attempt, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	a, err := scanAttempt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

// ListRecent returns up to limit attempts, newest first.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*Attempt, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("audit: list recent: %w", err)
	}
	return collect(rows)
}

// ListByRequest returns the attempts of one request in the order they ran.
func (s *Service) ListByRequest(ctx context.Context, requestID string) ([]*Attempt, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` WHERE request_id = ? ORDER BY created_at ASC, id ASC`, requestID)
	if err != nil {
		return nil, fmt.Errorf("audit: list by request: %w", err)
	}
	return collect(rows)
}

// Start subscribes to coach.TopicGenerationAttempt and stores each event.
// Runs in the calling goroutine. Launch with: go svc.Start(ctx, bus)
func (s *Service) Start(ctx context.Context, bus eventbus.EventBus) {
	s.Consume(ctx, bus.Subscribe(coach.TopicGenerationAttempt))
}

// Consume stores events from an existing subscription until ctx is done or
// the channel is closed.
func (s *Service) Consume(ctx context.Context, events <-chan eventbus.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			s.handle(ctx, evt)
		}
	}
}

func (s *Service) handle(ctx context.Context, evt eventbus.Event) {
	var attempt coach.AttemptEvent
	switch p := evt.Payload.(type) {
	case coach.AttemptEvent:
		attempt = p
	case *coach.AttemptEvent:
		if p == nil {
			return
		}
		attempt = *p
	default:
		s.logger.Warn("audit: unexpected payload", zap.String("topic", evt.Topic))
		return
	}

	if err := s.Log(ctx, FromEvent(attempt)); err != nil {
		s.logger.Error("audit: store attempt failed",
			zap.String("request_id", attempt.RequestID),
			zap.String("provider", string(attempt.Provider)),
			zap.Error(err),
		)
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAttempt(row scanner) (*Attempt, error) {
	var (
		a                        Attempt
		provider, stage, outcome string
		created                  string
	)
	if err := row.Scan(&a.ID, &a.RequestID, &provider, &stage, &outcome, &a.DurationMS, &a.Error, &created); err != nil {
		return nil, err
	}
	ts, err := time.Parse(timeLayout, created)
	if err != nil {
		return nil, fmt.Errorf("audit: parse created_at %q: %w", created, err)
	}
	a.Provider = llm.ProviderID(provider)
	a.Stage = coach.Stage(stage)
	a.Outcome = coach.Outcome(outcome)
	a.CreatedAt = ts
	return &a, nil
}

func collect(rows *sql.Rows) ([]*Attempt, error) {
	defer rows.Close()
	out := make([]*Attempt, 0)
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("audit: iterate rows: %w", err)
	}
	return out, nil
}

// newID uses UUID v7 for time-ordered ids.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
