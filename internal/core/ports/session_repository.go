package ports

import (
	"context"
	"time"

	"github.com/focusflow/focusflow-api/internal/core/domain"
)

// SessionRepository defines persistence operations for focus sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *domain.FocusSession) error
	// FindByID retrieves a session. When userID is non-empty the query is
	// additionally scoped to that owner.
	FindByID(ctx context.Context, id string, userID string) (*domain.FocusSession, error)
	// Finish sets the terminal status, end time and actual duration.
	Finish(ctx context.Context, id string, status domain.SessionStatus, endedAt time.Time, actualMinutes int) error
	// ListByUser returns the user's sessions, most recent first.
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.FocusSession, error)
}
