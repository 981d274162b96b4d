package ports

import (
	"context"

	"github.com/focusflow/focusflow-api/internal/core/domain"
)

// Caller identifies the authenticated user on whose behalf an operation runs.
// Email is carried separately from Tier because the admin allow-list is
// keyed by identity, not plan.
type Caller struct {
	UserID string
	Email  string
	Tier   domain.Tier
}

// StartSessionInput carries the parameters for starting a focus session.
type StartSessionInput struct {
	Caller         Caller
	PlannedMinutes int
}

// StartSessionResult is returned by StartSession. When the gate blocks the
// start, Session is nil and Decision carries the upgrade prompt; a blocked
// start is a normal outcome, not an error.
type StartSessionResult struct {
	Decision domain.GateDecision
	Session  *domain.FocusSession
}

// SessionService defines use-case operations for focus sessions.
type SessionService interface {
	// CheckSessionStart runs the session-limit gate without mutating usage:
	// "may I start" is separate from "record that I started".
	CheckSessionStart(ctx context.Context, caller Caller) (domain.GateDecision, error)
	// StartSession re-runs the gate, atomically charges the quota and
	// creates the session record.
	StartSession(ctx context.Context, input StartSessionInput) (*StartSessionResult, error)
	CompleteSession(ctx context.Context, caller Caller, sessionID string) (*domain.FocusSession, error)
	AbandonSession(ctx context.Context, caller Caller, sessionID string) (*domain.FocusSession, error)
	ListSessions(ctx context.Context, caller Caller, limit int) ([]*domain.FocusSession, error)
}
