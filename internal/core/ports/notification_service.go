package ports

import (
	"context"

	"github.com/focusflow/focusflow-api/internal/core/domain"
)

// NotificationEvent is the DTO producers hand to the dispatcher. The
// dispatcher shards by UserID so one user's notifications stay ordered.
type NotificationEvent struct {
	UserID    string
	Type      domain.NotificationType
	Title     string
	Message   string
	Severity  domain.Severity
	ActionURL string
}

// NotificationService owns the notification ledger and its settings.
type NotificationService interface {
	// Post creates a ledger entry when the user's settings allow the event
	// type. The best-effort push side channel never fails the call.
	Post(ctx context.Context, event NotificationEvent) (*domain.Notification, error)
	List(ctx context.Context, userID string, limit int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	ClearAll(ctx context.Context, userID string) error
	Settings(ctx context.Context, userID string) (domain.NotificationSettings, error)
	UpdateSettings(ctx context.Context, userID string, s domain.NotificationSettings) (domain.NotificationSettings, error)
}
