package ports

import (
	"context"

	"github.com/focusflow/focusflow-api/internal/core/domain"
)

// NotificationRepository defines persistence for the notification ledger.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) error
	// ListByUser returns the user's notifications, most recent first.
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	ClearAll(ctx context.Context, userID string) error
}

// SettingsRepository persists per-user notification settings.
type SettingsRepository interface {
	// Load returns the stored settings merged over defaults; a user with no
	// stored settings (or a blob missing newer keys) gets the defaults.
	Load(ctx context.Context, userID string) (domain.NotificationSettings, error)
	Save(ctx context.Context, userID string, s domain.NotificationSettings) error
}
