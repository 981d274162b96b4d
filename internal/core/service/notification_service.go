package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/focusflow/focusflow-api/internal/api/metrics"
	"github.com/focusflow/focusflow-api/internal/core/domain"
	"github.com/focusflow/focusflow-api/internal/core/ports"
)

// Pusher is the optional best-effort push side channel (desktop/browser
// push). A nil Pusher disables it; pushing errors never fail a Post.
type Pusher interface {
	Push(ctx context.Context, n *domain.Notification) error
}

// NotificationService owns the notification ledger and its settings.
type NotificationService struct {
	repo     ports.NotificationRepository
	settings ports.SettingsRepository
	pusher   Pusher
	logger   zerolog.Logger
	now      func() time.Time
}

func NewNotificationService(
	repo ports.NotificationRepository,
	settings ports.SettingsRepository,
	pusher Pusher,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		repo:     repo,
		settings: settings,
		pusher:   pusher,
		logger:   logger,
		now:      time.Now,
	}
}

// Post creates a ledger entry for the event. Settings are consulted first:
// a type the user has switched off is silently dropped, which is a normal
// outcome rather than an error.
func (s *NotificationService) Post(ctx context.Context, event ports.NotificationEvent) (*domain.Notification, error) {
	settings, err := s.settings.Load(ctx, event.UserID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", event.UserID).Msg("failed to load notification settings, using defaults")
		settings = domain.DefaultNotificationSettings()
	}
	if !settings.AllowsType(event.Type) {
		s.logger.Debug().Str("user_id", event.UserID).Str("type", string(event.Type)).Msg("notification suppressed by settings")
		return nil, nil
	}

	severity := event.Severity
	if severity == "" {
		severity = domain.SeverityInfo
	}

	n := &domain.Notification{
		ID:        domain.NewNotificationID(),
		UserID:    event.UserID,
		Type:      event.Type,
		Title:     event.Title,
		Message:   event.Message,
		Severity:  severity,
		ActionURL: event.ActionURL,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Insert(ctx, n); err != nil {
		return nil, fmt.Errorf("post notification: %w", err)
	}
	metrics.NotificationsPostedTotal.WithLabelValues(string(severity)).Inc()

	if s.pusher != nil {
		if err := s.pusher.Push(ctx, n); err != nil {
			s.logger.Warn().Err(err).Str("notification_id", n.ID).Msg("push side channel failed")
		}
	}

	return n, nil
}

func (s *NotificationService) List(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) ClearAll(ctx context.Context, userID string) error {
	return s.repo.ClearAll(ctx, userID)
}

func (s *NotificationService) Settings(ctx context.Context, userID string) (domain.NotificationSettings, error) {
	settings, err := s.settings.Load(ctx, userID)
	if err != nil {
		return domain.NotificationSettings{}, fmt.Errorf("load notification settings: %w", err)
	}
	return settings, nil
}

func (s *NotificationService) UpdateSettings(ctx context.Context, userID string, settings domain.NotificationSettings) (domain.NotificationSettings, error) {
	if err := s.settings.Save(ctx, userID, settings); err != nil {
		return domain.NotificationSettings{}, fmt.Errorf("save notification settings: %w", err)
	}
	return settings, nil
}
