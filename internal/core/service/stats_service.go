package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/focusflow/focusflow-api/internal/core/domain"
	"github.com/focusflow/focusflow-api/internal/core/ports"
)

// StatsService exposes daily focus statistics and distraction reporting.
type StatsService struct {
	stats    ports.StatsRepository
	settings ports.SettingsRepository
	quota    ports.QuotaStore
	notify   NotificationEnqueuer
	logger   zerolog.Logger
	now      func() time.Time
}

func NewStatsService(
	stats ports.StatsRepository,
	settings ports.SettingsRepository,
	quota ports.QuotaStore,
	notify NotificationEnqueuer,
	logger zerolog.Logger,
) *StatsService {
	return &StatsService{
		stats:    stats,
		settings: settings,
		quota:    quota,
		notify:   notify,
		logger:   logger,
		now:      time.Now,
	}
}

// Today returns the caller's stats for the current UTC day. A day with no
// stored record yields a zeroed record with default goals; yesterday's
// record is never read across the midnight boundary.
func (s *StatsService) Today(ctx context.Context, userID string) (*domain.DailyStats, error) {
	day := domain.DayKey(s.now())
	stats, err := s.stats.FindByDay(ctx, userID, day)
	if err != nil {
		if errors.Is(err, domain.ErrStatsNotFound) {
			return domain.NewDailyStats(userID, day), nil
		}
		return nil, fmt.Errorf("stats today: %w", err)
	}
	return stats, nil
}

func (s *StatsService) History(ctx context.Context, userID string, days int) ([]*domain.DailyStats, error) {
	if days <= 0 || days > 90 {
		days = 30
	}
	return s.stats.ListRecent(ctx, userID, days)
}

// RecordDistraction counts a distraction against today. When the user's
// settings allow distraction alerts, at most one nudge per UTC day is
// produced; failures of that side channel never fail the recording itself.
func (s *StatsService) RecordDistraction(ctx context.Context, userID string) (*domain.DailyStats, error) {
	day := domain.DayKey(s.now())
	if err := s.stats.RecordDistraction(ctx, userID, day); err != nil {
		return nil, fmt.Errorf("record distraction: %w", err)
	}

	s.maybeNudge(ctx, userID, day)

	stats, err := s.stats.FindByDay(ctx, userID, day)
	if err != nil {
		if errors.Is(err, domain.ErrStatsNotFound) {
			stats = domain.NewDailyStats(userID, day)
			stats.Distractions = 1
			return stats, nil
		}
		return nil, fmt.Errorf("record distraction: %w", err)
	}
	return stats, nil
}

func (s *StatsService) maybeNudge(ctx context.Context, userID, day string) {
	settings, err := s.settings.Load(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to load notification settings, using defaults")
		settings = domain.DefaultNotificationSettings()
	}
	if !settings.AllowsType(domain.NotificationDistraction) {
		return
	}

	first, err := s.quota.MarkAlertShown(ctx, userID, day)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("distraction alert dedup check failed, skipping nudge")
		return
	}
	if !first {
		return
	}

	s.notify.Enqueue(ports.NotificationEvent{
		UserID:   userID,
		Type:     domain.NotificationDistraction,
		Title:    "Stay on track",
		Message:  "You seem distracted. Try a short focus session to get back into flow.",
		Severity: domain.SeverityInfo,
	})
}
