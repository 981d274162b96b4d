package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/focusflow/focusflow-api/internal/api/metrics"
	"github.com/focusflow/focusflow-api/internal/core/domain"
	"github.com/focusflow/focusflow-api/internal/core/ports"
)

const defaultPlannedMinutes = 25

// NotificationEnqueuer is the interface the services use to hand
// notification events to the async dispatcher.
type NotificationEnqueuer interface {
	Enqueue(event ports.NotificationEvent)
}

// SessionService implements the session-limit gate and the focus-session
// lifecycle.
type SessionService struct {
	sessions ports.SessionRepository
	stats    ports.StatsRepository
	quota    ports.QuotaStore
	resolver *domain.Resolver
	notify   NotificationEnqueuer
	logger   zerolog.Logger
	now      func() time.Time
}

func NewSessionService(
	sessions ports.SessionRepository,
	stats ports.StatsRepository,
	quota ports.QuotaStore,
	resolver *domain.Resolver,
	notify NotificationEnqueuer,
	logger zerolog.Logger,
) *SessionService {
	return &SessionService{
		sessions: sessions,
		stats:    stats,
		quota:    quota,
		resolver: resolver,
		notify:   notify,
		logger:   logger,
		now:      time.Now,
	}
}

// CheckSessionStart runs the gate: idle → checking → allowed|blocked.
// It only reads the current count and never charges the quota, so a retried
// or cancelled start attempt cannot double-charge a free user's day.
func (s *SessionService) CheckSessionStart(ctx context.Context, caller ports.Caller) (domain.GateDecision, error) {
	state := domain.GateIdle
	if !state.CanTransitionTo(domain.GateChecking) {
		return domain.GateDecision{}, domain.ErrInvalidTransition
	}
	state = domain.GateChecking

	limit := domain.DailySessionLimit(caller.Tier)
	if limit == 0 || s.resolver.IsAdminListed(caller.Email) {
		metrics.QuotaChecksTotal.WithLabelValues("allowed").Inc()
		return domain.GateDecision{State: domain.GateAllowed, DailyLimit: 0}, nil
	}

	day := domain.DayKey(s.now())
	count, err := s.quota.Count(ctx, caller.UserID, day)
	if err != nil {
		metrics.QuotaChecksTotal.WithLabelValues("error").Inc()
		return domain.GateDecision{}, fmt.Errorf("session gate: count quota: %w", err)
	}

	if count < int64(limit) {
		state = domain.GateAllowed
	} else {
		state = domain.GateBlocked
	}

	decision := domain.GateDecision{
		State:         state,
		SessionsToday: count,
		DailyLimit:    limit,
	}
	if state == domain.GateBlocked {
		decision.UpgradeMessage = domain.SessionLimitUpgradeMessage
		metrics.QuotaChecksTotal.WithLabelValues("blocked").Inc()
	} else {
		metrics.QuotaChecksTotal.WithLabelValues("allowed").Inc()
	}
	return decision, nil
}

// StartSession charges the quota and creates the session record. The charge
// is an atomic increment on the quota store; if a concurrent start pushed the
// count past the cap the reservation is released and the start is blocked, so
// the free-tier cap holds even across racing clients.
func (s *SessionService) StartSession(ctx context.Context, input ports.StartSessionInput) (*ports.StartSessionResult, error) {
	caller := input.Caller

	decision, err := s.CheckSessionStart(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed() {
		return &ports.StartSessionResult{Decision: decision}, nil
	}

	now := s.now().UTC()
	day := domain.DayKey(now)
	limit := domain.DailySessionLimit(caller.Tier)
	bypass := s.resolver.IsAdminListed(caller.Email)

	count, err := s.quota.Increment(ctx, caller.UserID, day)
	if err != nil {
		return nil, fmt.Errorf("start session: charge quota: %w", err)
	}
	if limit > 0 && !bypass && count > int64(limit) {
		if relErr := s.quota.Decrement(ctx, caller.UserID, day); relErr != nil {
			s.logger.Warn().Err(relErr).Str("user_id", caller.UserID).Msg("failed to release quota reservation")
		}
		metrics.SessionStartsBlockedTotal.WithLabelValues("quota_exceeded").Inc()
		return &ports.StartSessionResult{
			Decision: domain.GateDecision{
				State:          domain.GateBlocked,
				SessionsToday:  int64(limit),
				DailyLimit:     limit,
				UpgradeMessage: domain.SessionLimitUpgradeMessage,
			},
		}, nil
	}

	planned := input.PlannedMinutes
	if planned <= 0 {
		planned = defaultPlannedMinutes
	}

	session := &domain.FocusSession{
		ID:             uuid.NewString(),
		UserID:         caller.UserID,
		Status:         domain.SessionActive,
		PlannedMinutes: planned,
		StartedAt:      now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		if relErr := s.quota.Decrement(ctx, caller.UserID, day); relErr != nil {
			s.logger.Warn().Err(relErr).Str("user_id", caller.UserID).Msg("failed to release quota reservation")
		}
		return nil, fmt.Errorf("start session: %w", err)
	}

	if err := s.stats.RecordSessionStart(ctx, caller.UserID, day); err != nil {
		s.logger.Warn().Err(err).Str("user_id", caller.UserID).Msg("failed to record session start in stats")
	}

	if limit > 0 && !bypass && count == int64(limit) {
		s.notify.Enqueue(ports.NotificationEvent{
			UserID:   caller.UserID,
			Type:     domain.NotificationWarning,
			Title:    "Daily limit reached",
			Message:  domain.SessionLimitUpgradeMessage,
			Severity: domain.SeverityWarning,
		})
	}

	metrics.SessionStartsTotal.WithLabelValues(string(domain.ParseTier(string(caller.Tier)))).Inc()
	s.logger.Info().
		Str("session_id", session.ID).
		Str("user_id", caller.UserID).
		Int64("sessions_today", count).
		Msg("focus session started")

	decision.SessionsToday = count
	return &ports.StartSessionResult{Decision: decision, Session: session}, nil
}

// CompleteSession transitions an active session to completed and credits the
// day's stats.
func (s *SessionService) CompleteSession(ctx context.Context, caller ports.Caller, sessionID string) (*domain.FocusSession, error) {
	session, err := s.sessions.FindByID(ctx, sessionID, caller.UserID)
	if err != nil {
		return nil, err
	}
	if !session.Status.CanTransitionTo(domain.SessionCompleted) {
		return nil, fmt.Errorf("complete session: %w (from %s)", domain.ErrInvalidTransition, session.Status)
	}

	now := s.now().UTC()
	actual := int(now.Sub(session.StartedAt).Minutes())
	if actual < 1 {
		actual = 1
	}
	if actual > session.PlannedMinutes {
		actual = session.PlannedMinutes
	}

	if err := s.sessions.Finish(ctx, session.ID, domain.SessionCompleted, now, actual); err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}

	day := domain.DayKey(now)
	stats, err := s.stats.FindByDay(ctx, caller.UserID, day)
	if err != nil {
		if !errors.Is(err, domain.ErrStatsNotFound) {
			s.logger.Warn().Err(err).Str("user_id", caller.UserID).Msg("failed to load daily stats, crediting against a fresh baseline")
		}
		stats = domain.NewDailyStats(caller.UserID, day)
	}
	stats.SessionsCompleted++
	stats.FocusMinutes += actual
	if err := s.stats.RecordSessionComplete(ctx, caller.UserID, day, actual, stats.Productivity()); err != nil {
		s.logger.Warn().Err(err).Str("user_id", caller.UserID).Msg("failed to record session completion in stats")
	}

	if stats.SessionsCompleted == stats.DailyGoal {
		s.notify.Enqueue(ports.NotificationEvent{
			UserID:   caller.UserID,
			Type:     domain.NotificationAchievement,
			Title:    "Daily goal reached",
			Message:  fmt.Sprintf("You completed %d focus sessions today. Great work!", stats.SessionsCompleted),
			Severity: domain.SeveritySuccess,
		})
	}

	metrics.SessionsCompletedTotal.Inc()
	s.logger.Info().
		Str("session_id", session.ID).
		Str("user_id", caller.UserID).
		Int("focus_minutes", actual).
		Msg("focus session completed")

	session.Status = domain.SessionCompleted
	session.EndedAt = &now
	session.ActualMinutes = actual
	return session, nil
}

// AbandonSession transitions an active session to abandoned. No stats credit.
func (s *SessionService) AbandonSession(ctx context.Context, caller ports.Caller, sessionID string) (*domain.FocusSession, error) {
	session, err := s.sessions.FindByID(ctx, sessionID, caller.UserID)
	if err != nil {
		return nil, err
	}
	if !session.Status.CanTransitionTo(domain.SessionAbandoned) {
		return nil, fmt.Errorf("abandon session: %w (from %s)", domain.ErrInvalidTransition, session.Status)
	}

	now := s.now().UTC()
	if err := s.sessions.Finish(ctx, session.ID, domain.SessionAbandoned, now, 0); err != nil {
		return nil, fmt.Errorf("abandon session: %w", err)
	}

	session.Status = domain.SessionAbandoned
	session.EndedAt = &now
	return session, nil
}

func (s *SessionService) ListSessions(ctx context.Context, caller ports.Caller, limit int) ([]*domain.FocusSession, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.sessions.ListByUser(ctx, caller.UserID, limit)
}
