package ports

import (
	"context"

	"github.com/focusflow/focusflow-api/internal/core/domain"
)

// StatsService exposes daily focus statistics.
type StatsService interface {
	// Today returns the user's stats for the current UTC day, synthesizing a
	// zeroed record with default goals when none is stored yet.
	Today(ctx context.Context, userID string) (*domain.DailyStats, error)
	// History returns up to days recent records, newest first.
	History(ctx context.Context, userID string, days int) ([]*domain.DailyStats, error)
	// RecordDistraction counts a distraction against today and, when the
	// user's settings allow it, produces a once-per-day nudge notification.
	RecordDistraction(ctx context.Context, userID string) (*domain.DailyStats, error)
}
