package ports

import (
	"context"

	"github.com/focusflow/focusflow-api/internal/core/domain"
)

// StatsRepository defines persistence operations for daily stats.
// All increments are atomic upserts on the backing store.
type StatsRepository interface {
	// FindByDay returns the stored record for (user, day), or
	// domain.ErrStatsNotFound when no record exists yet.
	FindByDay(ctx context.Context, userID, day string) (*domain.DailyStats, error)
	RecordSessionStart(ctx context.Context, userID, day string) error
	// RecordSessionComplete adds a completed session with its focus minutes
	// and stores the recomputed productivity score.
	RecordSessionComplete(ctx context.Context, userID, day string, focusMinutes int, productivity float64) error
	RecordDistraction(ctx context.Context, userID, day string) error
	// ListRecent returns up to days records for the user, newest first.
	// Undecodable documents are skipped, not fatal.
	ListRecent(ctx context.Context, userID string, days int) ([]*domain.DailyStats, error)
}
