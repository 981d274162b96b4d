package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// quotaTTL keeps a day's counter long enough to survive clock skew around
// the UTC midnight rollover, then lets Redis reclaim it.
const quotaTTL = 48 * time.Hour

// QuotaStore is the authoritative daily session counter backed by Redis.
// Key format: quota:<user_id>:<YYYY-MM-DD>. INCR is atomic, so concurrent
// start attempts from multiple clients cannot lose an increment.
type QuotaStore struct {
	client *redis.Client
}

// NewQuotaStore creates a QuotaStore wrapping the given Redis client.
func NewQuotaStore(client *redis.Client) *QuotaStore {
	return &QuotaStore{client: client}
}

// Count returns the number of sessions started on the given day. A missing
// key reads as zero.
func (q *QuotaStore) Count(ctx context.Context, userID, day string) (int64, error) {
	n, err := q.client.Get(ctx, q.key(userID, day)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("quota count: %w", err)
	}
	return n, nil
}

// Increment atomically charges one session start and returns the new count.
func (q *QuotaStore) Increment(ctx context.Context, userID, day string) (int64, error) {
	key := q.key(userID, day)
	n, err := q.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("quota increment: %w", err)
	}
	if n == 1 {
		if err := q.client.Expire(ctx, key, quotaTTL).Err(); err != nil {
			return n, fmt.Errorf("quota expire: %w", err)
		}
	}
	return n, nil
}

// Decrement releases a reservation that overshot the cap.
func (q *QuotaStore) Decrement(ctx context.Context, userID, day string) error {
	if err := q.client.Decr(ctx, q.key(userID, day)).Err(); err != nil {
		return fmt.Errorf("quota decrement: %w", err)
	}
	return nil
}

// MarkAlertShown records that a distraction alert was shown to the user
// today. Returns true when this call was the first of the day (SETNX).
func (q *QuotaStore) MarkAlertShown(ctx context.Context, userID, day string) (bool, error) {
	key := fmt.Sprintf("alert:%s:%s", userID, day)
	first, err := q.client.SetNX(ctx, key, "1", quotaTTL).Result()
	if err != nil {
		return false, fmt.Errorf("alert mark: %w", err)
	}
	return first, nil
}

func (q *QuotaStore) key(userID, day string) string {
	return fmt.Sprintf("quota:%s:%s", userID, day)
}
