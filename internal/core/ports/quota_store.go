package ports

import "context"

// QuotaStore is the authoritative per-day session counter. Increments are
// atomic on the backing store, so concurrent start attempts from multiple
// clients cannot lose updates or exceed the cap.
type QuotaStore interface {
	// Count returns the number of sessions started by the user on the given
	// UTC day key.
	Count(ctx context.Context, userID, day string) (int64, error)
	// Increment atomically charges one session start and returns the new count.
	Increment(ctx context.Context, userID, day string) (int64, error)
	// Decrement releases a reservation that overshot the cap.
	Decrement(ctx context.Context, userID, day string) error
	// MarkAlertShown records that a distraction alert was shown to the user
	// today. Returns true when this call was the first of the day.
	MarkAlertShown(ctx context.Context, userID, day string) (bool, error)
}
