package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/focusflow/focusflow-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Settings stub
// ---------------------------------------------------------------------------

type stubSettingsRepo struct {
	byUser  map[string]domain.NotificationSettings
	loadErr error
	saveErr error
}

func newStubSettingsRepo() *stubSettingsRepo {
	return &stubSettingsRepo{byUser: make(map[string]domain.NotificationSettings)}
}

func (r *stubSettingsRepo) Load(_ context.Context, userID string) (domain.NotificationSettings, error) {
	if r.loadErr != nil {
		return domain.NotificationSettings{}, r.loadErr
	}
	if s, ok := r.byUser[userID]; ok {
		return s, nil
	}
	return domain.DefaultNotificationSettings(), nil
}

func (r *stubSettingsRepo) Save(_ context.Context, userID string, s domain.NotificationSettings) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.byUser[userID] = s
	return nil
}

func newTestStatsService(stats *stubStatsRepo, settings *stubSettingsRepo, quota *stubQuotaStore, enq *stubEnqueuer) *StatsService {
	svc := NewStatsService(stats, settings, quota, enq, discardLogger)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

// ---------------------------------------------------------------------------
// Today / History
// ---------------------------------------------------------------------------

func TestToday_SynthesizesEmptyDay(t *testing.T) {
	svc := newTestStatsService(newStubStatsRepo(), newStubSettingsRepo(), newStubQuotaStore(), &stubEnqueuer{})

	stats, err := svc.Today(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Day != "2026-03-10" {
		t.Errorf("day = %q, want 2026-03-10", stats.Day)
	}
	if stats.DailyGoal != domain.DefaultDailyGoal || stats.WeeklyGoal != domain.DefaultWeeklyGoal {
		t.Errorf("goals = %d/%d, want defaults %d/%d",
			stats.DailyGoal, stats.WeeklyGoal, domain.DefaultDailyGoal, domain.DefaultWeeklyGoal)
	}
	if stats.SessionsStarted != 0 || stats.FocusMinutes != 0 {
		t.Error("a day with no record must come back zeroed")
	}
}

func TestToday_NeverReadsYesterday(t *testing.T) {
	stats := newStubStatsRepo()
	yesterday := domain.NewDailyStats("user-1", "2026-03-09")
	yesterday.SessionsCompleted = 4
	stats.byKey["user-1|2026-03-09"] = yesterday

	svc := newTestStatsService(stats, newStubSettingsRepo(), newStubQuotaStore(), &stubEnqueuer{})

	today, err := svc.Today(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if today.SessionsCompleted != 0 {
		t.Error("today's stats must not carry yesterday's record across midnight")
	}
}

func TestToday_ReturnsStoredRecord(t *testing.T) {
	stats := newStubStatsRepo()
	rec := domain.NewDailyStats("user-1", "2026-03-10")
	rec.SessionsCompleted = 2
	rec.FocusMinutes = 50
	stats.byKey["user-1|2026-03-10"] = rec

	svc := newTestStatsService(stats, newStubSettingsRepo(), newStubQuotaStore(), &stubEnqueuer{})

	today, err := svc.Today(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if today.SessionsCompleted != 2 || today.FocusMinutes != 50 {
		t.Errorf("got %d completed / %d minutes, want 2 / 50", today.SessionsCompleted, today.FocusMinutes)
	}
}

func TestHistory_ClampsDays(t *testing.T) {
	stats := newStubStatsRepo()
	for i := 0; i < 120; i++ {
		day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -i).Format("2006-01-02")
		stats.byKey["user-1|"+day] = domain.NewDailyStats("user-1", day)
	}
	svc := newTestStatsService(stats, newStubSettingsRepo(), newStubQuotaStore(), &stubEnqueuer{})

	out, err := svc.History(context.Background(), "user-1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 30 {
		t.Errorf("history(0) returned %d days, want default 30", len(out))
	}

	out, err = svc.History(context.Background(), "user-1", 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 30 {
		t.Errorf("history(500) returned %d days, want clamp to default 30", len(out))
	}
}

// ---------------------------------------------------------------------------
// RecordDistraction
// ---------------------------------------------------------------------------

func TestRecordDistraction_CountsAndReturnsStats(t *testing.T) {
	stats := newStubStatsRepo()
	svc := newTestStatsService(stats, newStubSettingsRepo(), newStubQuotaStore(), &stubEnqueuer{})

	out, err := svc.RecordDistraction(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Distractions != 1 {
		t.Errorf("distractions = %d, want 1", out.Distractions)
	}

	out, err = svc.RecordDistraction(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Distractions != 2 {
		t.Errorf("distractions = %d, want 2", out.Distractions)
	}
}

func TestRecordDistraction_NudgesOncePerDay(t *testing.T) {
	enq := &stubEnqueuer{}
	svc := newTestStatsService(newStubStatsRepo(), newStubSettingsRepo(), newStubQuotaStore(), enq)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := svc.RecordDistraction(ctx, "user-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(enq.events) != 1 {
		t.Fatalf("nudges = %d, want exactly 1 per day", len(enq.events))
	}
	if enq.events[0].Type != domain.NotificationDistraction {
		t.Errorf("event type = %s, want distraction", enq.events[0].Type)
	}
}

func TestRecordDistraction_SettingsSuppressNudge(t *testing.T) {
	settings := newStubSettingsRepo()
	muted := domain.DefaultNotificationSettings()
	muted.DistractionAlerts = false
	settings.byUser["user-1"] = muted

	enq := &stubEnqueuer{}
	svc := newTestStatsService(newStubStatsRepo(), settings, newStubQuotaStore(), enq)

	out, err := svc.RecordDistraction(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Distractions != 1 {
		t.Error("suppressed nudge must not suppress the count itself")
	}
	if len(enq.events) != 0 {
		t.Errorf("nudges = %d, want 0 when distraction alerts are off", len(enq.events))
	}
}

func TestRecordDistraction_SettingsLoadFailureUsesDefaults(t *testing.T) {
	settings := newStubSettingsRepo()
	settings.loadErr = errors.New("mongo down")

	enq := &stubEnqueuer{}
	svc := newTestStatsService(newStubStatsRepo(), settings, newStubQuotaStore(), enq)

	if _, err := svc.RecordDistraction(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Defaults allow distraction alerts, so the nudge still goes out.
	if len(enq.events) != 1 {
		t.Errorf("nudges = %d, want 1 (defaults apply when settings cannot load)", len(enq.events))
	}
}
