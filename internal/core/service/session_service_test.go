package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/focusflow/focusflow-api/internal/core/domain"
	"github.com/focusflow/focusflow-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubSessionRepo struct {
	byID      map[string]*domain.FocusSession
	createErr error // if set, Create returns this error
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{byID: make(map[string]*domain.FocusSession)}
}

func (r *stubSessionRepo) Create(_ context.Context, s *domain.FocusSession) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *s
	r.byID[s.ID] = &clone
	return nil
}

func (r *stubSessionRepo) FindByID(_ context.Context, id, userID string) (*domain.FocusSession, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if userID != "" && s.UserID != userID {
		return nil, domain.ErrSessionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSessionRepo) Finish(_ context.Context, id string, status domain.SessionStatus, endedAt time.Time, actualMinutes int) error {
	s, ok := r.byID[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.Status = status
	s.EndedAt = &endedAt
	s.ActualMinutes = actualMinutes
	return nil
}

func (r *stubSessionRepo) ListByUser(_ context.Context, userID string, limit int) ([]*domain.FocusSession, error) {
	var out []*domain.FocusSession
	for _, s := range r.byID {
		if s.UserID != userID {
			continue
		}
		clone := *s
		out = append(out, &clone)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type stubQuotaStore struct {
	counts     map[string]int64 // key: userID|day
	alerts     map[string]bool
	countErr   error
	incErr     error
	decrements int
}

func newStubQuotaStore() *stubQuotaStore {
	return &stubQuotaStore{counts: make(map[string]int64), alerts: make(map[string]bool)}
}

func (q *stubQuotaStore) key(userID, day string) string { return userID + "|" + day }

func (q *stubQuotaStore) Count(_ context.Context, userID, day string) (int64, error) {
	if q.countErr != nil {
		return 0, q.countErr
	}
	return q.counts[q.key(userID, day)], nil
}

func (q *stubQuotaStore) Increment(_ context.Context, userID, day string) (int64, error) {
	if q.incErr != nil {
		return 0, q.incErr
	}
	q.counts[q.key(userID, day)]++
	return q.counts[q.key(userID, day)], nil
}

func (q *stubQuotaStore) Decrement(_ context.Context, userID, day string) error {
	q.decrements++
	q.counts[q.key(userID, day)]--
	return nil
}

func (q *stubQuotaStore) MarkAlertShown(_ context.Context, userID, day string) (bool, error) {
	k := q.key(userID, day)
	if q.alerts[k] {
		return false, nil
	}
	q.alerts[k] = true
	return true, nil
}

type stubStatsRepo struct {
	byKey       map[string]*domain.DailyStats // key: userID|day
	findErr     error
	startErr    error
	completeErr error
}

func newStubStatsRepo() *stubStatsRepo {
	return &stubStatsRepo{byKey: make(map[string]*domain.DailyStats)}
}

func (r *stubStatsRepo) key(userID, day string) string { return userID + "|" + day }

func (r *stubStatsRepo) get(userID, day string) *domain.DailyStats {
	k := r.key(userID, day)
	s, ok := r.byKey[k]
	if !ok {
		s = domain.NewDailyStats(userID, day)
		r.byKey[k] = s
	}
	return s
}

func (r *stubStatsRepo) FindByDay(_ context.Context, userID, day string) (*domain.DailyStats, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	s, ok := r.byKey[r.key(userID, day)]
	if !ok {
		return nil, domain.ErrStatsNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubStatsRepo) RecordSessionStart(_ context.Context, userID, day string) error {
	if r.startErr != nil {
		return r.startErr
	}
	r.get(userID, day).SessionsStarted++
	return nil
}

func (r *stubStatsRepo) RecordSessionComplete(_ context.Context, userID, day string, focusMinutes int, productivity float64) error {
	if r.completeErr != nil {
		return r.completeErr
	}
	s := r.get(userID, day)
	s.SessionsCompleted++
	s.FocusMinutes += focusMinutes
	s.ProductivityScore = productivity
	return nil
}

func (r *stubStatsRepo) RecordDistraction(_ context.Context, userID, day string) error {
	r.get(userID, day).Distractions++
	return nil
}

func (r *stubStatsRepo) ListRecent(_ context.Context, userID string, days int) ([]*domain.DailyStats, error) {
	var out []*domain.DailyStats
	for _, s := range r.byKey {
		if s.UserID != userID {
			continue
		}
		clone := *s
		out = append(out, &clone)
		if len(out) == days {
			break
		}
	}
	return out, nil
}

// stubEnqueuer captures events handed to the dispatcher.
type stubEnqueuer struct {
	events []ports.NotificationEvent
}

func (e *stubEnqueuer) Enqueue(event ports.NotificationEvent) {
	e.events = append(e.events, event)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestSessionService(sessions *stubSessionRepo, stats *stubStatsRepo, quota *stubQuotaStore, enq *stubEnqueuer, adminEmails []string) *SessionService {
	svc := NewSessionService(sessions, stats, quota, domain.NewResolver(adminEmails), enq, discardLogger)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func freeCaller() ports.Caller {
	return ports.Caller{UserID: "user-1", Email: "user@example.com", Tier: domain.TierFree}
}

func proCaller() ports.Caller {
	return ports.Caller{UserID: "user-2", Email: "pro@example.com", Tier: domain.TierPro}
}

// ---------------------------------------------------------------------------
// CheckSessionStart
// ---------------------------------------------------------------------------

func TestCheckSessionStart_ProTierAlwaysAllowed(t *testing.T) {
	quota := newStubQuotaStore()
	svc := newTestSessionService(newStubSessionRepo(), newStubStatsRepo(), quota, &stubEnqueuer{}, nil)

	quota.counts["user-2|2026-03-10"] = 999

	decision, err := svc.CheckSessionStart(context.Background(), proCaller())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Allowed() {
		t.Fatal("pro tier must always be allowed")
	}
	if decision.DailyLimit != 0 {
		t.Errorf("pro daily limit = %d, want 0 (unlimited)", decision.DailyLimit)
	}
}

func TestCheckSessionStart_FreeUnderCapAllowed(t *testing.T) {
	quota := newStubQuotaStore()
	svc := newTestSessionService(newStubSessionRepo(), newStubStatsRepo(), quota, &stubEnqueuer{}, nil)

	quota.counts["user-1|2026-03-10"] = 4

	decision, err := svc.CheckSessionStart(context.Background(), freeCaller())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Allowed() {
		t.Fatal("free user under the cap must be allowed")
	}
	if decision.SessionsToday != 4 {
		t.Errorf("sessions today = %d, want 4", decision.SessionsToday)
	}
	if decision.DailyLimit != domain.FreeDailySessionCap {
		t.Errorf("daily limit = %d, want %d", decision.DailyLimit, domain.FreeDailySessionCap)
	}
	if decision.UpgradeMessage != "" {
		t.Error("allowed decision must carry no upgrade message")
	}
}

func TestCheckSessionStart_FreeAtCapBlocked(t *testing.T) {
	quota := newStubQuotaStore()
	svc := newTestSessionService(newStubSessionRepo(), newStubStatsRepo(), quota, &stubEnqueuer{}, nil)

	quota.counts["user-1|2026-03-10"] = 5

	decision, err := svc.CheckSessionStart(context.Background(), freeCaller())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Allowed() {
		t.Fatal("free user at the cap must be blocked")
	}
	if decision.State != domain.GateBlocked {
		t.Errorf("state = %s, want blocked", decision.State)
	}
	if decision.UpgradeMessage != domain.SessionLimitUpgradeMessage {
		t.Errorf("upgrade message = %q, want the standard prompt", decision.UpgradeMessage)
	}
}

func TestCheckSessionStart_DoesNotMutateQuota(t *testing.T) {
	quota := newStubQuotaStore()
	svc := newTestSessionService(newStubSessionRepo(), newStubStatsRepo(), quota, &stubEnqueuer{}, nil)

	quota.counts["user-1|2026-03-10"] = 3

	for i := 0; i < 10; i++ {
		if _, err := svc.CheckSessionStart(context.Background(), freeCaller()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if got := quota.counts["user-1|2026-03-10"]; got != 3 {
		t.Errorf("quota count after repeated checks = %d, want 3 (check must never charge)", got)
	}
}

func TestCheckSessionStart_AdminListedBypassesCap(t *testing.T) {
	quota := newStubQuotaStore()
	svc := newTestSessionService(newStubSessionRepo(), newStubStatsRepo(), quota, &stubEnqueuer{}, []string{"user@example.com"})

	quota.counts["user-1|2026-03-10"] = 100

	decision, err := svc.CheckSessionStart(context.Background(), freeCaller())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Allowed() {
		t.Fatal("admin-listed user must bypass the cap")
	}
}

func TestCheckSessionStart_QuotaStoreError(t *testing.T) {
	quota := newStubQuotaStore()
	quota.countErr = errors.New("redis down")
	svc := newTestSessionService(newStubSessionRepo(), newStubStatsRepo(), quota, &stubEnqueuer{}, nil)

	if _, err := svc.CheckSessionStart(context.Background(), freeCaller()); err == nil {
		t.Fatal("expected error when the quota store is unavailable")
	}
}

// ---------------------------------------------------------------------------
// StartSession
// ---------------------------------------------------------------------------

func TestStartSession_FreeUserSequenceUpToCap(t *testing.T) {
	sessions := newStubSessionRepo()
	stats := newStubStatsRepo()
	quota := newStubQuotaStore()
	enq := &stubEnqueuer{}
	svc := newTestSessionService(sessions, stats, quota, enq, nil)

	ctx := context.Background()
	for i := 1; i <= domain.FreeDailySessionCap; i++ {
		res, err := svc.StartSession(ctx, ports.StartSessionInput{Caller: freeCaller(), PlannedMinutes: 25})
		if err != nil {
			t.Fatalf("start %d: unexpected error: %v", i, err)
		}
		if res.Session == nil {
			t.Fatalf("start %d: expected a session, got blocked: %+v", i, res.Decision)
		}
		if res.Decision.SessionsToday != int64(i) {
			t.Errorf("start %d: sessions today = %d, want %d", i, res.Decision.SessionsToday, i)
		}
	}

	// Sixth start of the day must be blocked without charging.
	res, err := svc.StartSession(ctx, ports.StartSessionInput{Caller: freeCaller(), PlannedMinutes: 25})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Session != nil {
		t.Fatal("sixth start must be blocked")
	}
	if res.Decision.UpgradeMessage != domain.SessionLimitUpgradeMessage {
		t.Errorf("upgrade message = %q, want the standard prompt", res.Decision.UpgradeMessage)
	}
	if got := quota.counts["user-1|2026-03-10"]; got != int64(domain.FreeDailySessionCap) {
		t.Errorf("quota count = %d, want %d (blocked start must not charge)", got, domain.FreeDailySessionCap)
	}
	if len(sessions.byID) != domain.FreeDailySessionCap {
		t.Errorf("stored sessions = %d, want %d", len(sessions.byID), domain.FreeDailySessionCap)
	}
}

func TestStartSession_FifthStartEnqueuesLimitWarning(t *testing.T) {
	quota := newStubQuotaStore()
	enq := &stubEnqueuer{}
	svc := newTestSessionService(newStubSessionRepo(), newStubStatsRepo(), quota, enq, nil)

	quota.counts["user-1|2026-03-10"] = 4

	res, err := svc.StartSession(context.Background(), ports.StartSessionInput{Caller: freeCaller()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Session == nil {
		t.Fatal("fifth start must still be allowed")
	}
	if len(enq.events) != 1 {
		t.Fatalf("enqueued events = %d, want 1 limit warning", len(enq.events))
	}
	if enq.events[0].Type != domain.NotificationWarning {
		t.Errorf("event type = %s, want warning", enq.events[0].Type)
	}
}

func TestStartSession_DayRollover(t *testing.T) {
	quota := newStubQuotaStore()
	svc := newTestSessionService(newStubSessionRepo(), newStubStatsRepo(), quota, &stubEnqueuer{}, nil)

	// Yesterday the user exhausted the cap.
	quota.counts["user-1|2026-03-09"] = 5

	res, err := svc.StartSession(context.Background(), ports.StartSessionInput{Caller: freeCaller()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Session == nil {
		t.Fatal("a new UTC day must reset the cap")
	}
	if res.Decision.SessionsToday != 1 {
		t.Errorf("sessions today = %d, want 1", res.Decision.SessionsToday)
	}
}

func TestStartSession_ConcurrentOvershootReleasesReservation(t *testing.T) {
	sessions := newStubSessionRepo()
	quota := newStubQuotaStore()
	svc := newTestSessionService(sessions, newStubStatsRepo(), quota, &stubEnqueuer{}, nil)

	// Gate check reads 4 (under the cap), but a concurrent client's start
	// lands before this client's increment.
	quota.counts["user-1|2026-03-10"] = 4
	svc.quota = &racingQuotaStore{stubQuotaStore: quota, bumpOnFirstIncrement: true}

	res, err := svc.StartSession(context.Background(), ports.StartSessionInput{Caller: freeCaller()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Session != nil {
		t.Fatal("overshooting increment must block the start")
	}
	if quota.decrements != 1 {
		t.Errorf("decrements = %d, want 1 (reservation must be released)", quota.decrements)
	}
	if got := quota.counts["user-1|2026-03-10"]; got != 5 {
		t.Errorf("final count = %d, want 5", got)
	}
	if len(sessions.byID) != 0 {
		t.Error("no session record may be created for a blocked start")
	}
}

// racingQuotaStore simulates a concurrent client winning the race between
// the gate's read and this client's increment.
type racingQuotaStore struct {
	*stubQuotaStore
	bumpOnFirstIncrement bool
}

func (q *racingQuotaStore) Increment(ctx context.Context, userID, day string) (int64, error) {
	if q.bumpOnFirstIncrement {
		q.bumpOnFirstIncrement = false
		q.counts[q.key(userID, day)]++ // the other client's start
	}
	return q.stubQuotaStore.Increment(ctx, userID, day)
}

func TestStartSession_CreateFailureReleasesQuota(t *testing.T) {
	sessions := newStubSessionRepo()
	sessions.createErr = errors.New("mongo down")
	quota := newStubQuotaStore()
	svc := newTestSessionService(sessions, newStubStatsRepo(), quota, &stubEnqueuer{}, nil)

	_, err := svc.StartSession(context.Background(), ports.StartSessionInput{Caller: freeCaller()})
	if err == nil {
		t.Fatal("expected error when session persistence fails")
	}
	if quota.decrements != 1 {
		t.Errorf("decrements = %d, want 1 (charge must be rolled back)", quota.decrements)
	}
	if got := quota.counts["user-1|2026-03-10"]; got != 0 {
		t.Errorf("count after rollback = %d, want 0", got)
	}
}

func TestStartSession_DefaultsPlannedMinutes(t *testing.T) {
	sessions := newStubSessionRepo()
	svc := newTestSessionService(sessions, newStubStatsRepo(), newStubQuotaStore(), &stubEnqueuer{}, nil)

	res, err := svc.StartSession(context.Background(), ports.StartSessionInput{Caller: proCaller()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Session.PlannedMinutes != defaultPlannedMinutes {
		t.Errorf("planned minutes = %d, want %d", res.Session.PlannedMinutes, defaultPlannedMinutes)
	}
}

func TestStartSession_RecordsStatsStart(t *testing.T) {
	stats := newStubStatsRepo()
	svc := newTestSessionService(newStubSessionRepo(), stats, newStubQuotaStore(), &stubEnqueuer{}, nil)

	if _, err := svc.StartSession(context.Background(), ports.StartSessionInput{Caller: freeCaller()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	day, _ := stats.FindByDay(context.Background(), "user-1", "2026-03-10")
	if day == nil || day.SessionsStarted != 1 {
		t.Error("session start must be recorded in daily stats")
	}
}

func TestStartSession_StatsFailureIsNonFatal(t *testing.T) {
	stats := newStubStatsRepo()
	stats.startErr = errors.New("mongo slow")
	svc := newTestSessionService(newStubSessionRepo(), stats, newStubQuotaStore(), &stubEnqueuer{}, nil)

	res, err := svc.StartSession(context.Background(), ports.StartSessionInput{Caller: freeCaller()})
	if err != nil {
		t.Fatalf("stats failure must not fail the start: %v", err)
	}
	if res.Session == nil {
		t.Fatal("expected a started session")
	}
}

// ---------------------------------------------------------------------------
// CompleteSession / AbandonSession
// ---------------------------------------------------------------------------

func TestCompleteSession(t *testing.T) {
	sessions := newStubSessionRepo()
	stats := newStubStatsRepo()
	enq := &stubEnqueuer{}
	svc := newTestSessionService(sessions, stats, newStubQuotaStore(), enq, nil)

	started := time.Date(2026, 3, 10, 11, 30, 0, 0, time.UTC)
	sessions.byID["sess-1"] = &domain.FocusSession{
		ID: "sess-1", UserID: "user-1", Status: domain.SessionActive,
		PlannedMinutes: 25, StartedAt: started,
	}

	session, err := svc.CompleteSession(context.Background(), freeCaller(), "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Status != domain.SessionCompleted {
		t.Errorf("status = %s, want completed", session.Status)
	}
	if session.ActualMinutes != 25 {
		t.Errorf("actual minutes = %d, want 25 (clamped to planned)", session.ActualMinutes)
	}
	if session.EndedAt == nil {
		t.Fatal("ended_at must be set")
	}

	day, _ := stats.FindByDay(context.Background(), "user-1", "2026-03-10")
	if day.SessionsCompleted != 1 || day.FocusMinutes != 25 {
		t.Errorf("stats = %d completed / %d minutes, want 1 / 25", day.SessionsCompleted, day.FocusMinutes)
	}
}

func TestCompleteSession_ActualClampedToPlanned(t *testing.T) {
	sessions := newStubSessionRepo()
	svc := newTestSessionService(sessions, newStubStatsRepo(), newStubQuotaStore(), &stubEnqueuer{}, nil)

	// Started three hours ago with a 25-minute plan.
	sessions.byID["sess-1"] = &domain.FocusSession{
		ID: "sess-1", UserID: "user-1", Status: domain.SessionActive,
		PlannedMinutes: 25, StartedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}

	session, err := svc.CompleteSession(context.Background(), freeCaller(), "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.ActualMinutes != 25 {
		t.Errorf("actual minutes = %d, want clamp to 25", session.ActualMinutes)
	}
}

func TestCompleteSession_MinimumOneMinute(t *testing.T) {
	sessions := newStubSessionRepo()
	svc := newTestSessionService(sessions, newStubStatsRepo(), newStubQuotaStore(), &stubEnqueuer{}, nil)

	// Started ten seconds ago.
	sessions.byID["sess-1"] = &domain.FocusSession{
		ID: "sess-1", UserID: "user-1", Status: domain.SessionActive,
		PlannedMinutes: 25, StartedAt: time.Date(2026, 3, 10, 11, 59, 50, 0, time.UTC),
	}

	session, err := svc.CompleteSession(context.Background(), freeCaller(), "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.ActualMinutes != 1 {
		t.Errorf("actual minutes = %d, want minimum 1", session.ActualMinutes)
	}
}

func TestCompleteSession_InvalidTransition(t *testing.T) {
	sessions := newStubSessionRepo()
	svc := newTestSessionService(sessions, newStubStatsRepo(), newStubQuotaStore(), &stubEnqueuer{}, nil)

	sessions.byID["sess-1"] = &domain.FocusSession{
		ID: "sess-1", UserID: "user-1", Status: domain.SessionCompleted,
		PlannedMinutes: 25, StartedAt: time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
	}

	_, err := svc.CompleteSession(context.Background(), freeCaller(), "sess-1")
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCompleteSession_OtherUsersSessionNotFound(t *testing.T) {
	sessions := newStubSessionRepo()
	svc := newTestSessionService(sessions, newStubStatsRepo(), newStubQuotaStore(), &stubEnqueuer{}, nil)

	sessions.byID["sess-1"] = &domain.FocusSession{
		ID: "sess-1", UserID: "someone-else", Status: domain.SessionActive,
		PlannedMinutes: 25, StartedAt: time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
	}

	_, err := svc.CompleteSession(context.Background(), freeCaller(), "sess-1")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestCompleteSession_DailyGoalAchievement(t *testing.T) {
	sessions := newStubSessionRepo()
	stats := newStubStatsRepo()
	enq := &stubEnqueuer{}
	svc := newTestSessionService(sessions, stats, newStubQuotaStore(), enq, nil)

	// Three sessions already completed today; the fourth hits the goal.
	existing := domain.NewDailyStats("user-1", "2026-03-10")
	existing.SessionsCompleted = 3
	existing.FocusMinutes = 75
	stats.byKey["user-1|2026-03-10"] = existing

	sessions.byID["sess-4"] = &domain.FocusSession{
		ID: "sess-4", UserID: "user-1", Status: domain.SessionActive,
		PlannedMinutes: 25, StartedAt: time.Date(2026, 3, 10, 11, 30, 0, 0, time.UTC),
	}

	if _, err := svc.CompleteSession(context.Background(), freeCaller(), "sess-4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enq.events) != 1 {
		t.Fatalf("enqueued events = %d, want 1 achievement", len(enq.events))
	}
	if enq.events[0].Type != domain.NotificationAchievement {
		t.Errorf("event type = %s, want achievement", enq.events[0].Type)
	}
}

func TestCompleteSession_StatsReadFailureIsNonFatal(t *testing.T) {
	sessions := newStubSessionRepo()
	stats := newStubStatsRepo()
	stats.findErr = errors.New("mongo timeout")
	enq := &stubEnqueuer{}
	svc := newTestSessionService(sessions, stats, newStubQuotaStore(), enq, nil)

	sessions.byID["sess-1"] = &domain.FocusSession{
		ID: "sess-1", UserID: "user-1", Status: domain.SessionActive,
		PlannedMinutes: 25, StartedAt: time.Date(2026, 3, 10, 11, 30, 0, 0, time.UTC),
	}

	session, err := svc.CompleteSession(context.Background(), freeCaller(), "sess-1")
	if err != nil {
		t.Fatalf("transient stats read failure must not fail the completion: %v", err)
	}
	if session.Status != domain.SessionCompleted {
		t.Errorf("status = %s, want completed", session.Status)
	}
	// Crediting falls back to a fresh baseline, so one completion cannot
	// look like the daily goal.
	if len(enq.events) != 0 {
		t.Errorf("enqueued events = %d, want 0", len(enq.events))
	}
}

func TestAbandonSession(t *testing.T) {
	sessions := newStubSessionRepo()
	stats := newStubStatsRepo()
	svc := newTestSessionService(sessions, stats, newStubQuotaStore(), &stubEnqueuer{}, nil)

	sessions.byID["sess-1"] = &domain.FocusSession{
		ID: "sess-1", UserID: "user-1", Status: domain.SessionActive,
		PlannedMinutes: 25, StartedAt: time.Date(2026, 3, 10, 11, 30, 0, 0, time.UTC),
	}

	session, err := svc.AbandonSession(context.Background(), freeCaller(), "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Status != domain.SessionAbandoned {
		t.Errorf("status = %s, want abandoned", session.Status)
	}
	if _, err := stats.FindByDay(context.Background(), "user-1", "2026-03-10"); !errors.Is(err, domain.ErrStatsNotFound) {
		t.Error("abandoning must not credit daily stats")
	}
}

func TestListSessions_DefaultLimit(t *testing.T) {
	sessions := newStubSessionRepo()
	for i := 0; i < 30; i++ {
		id := "sess-" + string(rune('a'+i))
		sessions.byID[id] = &domain.FocusSession{ID: id, UserID: "user-1", Status: domain.SessionCompleted}
	}
	svc := newTestSessionService(sessions, newStubStatsRepo(), newStubQuotaStore(), &stubEnqueuer{}, nil)

	out, err := svc.ListSessions(context.Background(), freeCaller(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 20 {
		t.Errorf("listed %d sessions, want default limit 20", len(out))
	}
}
