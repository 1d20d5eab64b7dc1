package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/domain"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/service"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/platform/clock"
	apperrors "github.com/nemagoudarshrirang-sys/study-streak/internal/platform/errors"
)

type memStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (s *memStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *memStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *memStore) Subscribe(func(key string)) (cancel func()) { return func() {} }
func (s *memStore) Close() error                               { return nil }

func newService(now time.Time) (*service.StatsService, *memStore, *clock.Manual) {
	store := newMemStore()
	clk := clock.NewManual(now)
	return service.NewStatsService(clk, store), store, clk
}

func TestRecordCompletionAppliesEveryEffect(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	svc, store, _ := newService(now)

	if err := svc.SavePlan(ctx, domain.Plan{{Subject: "math", Target: 50}}); err != nil {
		t.Fatalf("save plan: %v", err)
	}

	streak, counter, total, err := svc.RecordCompletion(ctx, "math", 25)
	if err != nil {
		t.Fatalf("record completion: %v", err)
	}
	if streak.Streak != 1 || streak.LastDate != "2026-09-01" {
		t.Fatalf("streak: %+v", streak)
	}
	if counter.Count != 1 || counter.Date != "2026-09-01" {
		t.Fatalf("counter: %+v", counter)
	}
	if total != 25 {
		t.Fatalf("total minutes: %d", total)
	}

	history := svc.History(ctx)
	if history["2026-09-01"] != 1 {
		t.Fatalf("history: %+v", history)
	}
	subjects := svc.SubjectStats(ctx)
	if subjects["math"].Minutes != 25 || subjects["math"].Sessions != 1 {
		t.Fatalf("subject stats: %+v", subjects["math"])
	}
	plan := svc.Plan(ctx)
	if plan[0].Done != 25 {
		t.Fatalf("plan progress: %+v", plan[0])
	}

	// Second completion the same day: history entry overwritten with the
	// running counter, streak unchanged.
	_, counter, total, err = svc.RecordCompletion(ctx, "math", 25)
	if err != nil {
		t.Fatalf("second completion: %v", err)
	}
	if counter.Count != 2 || total != 50 {
		t.Fatalf("second completion counter=%d total=%d", counter.Count, total)
	}
	if got := svc.History(ctx)["2026-09-01"]; got != 2 {
		t.Fatalf("history overwrite: %d", got)
	}
	if got := svc.Streak(ctx); got.Streak != 1 {
		t.Fatalf("same-day streak must stay 1, got %d", got.Streak)
	}

	if _, ok := store.values[domain.KeySubjects]; !ok {
		t.Fatalf("subjects document never persisted")
	}
}

func TestRecordCompletionWithoutSubject(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newService(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))

	_, _, total, err := svc.RecordCompletion(ctx, "", 25)
	if err != nil {
		t.Fatalf("record completion: %v", err)
	}
	if total != 25 {
		t.Fatalf("total minutes: %d", total)
	}
	if len(svc.SubjectStats(ctx)) != 0 {
		t.Fatalf("no subject should be credited")
	}
}

func TestTodaySessionsLazyRollover(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, clk := newService(time.Date(2026, 9, 1, 23, 0, 0, 0, time.UTC))

	if _, _, _, err := svc.RecordCompletion(ctx, "", 25); err != nil {
		t.Fatalf("record completion: %v", err)
	}
	count, err := svc.TodaySessions(ctx)
	if err != nil {
		t.Fatalf("today sessions: %v", err)
	}
	if count != 1 {
		t.Fatalf("today count: %d", count)
	}

	clk.Advance(2 * time.Hour)
	count, err = svc.TodaySessions(ctx)
	if err != nil {
		t.Fatalf("today sessions after midnight: %v", err)
	}
	if count != 0 {
		t.Fatalf("counter should reset at day rollover, got %d", count)
	}
	if got := svc.History(ctx)["2026-09-01"]; got != 1 {
		t.Fatalf("rollover must not touch history, got %d", got)
	}

	// Streak extends across the boundary.
	if _, _, _, err := svc.RecordCompletion(ctx, "", 25); err != nil {
		t.Fatalf("next-day completion: %v", err)
	}
	if got := svc.Streak(ctx); got.Streak != 2 {
		t.Fatalf("streak after consecutive day: %d", got.Streak)
	}
}

func TestCorruptDocumentsTreatedAsAbsent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, _ := newService(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
	store.values[domain.KeyStreak] = "{not json"
	store.values[domain.KeyHistory] = "[[["
	store.values[domain.KeyTotalMinutes] = "many"

	streak, _, total, err := svc.RecordCompletion(ctx, "", 25)
	if err != nil {
		t.Fatalf("record completion over corrupt store: %v", err)
	}
	if streak.Streak != 1 {
		t.Fatalf("corrupt streak should restart at 1, got %d", streak.Streak)
	}
	if total != 25 {
		t.Fatalf("corrupt total should restart at minutes, got %d", total)
	}
}

func TestSettingsAllowlistAndDefaults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newService(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))

	if _, err := svc.Setting(ctx, "bogus"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("unknown setting read should be rejected, got %v", err)
	}
	if err := svc.SetSetting(ctx, "bogus", "x"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("unknown setting write should be rejected, got %v", err)
	}

	got, err := svc.Setting(ctx, domain.KeyAutoFocusRoom)
	if err != nil {
		t.Fatalf("default auto focus room: %v", err)
	}
	if got != "on" {
		t.Fatalf("auto focus room default: %q", got)
	}
	got, err = svc.Setting(ctx, domain.KeyAutoPlan)
	if err != nil {
		t.Fatalf("default auto plan: %v", err)
	}
	if got != "off" {
		t.Fatalf("auto plan default: %q", got)
	}

	if err := svc.SetSetting(ctx, domain.KeyFocusIntensity, "Deep"); err != nil {
		t.Fatalf("set intensity: %v", err)
	}
	got, err = svc.Setting(ctx, domain.KeyFocusIntensity)
	if err != nil {
		t.Fatalf("read intensity: %v", err)
	}
	if got != "Deep" {
		t.Fatalf("intensity: %q", got)
	}
}

func TestUserNameDefaultsAndPersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, _ := newService(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))

	name, err := svc.UserName(ctx)
	if err != nil {
		t.Fatalf("user name: %v", err)
	}
	if name != "Anonymous" {
		t.Fatalf("default name: %q", name)
	}
	if store.values[domain.KeyUserName] != "Anonymous" {
		t.Fatalf("default name must be cached in the store")
	}

	if err := svc.SetSetting(ctx, domain.KeyUserName, "dara"); err != nil {
		t.Fatalf("set name: %v", err)
	}
	name, err = svc.UserName(ctx)
	if err != nil {
		t.Fatalf("user name after set: %v", err)
	}
	if name != "dara" {
		t.Fatalf("stored name: %q", name)
	}
}

func TestCurrentSubjectSetAndClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, _ := newService(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))

	if err := svc.SetCurrentSubject(ctx, "math"); err != nil {
		t.Fatalf("set subject: %v", err)
	}
	got, err := svc.CurrentSubject(ctx)
	if err != nil {
		t.Fatalf("current subject: %v", err)
	}
	if got != "math" {
		t.Fatalf("current subject: %q", got)
	}

	if err := svc.SetCurrentSubject(ctx, ""); err != nil {
		t.Fatalf("clear subject: %v", err)
	}
	if _, ok := store.values[domain.KeyCurrentSubject]; ok {
		t.Fatalf("clearing must delete the key")
	}
}

func TestSubjectsSorted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, _ := newService(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
	raw, _ := json.Marshal(domain.Subjects{
		"zoology": {Sessions: 1},
		"algebra": {Sessions: 2},
		"music":   {Sessions: 3},
	})
	store.values[domain.KeySubjects] = string(raw)

	names := svc.Subjects(ctx)
	want := []string{"algebra", "music", "zoology"}
	if len(names) != len(want) {
		t.Fatalf("subjects: %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("subjects order: %v", names)
		}
	}
}
