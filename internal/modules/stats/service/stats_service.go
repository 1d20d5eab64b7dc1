package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/domain"
	statsout "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/port/out"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/platform/clock"
	apperrors "github.com/nemagoudarshrirang-sys/study-streak/internal/platform/errors"
)

// settingDefaults are applied when a setting has never been written. The
// focus-room auto-enter defaults on, everything else off.
var settingDefaults = map[string]string{
	domain.KeyAutoFocusRoom:  "on",
	domain.KeyAutoPlan:       "off",
	domain.KeyFocusReminder:  "off",
	domain.KeySessionMood:    "Neutral",
	domain.KeyFocusIntensity: "Normal",
}

var settingKeys = map[string]struct{}{
	domain.KeySessionLength:    {},
	domain.KeyFocusIntensity:   {},
	domain.KeyAutoPlan:         {},
	domain.KeyAutoFocusRoom:    {},
	domain.KeyFocusReminder:    {},
	domain.KeySessionMood:      {},
	domain.KeySessionIntention: {},
	domain.KeyGroupCode:        {},
	domain.KeyUserName:         {},
}

type StatsService struct {
	clock clock.Clock
	store statsout.StateStore
}

func NewStatsService(clk clock.Clock, store statsout.StateStore) *StatsService {
	return &StatsService{clock: clk, store: store}
}

// RecordCompletion applies every durable effect of one finished countdown:
// streak reconciliation, today counter, history overwrite, total minutes and,
// when a subject is set, subject stats and plan progress.
func (s *StatsService) RecordCompletion(ctx context.Context, subject string, minutes int) (domain.StreakRecord, domain.TodayCounter, int, error) {
	now := s.clock.Now()

	var streak domain.StreakRecord
	s.getJSON(ctx, domain.KeyStreak, &streak)
	streak = streak.Reconcile(now)
	if err := s.setJSON(ctx, domain.KeyStreak, streak); err != nil {
		return domain.StreakRecord{}, domain.TodayCounter{}, 0, err
	}

	counter, err := s.todayCounter(ctx)
	if err != nil {
		return domain.StreakRecord{}, domain.TodayCounter{}, 0, err
	}
	counter.Count++
	if err := s.saveTodayCounter(ctx, counter); err != nil {
		return domain.StreakRecord{}, domain.TodayCounter{}, 0, err
	}

	history := domain.History{}
	s.getJSON(ctx, domain.KeyHistory, &history)
	history[counter.Date] = counter.Count
	if err := s.setJSON(ctx, domain.KeyHistory, history); err != nil {
		return domain.StreakRecord{}, domain.TodayCounter{}, 0, err
	}

	total := s.getInt(ctx, domain.KeyTotalMinutes) + minutes
	if err := s.store.Set(ctx, domain.KeyTotalMinutes, strconv.Itoa(total)); err != nil {
		return domain.StreakRecord{}, domain.TodayCounter{}, 0, fmt.Errorf("save total minutes: %w", err)
	}

	if subject != "" {
		subjects := domain.Subjects{}
		s.getJSON(ctx, domain.KeySubjects, &subjects)
		subjects.Apply(subject, minutes, now)
		if err := s.setJSON(ctx, domain.KeySubjects, subjects); err != nil {
			return domain.StreakRecord{}, domain.TodayCounter{}, 0, err
		}

		var plan domain.Plan
		s.getJSON(ctx, domain.KeyPlan, &plan)
		if err := s.setJSON(ctx, domain.KeyPlan, plan.Apply(subject, minutes)); err != nil {
			return domain.StreakRecord{}, domain.TodayCounter{}, 0, err
		}
	}

	return streak, counter, total, nil
}

func (s *StatsService) Streak(ctx context.Context) domain.StreakRecord {
	var streak domain.StreakRecord
	s.getJSON(ctx, domain.KeyStreak, &streak)
	return streak
}

// TodaySessions reads the per-day counter, lazily resetting it when the
// stored date is no longer today.
func (s *StatsService) TodaySessions(ctx context.Context) (int, error) {
	counter, err := s.todayCounter(ctx)
	if err != nil {
		return 0, err
	}
	return counter.Count, nil
}

func (s *StatsService) TotalMinutes(ctx context.Context) int {
	return s.getInt(ctx, domain.KeyTotalMinutes)
}

func (s *StatsService) History(ctx context.Context) domain.History {
	history := domain.History{}
	s.getJSON(ctx, domain.KeyHistory, &history)
	return history
}

func (s *StatsService) WeeklyBars(ctx context.Context) []int {
	return domain.WeeklyBars(s.History(ctx), s.clock.Now())
}

func (s *StatsService) Heatmap(ctx context.Context) []domain.HeatCell {
	return domain.Heatmap(s.History(ctx), s.clock.Now())
}

func (s *StatsService) Plan(ctx context.Context) domain.Plan {
	var plan domain.Plan
	s.getJSON(ctx, domain.KeyPlan, &plan)
	return plan
}

func (s *StatsService) SavePlan(ctx context.Context, plan domain.Plan) error {
	return s.setJSON(ctx, domain.KeyPlan, plan)
}

func (s *StatsService) Subjects(ctx context.Context) []string {
	subjects := domain.Subjects{}
	s.getJSON(ctx, domain.KeySubjects, &subjects)
	names := make([]string, 0, len(subjects))
	for name := range subjects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *StatsService) SubjectStats(ctx context.Context) domain.Subjects {
	subjects := domain.Subjects{}
	s.getJSON(ctx, domain.KeySubjects, &subjects)
	return subjects
}

func (s *StatsService) Setting(ctx context.Context, key string) (string, error) {
	if _, ok := settingKeys[key]; !ok {
		return "", fmt.Errorf("%w: setting %q", apperrors.ErrInvalidInput, key)
	}
	value, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("read setting %s: %w", key, err)
	}
	if !ok || value == "" {
		return settingDefaults[key], nil
	}
	return value, nil
}

func (s *StatsService) SetSetting(ctx context.Context, key, value string) error {
	if _, ok := settingKeys[key]; !ok {
		return fmt.Errorf("%w: setting %q", apperrors.ErrInvalidInput, key)
	}
	if err := s.store.Set(ctx, key, value); err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	return nil
}

func (s *StatsService) CurrentSubject(ctx context.Context) (string, error) {
	subject, _, err := s.store.Get(ctx, domain.KeyCurrentSubject)
	if err != nil {
		return "", fmt.Errorf("read current subject: %w", err)
	}
	return subject, nil
}

func (s *StatsService) SetCurrentSubject(ctx context.Context, subject string) error {
	if subject == "" {
		if err := s.store.Delete(ctx, domain.KeyCurrentSubject); err != nil {
			return fmt.Errorf("clear current subject: %w", err)
		}
		return nil
	}
	if err := s.store.Set(ctx, domain.KeyCurrentSubject, subject); err != nil {
		return fmt.Errorf("save current subject: %w", err)
	}
	return nil
}

// UserName resolves the stable display identity, caching "Anonymous" on
// first use.
func (s *StatsService) UserName(ctx context.Context) (string, error) {
	name, ok, err := s.store.Get(ctx, domain.KeyUserName)
	if err != nil {
		return "", fmt.Errorf("read user name: %w", err)
	}
	if ok && name != "" {
		return name, nil
	}
	name = "Anonymous"
	if err := s.store.Set(ctx, domain.KeyUserName, name); err != nil {
		return "", fmt.Errorf("save user name: %w", err)
	}
	return name, nil
}

func (s *StatsService) Subscribe(fn func(key string)) (cancel func()) {
	return s.store.Subscribe(fn)
}

func (s *StatsService) todayCounter(ctx context.Context) (domain.TodayCounter, error) {
	counter := domain.TodayCounter{
		Date:  s.str(ctx, domain.KeyTodayDate),
		Count: s.getInt(ctx, domain.KeyTodaySessions),
	}
	rolled := counter.Rolled(s.clock.Now())
	if rolled != counter {
		if err := s.saveTodayCounter(ctx, rolled); err != nil {
			return domain.TodayCounter{}, err
		}
	}
	return rolled, nil
}

func (s *StatsService) saveTodayCounter(ctx context.Context, counter domain.TodayCounter) error {
	if err := s.store.Set(ctx, domain.KeyTodayDate, counter.Date); err != nil {
		return fmt.Errorf("save today date: %w", err)
	}
	if err := s.store.Set(ctx, domain.KeyTodaySessions, strconv.Itoa(counter.Count)); err != nil {
		return fmt.Errorf("save today sessions: %w", err)
	}
	return nil
}

// getJSON decodes the stored document into v. Missing or corrupt values are
// treated as absent: v keeps its zero value.
func (s *StatsService) getJSON(ctx context.Context, key string, v any) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil || !ok || raw == "" {
		return
	}
	_ = json.Unmarshal([]byte(raw), v)
}

func (s *StatsService) setJSON(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, string(payload)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *StatsService) getInt(ctx context.Context, key string) int {
	n, err := strconv.Atoi(s.str(ctx, key))
	if err != nil {
		return 0
	}
	return n
}

func (s *StatsService) str(ctx context.Context, key string) string {
	value, _, _ := s.store.Get(ctx, key)
	return value
}
