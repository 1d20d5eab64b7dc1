package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/dto"
	statsin "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/port/in"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/service"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/usecase"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/platform/clock"
	apperrors "github.com/nemagoudarshrirang-sys/study-streak/internal/platform/errors"
)

type memStore struct {
	mu     sync.Mutex
	values map[string]string
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

func newUsecase() (statsin.Usecase, *clock.Manual) {
	clk := clock.NewManual(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))
	store := &memStore{values: map[string]string{}}
	return usecase.NewInteractor(service.NewStatsService(clk, store)), clk
}

func TestRecordCompletionValidatesMinutes(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase()
	if _, err := uc.RecordCompletion(context.Background(), dto.CompletionInput{Minutes: 0}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("zero minutes should be rejected, got %v", err)
	}
	if _, err := uc.RecordCompletion(context.Background(), dto.CompletionInput{Minutes: -10}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("negative minutes should be rejected, got %v", err)
	}
}

func TestCompletionFeedsProgress(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newUsecase()

	out, err := uc.RecordCompletion(ctx, dto.CompletionInput{Subject: "math", Minutes: 25})
	if err != nil {
		t.Fatalf("record completion: %v", err)
	}
	if out.Streak != 1 || out.TodaySessions != 1 || out.TotalMinutes != 25 {
		t.Fatalf("completion output: %+v", out)
	}

	progress, err := uc.Progress(ctx)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress.TotalMinutes != 25 || progress.TodaySessions != 1 {
		t.Fatalf("progress: %+v", progress)
	}
}

func TestPlanLifecycleThroughUsecase(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newUsecase()

	if err := uc.SetPlanTarget(ctx, "", 50); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("empty subject should be rejected, got %v", err)
	}
	if err := uc.SetPlanTarget(ctx, "math", 0); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("zero target should be rejected, got %v", err)
	}

	if err := uc.SetPlanTarget(ctx, "math", 25); err != nil {
		t.Fatalf("set target: %v", err)
	}
	if err := uc.SetPlanTarget(ctx, "physics", 50); err != nil {
		t.Fatalf("set target: %v", err)
	}
	if err := uc.SetCurrentSubject(ctx, "math"); err != nil {
		t.Fatalf("set subject: %v", err)
	}
	if _, err := uc.RecordCompletion(ctx, dto.CompletionInput{Subject: "math", Minutes: 25}); err != nil {
		t.Fatalf("record completion: %v", err)
	}

	subject, ok, err := uc.NextPlanSubject(ctx)
	if err != nil || !ok {
		t.Fatalf("next plan subject: ok=%v err=%v", ok, err)
	}
	if subject != "physics" {
		t.Fatalf("met targets must be skipped, got %q", subject)
	}

	if err := uc.ClearPlanProgress(ctx); err != nil {
		t.Fatalf("clear progress: %v", err)
	}
	plan, err := uc.Plan(ctx)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if plan[0].Done != 0 || plan[0].Target != 25 {
		t.Fatalf("cleared entry: %+v", plan[0])
	}

	if err := uc.RemovePlanEntry(ctx, "math"); err != nil {
		t.Fatalf("remove entry: %v", err)
	}
	plan, _ = uc.Plan(ctx)
	if len(plan) != 1 || plan[0].Subject != "physics" {
		t.Fatalf("plan after remove: %+v", plan)
	}
}

func TestFlagParsing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newUsecase()

	// autoFocusRoom defaults on, autoPlan defaults off.
	on, err := uc.Flag(ctx, dto.SettingAutoFocusRoom, false)
	if err != nil || !on {
		t.Fatalf("auto focus room default: on=%v err=%v", on, err)
	}
	off, err := uc.Flag(ctx, dto.SettingAutoPlan, true)
	if err != nil || off {
		t.Fatalf("auto plan default: on=%v err=%v", off, err)
	}

	if err := uc.SetSetting(ctx, dto.SettingAutoPlan, "on"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	on, err = uc.Flag(ctx, dto.SettingAutoPlan, false)
	if err != nil || !on {
		t.Fatalf("auto plan after set: on=%v err=%v", on, err)
	}

	// Unparseable values fall back to the caller default.
	if err := uc.SetSetting(ctx, dto.SettingAutoPlan, "maybe"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	got, err := uc.Flag(ctx, dto.SettingAutoPlan, true)
	if err != nil || !got {
		t.Fatalf("unparseable flag should use default: got=%v err=%v", got, err)
	}
}
