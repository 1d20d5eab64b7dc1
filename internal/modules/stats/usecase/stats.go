package usecase

import (
	"context"
	"fmt"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/dto"
	statsin "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/port/in"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/service"
	apperrors "github.com/nemagoudarshrirang-sys/study-streak/internal/platform/errors"
)

type Interactor struct {
	svc *service.StatsService
}

func NewInteractor(svc *service.StatsService) statsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) RecordCompletion(ctx context.Context, input dto.CompletionInput) (dto.CompletionOutput, error) {
	if input.Minutes <= 0 {
		return dto.CompletionOutput{}, fmt.Errorf("%w: completion minutes must be positive", apperrors.ErrInvalidInput)
	}
	streak, counter, total, err := i.svc.RecordCompletion(ctx, input.Subject, input.Minutes)
	if err != nil {
		return dto.CompletionOutput{}, err
	}
	return dto.CompletionOutput{
		Streak:        streak.Streak,
		TodaySessions: counter.Count,
		TotalMinutes:  total,
	}, nil
}

func (i *Interactor) Progress(ctx context.Context) (dto.ProgressOutput, error) {
	today, err := i.svc.TodaySessions(ctx)
	if err != nil {
		return dto.ProgressOutput{}, err
	}
	return dto.ProgressOutput{
		TotalMinutes:  i.svc.TotalMinutes(ctx),
		TodaySessions: today,
	}, nil
}

func (i *Interactor) Streak(ctx context.Context) (dto.StreakOutput, error) {
	record := i.svc.Streak(ctx)
	return dto.StreakOutput{Streak: record.Streak, LastDate: record.LastDate}, nil
}

func (i *Interactor) WeeklyBars(ctx context.Context) ([]int, error) {
	return i.svc.WeeklyBars(ctx), nil
}

func (i *Interactor) Heatmap(ctx context.Context) ([]dto.HeatCellOutput, error) {
	cells := i.svc.Heatmap(ctx)
	out := make([]dto.HeatCellOutput, 0, len(cells))
	for _, cell := range cells {
		out = append(out, dto.HeatCellOutput{Date: cell.Date, Count: cell.Count, Color: cell.Color})
	}
	return out, nil
}

func (i *Interactor) Plan(ctx context.Context) ([]dto.PlanEntryOutput, error) {
	plan := i.svc.Plan(ctx)
	out := make([]dto.PlanEntryOutput, 0, len(plan))
	for _, entry := range plan {
		out = append(out, dto.PlanEntryOutput{Subject: entry.Subject, Target: entry.Target, Done: entry.Done})
	}
	return out, nil
}

func (i *Interactor) SetPlanTarget(ctx context.Context, subject string, target int) error {
	if subject == "" || target <= 0 {
		return fmt.Errorf("%w: plan needs a subject and a positive target", apperrors.ErrInvalidInput)
	}
	return i.svc.SavePlan(ctx, i.svc.Plan(ctx).SetTarget(subject, target))
}

func (i *Interactor) RemovePlanEntry(ctx context.Context, subject string) error {
	return i.svc.SavePlan(ctx, i.svc.Plan(ctx).Remove(subject))
}

func (i *Interactor) ClearPlanProgress(ctx context.Context) error {
	return i.svc.SavePlan(ctx, i.svc.Plan(ctx).ClearDone())
}

func (i *Interactor) NextPlanSubject(ctx context.Context) (string, bool, error) {
	entry, ok := i.svc.Plan(ctx).NextUnmet()
	if !ok {
		return "", false, nil
	}
	return entry.Subject, true, nil
}

func (i *Interactor) Subjects(ctx context.Context) ([]dto.SubjectOutput, error) {
	stats := i.svc.SubjectStats(ctx)
	out := make([]dto.SubjectOutput, 0, len(stats))
	for _, name := range i.svc.Subjects(ctx) {
		stat := stats[name]
		out = append(out, dto.SubjectOutput{
			Name:     name,
			Minutes:  stat.Minutes,
			Sessions: stat.Sessions,
			LastDate: stat.LastDate,
		})
	}
	return out, nil
}

func (i *Interactor) CurrentSubject(ctx context.Context) (string, error) {
	return i.svc.CurrentSubject(ctx)
}

func (i *Interactor) SetCurrentSubject(ctx context.Context, subject string) error {
	return i.svc.SetCurrentSubject(ctx, subject)
}

func (i *Interactor) Setting(ctx context.Context, key string) (string, error) {
	return i.svc.Setting(ctx, key)
}

func (i *Interactor) SetSetting(ctx context.Context, key, value string) error {
	return i.svc.SetSetting(ctx, key, value)
}

func (i *Interactor) Flag(ctx context.Context, key string, def bool) (bool, error) {
	value, err := i.svc.Setting(ctx, key)
	if err != nil {
		return def, err
	}
	switch value {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return def, nil
	}
}

func (i *Interactor) UserName(ctx context.Context) (string, error) {
	return i.svc.UserName(ctx)
}

func (i *Interactor) OnChange(fn func(key string)) (cancel func()) {
	return i.svc.Subscribe(fn)
}
