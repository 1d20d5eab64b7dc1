package in

import (
	"context"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/dto"
)

type Usecase interface {
	RecordCompletion(ctx context.Context, input dto.CompletionInput) (dto.CompletionOutput, error)

	Progress(ctx context.Context) (dto.ProgressOutput, error)
	Streak(ctx context.Context) (dto.StreakOutput, error)
	WeeklyBars(ctx context.Context) ([]int, error)
	Heatmap(ctx context.Context) ([]dto.HeatCellOutput, error)

	Plan(ctx context.Context) ([]dto.PlanEntryOutput, error)
	SetPlanTarget(ctx context.Context, subject string, target int) error
	RemovePlanEntry(ctx context.Context, subject string) error
	ClearPlanProgress(ctx context.Context) error
	NextPlanSubject(ctx context.Context) (string, bool, error)

	Subjects(ctx context.Context) ([]dto.SubjectOutput, error)
	CurrentSubject(ctx context.Context) (string, error)
	SetCurrentSubject(ctx context.Context, subject string) error

	Setting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	Flag(ctx context.Context, key string, def bool) (bool, error)
	UserName(ctx context.Context) (string, error)

	// OnChange registers a storage-changed observer for live resync of any
	// open view.
	OnChange(fn func(key string)) (cancel func())
}
