package in

import (
	"context"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/dto"
	statsin "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Progress(ctx context.Context) (dto.ProgressOutput, error) {
	return h.usecase.Progress(ctx)
}

func (h CLIHandler) Streak(ctx context.Context) (dto.StreakOutput, error) {
	return h.usecase.Streak(ctx)
}

func (h CLIHandler) Heatmap(ctx context.Context) ([]dto.HeatCellOutput, error) {
	return h.usecase.Heatmap(ctx)
}

func (h CLIHandler) WeeklyBars(ctx context.Context) ([]int, error) {
	return h.usecase.WeeklyBars(ctx)
}

func (h CLIHandler) Plan(ctx context.Context) ([]dto.PlanEntryOutput, error) {
	return h.usecase.Plan(ctx)
}

func (h CLIHandler) SetPlanTarget(ctx context.Context, subject string, target int) error {
	return h.usecase.SetPlanTarget(ctx, subject, target)
}

func (h CLIHandler) RemovePlanEntry(ctx context.Context, subject string) error {
	return h.usecase.RemovePlanEntry(ctx, subject)
}

func (h CLIHandler) ClearPlanProgress(ctx context.Context) error {
	return h.usecase.ClearPlanProgress(ctx)
}

func (h CLIHandler) Subjects(ctx context.Context) ([]dto.SubjectOutput, error) {
	return h.usecase.Subjects(ctx)
}

func (h CLIHandler) SetCurrentSubject(ctx context.Context, subject string) error {
	return h.usecase.SetCurrentSubject(ctx, subject)
}

func (h CLIHandler) CurrentSubject(ctx context.Context) (string, error) {
	return h.usecase.CurrentSubject(ctx)
}

func (h CLIHandler) Setting(ctx context.Context, key string) (string, error) {
	return h.usecase.Setting(ctx, key)
}

func (h CLIHandler) SetSetting(ctx context.Context, key, value string) error {
	return h.usecase.SetSetting(ctx, key, value)
}
