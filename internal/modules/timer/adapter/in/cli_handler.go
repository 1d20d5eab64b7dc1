package in

import (
	"context"
	"errors"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/dto"
	timerin "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/port/in"
	apperrors "github.com/nemagoudarshrirang-sys/study-streak/internal/platform/errors"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Pause(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Reset(ctx context.Context, confirmed bool) (dto.StatusOutput, error) {
	return h.usecase.Reset(ctx, confirmed)
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) StartBreak(ctx context.Context, minutes int) (dto.StatusOutput, error) {
	return h.usecase.StartBreak(ctx, minutes)
}

func (h CLIHandler) EndBreak(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.EndBreak(ctx)
}

// Run starts the countdown (resuming an auto-restored one is fine) and
// blocks until it completes.
func (h CLIHandler) Run(ctx context.Context) (dto.StatusOutput, error) {
	if _, err := h.usecase.Start(ctx); err != nil && !errors.Is(err, apperrors.ErrTimerRunning) {
		return dto.StatusOutput{}, err
	}
	return h.usecase.Run(ctx)
}
