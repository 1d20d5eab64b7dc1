package in

import (
	"context"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.StatusOutput, error)
	Pause(ctx context.Context) (dto.StatusOutput, error)
	// Reset requires confirmed=true; an unconfirmed reset mutates nothing.
	Reset(ctx context.Context, confirmed bool) (dto.StatusOutput, error)
	Tick(ctx context.Context) (dto.StatusOutput, error)
	StartBreak(ctx context.Context, minutes int) (dto.StatusOutput, error)
	EndBreak(ctx context.Context) (dto.StatusOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	// Run drives the countdown with a wall-clock ticker until the session
	// completes or ctx is cancelled. Headless counterpart of the TUI tick.
	Run(ctx context.Context) (dto.StatusOutput, error)
}
