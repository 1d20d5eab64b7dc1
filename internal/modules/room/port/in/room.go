package in

import (
	"context"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/dto"
)

type Usecase interface {
	Join(ctx context.Context, code string) (dto.GroupOutput, error)
	LeaveGroup(ctx context.Context) error
	Group(ctx context.Context) (dto.GroupOutput, error)

	// Enter and Leave publish presence for the joined group. Both are
	// fire-and-forget: remote failures are logged, never returned, and
	// never block the caller's timer.
	Enter(ctx context.Context)
	Leave(ctx context.Context)
}
