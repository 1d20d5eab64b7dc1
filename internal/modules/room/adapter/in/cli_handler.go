package in

import (
	"context"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/dto"
	roomin "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/port/in"
)

type CLIHandler struct {
	usecase roomin.Usecase
}

func NewCLIHandler(usecase roomin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Join(ctx context.Context, code string) (dto.GroupOutput, error) {
	return h.usecase.Join(ctx, code)
}

func (h CLIHandler) Leave(ctx context.Context) error {
	return h.usecase.LeaveGroup(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.GroupOutput, error) {
	return h.usecase.Group(ctx)
}
