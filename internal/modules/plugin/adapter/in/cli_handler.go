package in

import (
	"context"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/dto"
	pluginin "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/port/in"
)

type CLIHandler struct {
	usecase pluginin.Usecase
}

func NewCLIHandler(usecase pluginin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Check(ctx context.Context, name string) (dto.PluginInfo, error) {
	return h.usecase.Check(ctx, name)
}
