package usecase

import (
	"context"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/dto"
	pluginin "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/port/in"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/service"
)

type Interactor struct {
	svc *service.PluginService
}

func NewInteractor(svc *service.PluginService) pluginin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Check(ctx context.Context, name string) (dto.PluginInfo, error) {
	return i.svc.Check(ctx, name)
}

func (i *Interactor) Notify(ctx context.Context, event dto.Event) {
	i.svc.Notify(ctx, event)
}
