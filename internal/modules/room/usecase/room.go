package usecase

import (
	"context"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/domain"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/dto"
	roomin "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/port/in"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/service"
)

type Interactor struct {
	svc *service.RoomService
}

func NewInteractor(svc *service.RoomService) roomin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Join(ctx context.Context, code string) (dto.GroupOutput, error) {
	group, err := i.svc.Join(ctx, code)
	if err != nil {
		return dto.GroupOutput{}, err
	}
	return toOutput(group), nil
}

func (i *Interactor) LeaveGroup(ctx context.Context) error {
	return i.svc.LeaveGroup(ctx)
}

func (i *Interactor) Group(ctx context.Context) (dto.GroupOutput, error) {
	group, err := i.svc.Group(ctx)
	if err != nil {
		return dto.GroupOutput{}, err
	}
	return toOutput(group), nil
}

func (i *Interactor) Enter(ctx context.Context) {
	i.svc.Enter(ctx)
}

func (i *Interactor) Leave(ctx context.Context) {
	i.svc.Leave(ctx)
}

func toOutput(group domain.Group) dto.GroupOutput {
	out := dto.GroupOutput{Code: group.Code}
	for _, member := range group.Members {
		mark, focusing := group.ActiveSessions[member]
		out.Members = append(out.Members, dto.MemberOutput{
			Name:      member,
			Focusing:  focusing,
			StartedAt: mark.StartedAt,
		})
	}
	return out
}
