package in

import (
	"context"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Check(ctx context.Context, name string) (dto.PluginInfo, error)

	// Notify fans the event out to every installed notifier. Fire and
	// forget: a broken plugin is logged and skipped, never surfaced to the
	// timer.
	Notify(ctx context.Context, event dto.Event)
}
