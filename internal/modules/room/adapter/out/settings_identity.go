package out

import (
	"context"

	roomout "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/port/out"
	statsdto "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/dto"
	statsin "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/port/in"
)

// SettingsIdentity resolves identity and membership from the shared
// settings store.
type SettingsIdentity struct {
	stats statsin.Usecase
}

func NewSettingsIdentity(stats statsin.Usecase) roomout.Identity {
	return &SettingsIdentity{stats: stats}
}

func (a *SettingsIdentity) UserName(ctx context.Context) (string, error) {
	return a.stats.UserName(ctx)
}

func (a *SettingsIdentity) GroupCode(ctx context.Context) (string, error) {
	return a.stats.Setting(ctx, statsdto.SettingGroupCode)
}

func (a *SettingsIdentity) SetGroupCode(ctx context.Context, code string) error {
	return a.stats.SetSetting(ctx, statsdto.SettingGroupCode, code)
}

func (a *SettingsIdentity) AutoEnter(ctx context.Context) (bool, error) {
	return a.stats.Flag(ctx, statsdto.SettingAutoFocusRoom, true)
}
