package out

import (
	"context"
	"fmt"
	"strconv"

	statsdto "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/dto"
	statsin "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/port/in"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/domain"
	timerout "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/port/out"
)

// SettingsConfigSource resolves the duration configuration from the shared
// settings, the way mid-session preset changes expect: read fresh on every
// start, reset and completion.
type SettingsConfigSource struct {
	stats statsin.Usecase
}

func NewSettingsConfigSource(stats statsin.Usecase) timerout.ConfigSource {
	return &SettingsConfigSource{stats: stats}
}

func (s *SettingsConfigSource) Duration(ctx context.Context) (domain.DurationConfig, error) {
	intensity, err := s.stats.Setting(ctx, statsdto.SettingFocusIntensity)
	if err != nil {
		return domain.DurationConfig{}, fmt.Errorf("read intensity: %w", err)
	}
	length, err := s.stats.Setting(ctx, statsdto.SettingSessionLength)
	if err != nil {
		return domain.DurationConfig{}, fmt.Errorf("read session length: %w", err)
	}
	custom, _ := strconv.Atoi(length)
	return domain.DurationConfig{Intensity: domain.Intensity(intensity), CustomMinutes: custom}, nil
}
