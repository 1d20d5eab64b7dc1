package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	plugininadapter "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/adapter/in"
	pluginoutadapter "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/adapter/out"
	pluginin "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/port/in"
	pluginservice "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/service"
	pluginusecase "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/usecase"
	roominadapter "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/adapter/in"
	roomoutadapter "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/adapter/out"
	roomin "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/port/in"
	roomservice "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/service"
	roomusecase "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/usecase"
	statsinadapter "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/adapter/in"
	statsoutadapter "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/adapter/out"
	statsin "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/port/in"
	statsservice "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/service"
	statsusecase "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/usecase"
	timerinadapter "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/adapter/in"
	timeroutadapter "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/adapter/out"
	timerin "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/port/in"
	timerservice "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/service"
	timerusecase "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/usecase"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/platform/clock"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/platform/config"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/platform/id"
	uiapp "github.com/nemagoudarshrirang-sys/study-streak/internal/ui/app"
)

type App struct {
	Config config.Config

	TimerCLI  timerinadapter.CLIHandler
	StatsCLI  statsinadapter.CLIHandler
	RoomCLI   roominadapter.CLIHandler
	PluginCLI plugininadapter.CLIHandler

	timerUC  timerin.Usecase
	statsUC  statsin.Usecase
	roomUC   roomin.Usecase
	pluginUC pluginin.Usecase

	store *statsoutadapter.SQLiteStateStore
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	log := newLogger(cfg.DataDir)

	store, err := statsoutadapter.NewSQLiteStateStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new state store: %w", err)
	}
	if err := store.WatchExternal(cfg.DBPath); err != nil {
		// The app still works without cross-process resync.
		log.Warn("state watcher unavailable", "error", err)
	}

	statsUC := statsusecase.NewInteractor(
		statsservice.NewStatsService(clock.SystemClock{}, store),
	)

	roomUC := roomusecase.NewInteractor(roomservice.NewRoomService(
		roomoutadapter.NewHTTPGroupStore(cfg.RoomBaseURL),
		roomoutadapter.NewSettingsIdentity(statsUC),
		log.Named("room"),
	))

	pluginUC := pluginusecase.NewInteractor(pluginservice.NewPluginService(
		pluginoutadapter.NewFileManifestStore(cfg.PluginsPath),
		pluginoutadapter.NewGRPCHost(cfg.PluginCallTimeout),
		log.Named("plugin"),
	))

	engine := timerservice.NewEngine(ctx,
		timeroutadapter.NewKVSnapshotStore(store),
		timeroutadapter.NewSettingsConfigSource(statsUC),
	)
	timerUC := timerusecase.NewInteractor(engine, statsUC, roomUC, pluginUC, id.UUID{}, log.Named("timer"))

	return &App{
		Config:    cfg,
		TimerCLI:  timerinadapter.NewCLIHandler(timerUC),
		StatsCLI:  statsinadapter.NewCLIHandler(statsUC),
		RoomCLI:   roominadapter.NewCLIHandler(roomUC),
		PluginCLI: plugininadapter.NewCLIHandler(pluginUC),
		timerUC:   timerUC,
		statsUC:   statsUC,
		roomUC:    roomUC,
		pluginUC:  pluginUC,
		store:     store,
	}, nil
}

func (a *App) Close() error {
	return a.store.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.timerUC, app.statsUC, app.roomUC, app.pluginUC, app.Config.ReminderInterval)
	program := tea.NewProgram(model, tea.WithAltScreen())

	// Out-of-process writes surface through the file watcher with an empty
	// key; in-process mutations refresh through the normal message flow.
	cancel := app.statsUC.OnChange(func(key string) {
		if key == "" {
			program.Send(uiapp.StoreChangedMsg{})
		}
	})
	defer cancel()

	_, err := program.Run()
	return err
}

// newLogger writes to <data>/study-streak.log so log lines never tear the
// TUI. Logging is best-effort: on failure everything is discarded.
func newLogger(dataDir string) hclog.Logger {
	out := io.Writer(io.Discard)
	if f, err := os.OpenFile(filepath.Join(dataDir, "study-streak.log"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
		out = f
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "study-streak",
		Level:  hclog.Info,
		Output: out,
	})
}
