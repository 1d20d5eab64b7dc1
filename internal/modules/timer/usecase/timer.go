package usecase

import (
	"context"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	plugindto "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/dto"
	pluginin "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/port/in"
	roomin "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/port/in"
	statsdto "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/dto"
	statsin "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/port/in"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/dto"
	timerin "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/port/in"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/service"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/platform/id"
)

// Interactor drives the engine and fans completion side effects out to the
// stats, room and plugin modules. It is also the engine's event sink.
type Interactor struct {
	engine  *service.Engine
	stats   statsin.Usecase
	room    roomin.Usecase
	plugins pluginin.Usecase
	ids     id.Generator
	log     hclog.Logger

	mu        sync.Mutex
	sessionID string
}

func NewInteractor(engine *service.Engine, stats statsin.Usecase, room roomin.Usecase, plugins pluginin.Usecase, ids id.Generator, log hclog.Logger) timerin.Usecase {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if ids == nil {
		ids = id.UUID{}
	}
	i := &Interactor{engine: engine, stats: stats, room: room, plugins: plugins, ids: ids, log: log}
	engine.SetSink(i)
	return i
}

func (i *Interactor) Start(ctx context.Context) (dto.StatusOutput, error) {
	if err := i.engine.Start(ctx); err != nil {
		return dto.StatusOutput{}, err
	}
	return i.status(), nil
}

func (i *Interactor) Pause(ctx context.Context) (dto.StatusOutput, error) {
	if err := i.engine.Pause(ctx); err != nil {
		return dto.StatusOutput{}, err
	}
	return i.status(), nil
}

func (i *Interactor) Reset(ctx context.Context, confirmed bool) (dto.StatusOutput, error) {
	if err := i.engine.Reset(ctx, confirmed); err != nil {
		return dto.StatusOutput{}, err
	}
	return i.status(), nil
}

func (i *Interactor) Tick(ctx context.Context) (dto.StatusOutput, error) {
	completed, breakExpired, err := i.engine.Tick(ctx)
	if err != nil {
		// A failed snapshot write must not stop the countdown.
		i.log.Warn("tick persistence failed", "error", err)
	}
	out := i.status()
	out.Completed = completed
	out.BreakExpired = breakExpired
	return out, nil
}

func (i *Interactor) StartBreak(ctx context.Context, minutes int) (dto.StatusOutput, error) {
	if err := i.engine.StartBreak(ctx, minutes); err != nil {
		return dto.StatusOutput{}, err
	}
	return i.status(), nil
}

func (i *Interactor) EndBreak(ctx context.Context) (dto.StatusOutput, error) {
	i.engine.EndBreak(ctx)
	return i.status(), nil
}

func (i *Interactor) Status(context.Context) (dto.StatusOutput, error) {
	return i.status(), nil
}

// Run drives the engine with a wall-clock ticker until the running session
// completes or ctx is cancelled.
func (i *Interactor) Run(ctx context.Context) (dto.StatusOutput, error) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return i.status(), ctx.Err()
		case <-ticker.C:
			out, err := i.Tick(ctx)
			if err != nil {
				return out, err
			}
			if out.Completed {
				return out, nil
			}
			if !i.engine.Ticking() {
				return out, nil
			}
		}
	}
}

// ─── engine event sink ───────────────────────────────────────────────────────

// SessionStarted assigns a session id on a fresh start. Resuming from pause
// keeps the id of the interrupted session.
func (i *Interactor) SessionStarted(ctx context.Context) {
	i.mu.Lock()
	if i.sessionID == "" {
		i.sessionID = i.ids.New()
	}
	i.mu.Unlock()
	if i.room != nil {
		i.room.Enter(ctx)
	}
}

func (i *Interactor) SessionPaused(ctx context.Context) {
	if i.room != nil {
		i.room.Leave(ctx)
	}
}

func (i *Interactor) SessionReset(ctx context.Context) {
	i.takeSessionID()
	if i.room != nil {
		i.room.Leave(ctx)
	}
}

func (i *Interactor) SessionCompleted(ctx context.Context, minutes int) {
	sessionID := i.takeSessionID()
	subject := ""
	if i.stats != nil {
		var err error
		if subject, err = i.stats.CurrentSubject(ctx); err != nil {
			i.log.Warn("read current subject", "error", err)
			subject = ""
		}
	}

	var completion statsdto.CompletionOutput
	if i.stats != nil {
		out, err := i.stats.RecordCompletion(ctx, statsdto.CompletionInput{Subject: subject, Minutes: minutes})
		if err != nil {
			i.log.Warn("record completion", "error", err)
		} else {
			completion = out
		}
	}

	if i.room != nil {
		i.room.Leave(ctx)
	}
	if i.plugins != nil {
		i.plugins.Notify(ctx, plugindto.Event{
			Kind:          plugindto.EventSessionCompleted,
			SessionID:     sessionID,
			Subject:       subject,
			Minutes:       minutes,
			Streak:        completion.Streak,
			TodaySessions: completion.TodaySessions,
			TotalMinutes:  completion.TotalMinutes,
			At:            time.Now().UTC(),
		})
	}
}

// BreakExpired chains into the next planned subject when auto-plan is on:
// the first plan entry with unmet target becomes the current subject and the
// session timer starts without user action.
func (i *Interactor) BreakExpired(ctx context.Context) {
	if i.plugins != nil {
		i.plugins.Notify(ctx, plugindto.Event{Kind: plugindto.EventBreakOver, At: time.Now().UTC()})
	}
	if i.stats == nil {
		return
	}
	autoPlan, err := i.stats.Flag(ctx, statsdto.SettingAutoPlan, false)
	if err != nil || !autoPlan {
		return
	}
	subject, ok, err := i.stats.NextPlanSubject(ctx)
	if err != nil || !ok {
		return
	}
	if err := i.stats.SetCurrentSubject(ctx, subject); err != nil {
		i.log.Warn("set current subject", "error", err)
		return
	}
	if err := i.engine.Start(ctx); err != nil {
		i.log.Warn("auto-plan start", "error", err)
	}
}

func (i *Interactor) takeSessionID() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	sessionID := i.sessionID
	i.sessionID = ""
	return sessionID
}

func (i *Interactor) status() dto.StatusOutput {
	s := i.engine.Status()
	return dto.StatusOutput{
		State:          string(s.State),
		Remaining:      s.Remaining,
		BreakState:     string(s.BreakState),
		BreakRemaining: s.BreakRemaining,
		Status:         s.Line,
	}
}
