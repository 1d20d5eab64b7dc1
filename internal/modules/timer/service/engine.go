package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/domain"
	timerout "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/port/out"
	apperrors "github.com/nemagoudarshrirang-sys/study-streak/internal/platform/errors"
)

// Status is the engine's observable state at one instant.
type Status struct {
	State          domain.State
	Remaining      int
	BreakState     domain.BreakState
	BreakRemaining int
	Line           string
}

// Engine owns the session countdown and the break countdown behind one
// mutex. Ticks are driven externally (TUI tick or headless ticker), so at
// most one tick is ever pending. Event dispatch happens outside the lock so
// a sink may call back into the engine.
type Engine struct {
	mu        sync.Mutex
	session   *domain.Machine
	brk       *domain.Break
	snapshots timerout.SnapshotStore
	config    timerout.ConfigSource
	sink      timerout.EventSink
	status    string
}

func NewEngine(ctx context.Context, snapshots timerout.SnapshotStore, config timerout.ConfigSource) *Engine {
	e := &Engine{
		snapshots: snapshots,
		config:    config,
		brk:       domain.NewBreak(),
		status:    "Not started",
	}
	e.session = domain.NewMachine(e.duration(ctx).Seconds())

	// Auto-resume: a snapshot left running by a previous process re-enters
	// Running without user action; a stopped snapshot only seeds the clock.
	if snapshot, ok, err := snapshots.Load(ctx); err == nil && ok {
		if snapshot.Running {
			e.session.Resume(snapshot.Remaining)
			e.status = "Studying…"
		} else {
			e.session.Seed(snapshot.Remaining)
		}
	}
	return e
}

// SetSink binds the event sink. Called once during wiring, before ticking
// begins.
func (e *Engine) SetSink(sink timerout.EventSink) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sink = sink
}

func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if err := e.session.Start(e.duration(ctx).Seconds()); err != nil {
		e.mu.Unlock()
		return err
	}
	e.status = "Studying…"
	err := e.persist(ctx)
	sink := e.sink
	e.mu.Unlock()

	if sink != nil {
		sink.SessionStarted(ctx)
	}
	return err
}

func (e *Engine) Pause(ctx context.Context) error {
	e.mu.Lock()
	if err := e.session.Pause(); err != nil {
		e.mu.Unlock()
		return err
	}
	e.status = "Paused"
	err := e.persist(ctx)
	sink := e.sink
	e.mu.Unlock()

	if sink != nil {
		sink.SessionPaused(ctx)
	}
	return err
}

// Reset is gated on explicit confirmation; a cancelled confirmation leaves
// every piece of state untouched.
func (e *Engine) Reset(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return apperrors.ErrResetNotConfirmed
	}
	e.mu.Lock()
	e.session.Reset(e.duration(ctx).Seconds())
	e.status = "Not started"
	err := e.persist(ctx)
	sink := e.sink
	e.mu.Unlock()

	if sink != nil {
		sink.SessionReset(ctx)
	}
	return err
}

// Tick advances both countdowns by one second and persists the snapshot.
// Completion side effects fire exactly once, after the lock is released.
func (e *Engine) Tick(ctx context.Context) (completed, breakExpired bool, err error) {
	e.mu.Lock()
	var minutes int
	if e.session.Running() && e.session.Remaining() <= 1 {
		// The countdown ends on this tick; read the configuration now so
		// the credited minutes and the reseeded clock match it.
		cfg := e.duration(ctx)
		completed = e.session.Tick(cfg.Seconds())
		minutes = cfg.Seconds() / 60
	} else {
		completed = e.session.Tick(0)
	}
	if completed {
		e.status = "Session complete ✅"
	}
	if breakExpired = e.brk.Tick(); breakExpired {
		e.status = "Break over. Ready?"
	}
	err = e.persist(ctx)
	sink := e.sink
	e.mu.Unlock()

	if sink != nil {
		if completed {
			sink.SessionCompleted(ctx, minutes)
		}
		if breakExpired {
			sink.BreakExpired(ctx)
		}
	}
	return completed, breakExpired, err
}

func (e *Engine) StartBreak(ctx context.Context, minutes int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.brk.Start(minutes); err != nil {
		return err
	}
	e.status = fmt.Sprintf("Break %dm", minutes)
	return nil
}

func (e *Engine) EndBreak(context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.brk.End()
	e.status = "Break ended"
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Status{
		State:          e.session.State(),
		Remaining:      e.session.Remaining(),
		BreakState:     e.brk.State(),
		BreakRemaining: e.brk.Remaining(),
		Line:           e.status,
	}
}

// Ticking reports whether either countdown still needs a tick scheduled.
func (e *Engine) Ticking() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Running() || e.brk.Running()
}

func (e *Engine) duration(ctx context.Context) domain.DurationConfig {
	cfg, err := e.config.Duration(ctx)
	if err != nil {
		return domain.DurationConfig{}
	}
	return cfg
}

func (e *Engine) persist(ctx context.Context) error {
	if err := e.snapshots.Save(ctx, e.session.Snapshot()); err != nil {
		return fmt.Errorf("persist timer snapshot: %w", err)
	}
	return nil
}
