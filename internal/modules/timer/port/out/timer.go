package out

import (
	"context"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/domain"
)

// SnapshotStore persists the live countdown so a restarted process can
// resume an in-flight session.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot domain.Snapshot) error
	Load(ctx context.Context) (domain.Snapshot, bool, error)
}

// ConfigSource resolves the current duration configuration. Read at start,
// reset and completion time so mid-session configuration changes apply to
// the next countdown.
type ConfigSource interface {
	Duration(ctx context.Context) (domain.DurationConfig, error)
}

// EventSink receives engine transitions. Implementations must not block:
// the engine dispatches outside its lock but on the tick path.
type EventSink interface {
	SessionStarted(ctx context.Context)
	SessionPaused(ctx context.Context)
	SessionReset(ctx context.Context)
	SessionCompleted(ctx context.Context, minutes int)
	BreakExpired(ctx context.Context)
}
