package out

import (
	"context"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/domain"
)

// GroupStore is the remote focus-room document store. Mutations against
// ActiveSessions are field-scoped merges keyed by user name so concurrent
// devices never clobber each other's presence entries.
type GroupStore interface {
	Get(ctx context.Context, code string) (domain.Group, error)
	Join(ctx context.Context, code, user string) (domain.Group, error)
	Leave(ctx context.Context, code, user string) error
	SetActive(ctx context.Context, code, user string) error
	ClearActive(ctx context.Context, code, user string) error
}
