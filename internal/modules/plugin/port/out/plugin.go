package out

import (
	"context"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/plugin/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

// Host runs a plugin binary and speaks the notifier contract to it.
type Host interface {
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Notify(ctx context.Context, manifest domain.Manifest, notification domain.Notification) error
}
