package out

import "context"

// StateStore is the durable key-value store shared by every view of the app.
// Values survive process restarts; a corrupt or missing value is treated as
// absent by callers, never as a fatal error.
type StateStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Subscribe registers a storage-changed observer. The key passed to fn
	// may be empty when the writer is another process; observers must
	// tolerate signals for keys they do not care about.
	Subscribe(fn func(key string)) (cancel func())
	Close() error
}
