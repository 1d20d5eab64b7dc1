package out

import "context"

// Identity resolves the local user and joined group from the durable
// settings. The user name is an opaque display string; uniqueness is the
// remote store's problem, not ours.
type Identity interface {
	UserName(ctx context.Context) (string, error)
	GroupCode(ctx context.Context) (string, error)
	SetGroupCode(ctx context.Context, code string) error
	AutoEnter(ctx context.Context) (bool, error)
}
