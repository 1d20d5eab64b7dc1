package out_test

import (
	"context"
	"testing"

	out "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/adapter/out"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/domain"
)

type memKV struct {
	values map[string]string
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func TestSnapshotRoundtrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := &memKV{values: map[string]string{}}
	store := out.NewKVSnapshotStore(kv)

	if _, ok, err := store.Load(ctx); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	if err := store.Save(ctx, domain.Snapshot{Running: true, Remaining: 1234}); err != nil {
		t.Fatalf("save: %v", err)
	}
	// The wire document keeps the historical field names.
	if got := kv.values["timer_state"]; got != `{"running":true,"totalSeconds":1234}` {
		t.Fatalf("stored document: %s", got)
	}

	snapshot, ok, err := store.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if !snapshot.Running || snapshot.Remaining != 1234 {
		t.Fatalf("snapshot: %+v", snapshot)
	}
}

func TestCorruptSnapshotReadsAsAbsent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := &memKV{values: map[string]string{"timer_state": "{broken"}}
	store := out.NewKVSnapshotStore(kv)

	_, ok, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("corrupt snapshot must read as absent")
	}
}
