package out_test

import (
	"context"
	"path/filepath"
	"testing"

	out "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/stats/adapter/out"
)

func newStore(t *testing.T) *out.SQLiteStateStore {
	t.Helper()
	store, err := out.NewSQLiteStateStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStateStoreRoundtrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t)

	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "streak", `{"streak":3}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := store.Get(ctx, "streak")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if value != `{"streak":3}` {
		t.Fatalf("value: %q", value)
	}

	// Last writer wins per key.
	if err := store.Set(ctx, "streak", `{"streak":4}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _, _ = store.Get(ctx, "streak")
	if value != `{"streak":4}` {
		t.Fatalf("overwritten value: %q", value)
	}

	if err := store.Delete(ctx, "streak"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "streak"); ok {
		t.Fatalf("deleted key still present")
	}
	if err := store.Delete(ctx, "streak"); err != nil {
		t.Fatalf("deleting a missing key must be a no-op: %v", err)
	}
}

func TestStateStoreSurvivesReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "state.db")

	store, err := out.NewSQLiteStateStore(dbPath)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Set(ctx, "totalMinutes", "125"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := out.NewSQLiteStateStore(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	value, ok, err := reopened.Get(ctx, "totalMinutes")
	if err != nil || !ok {
		t.Fatalf("get after reopen: ok=%v err=%v", ok, err)
	}
	if value != "125" {
		t.Fatalf("value after reopen: %q", value)
	}
}

func TestStateStoreSubscribe(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t)

	var keys []string
	cancel := store.Subscribe(func(key string) { keys = append(keys, key) })

	if err := store.Set(ctx, "plan", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Delete(ctx, "plan"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(keys) != 2 || keys[0] != "plan" || keys[1] != "plan" {
		t.Fatalf("observed keys: %v", keys)
	}

	cancel()
	if err := store.Set(ctx, "plan", "[]"); err != nil {
		t.Fatalf("set after cancel: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("cancelled observer still notified: %v", keys)
	}
}
