package out

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/domain"
	timerout "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/timer/port/out"
)

const snapshotKey = "timer_state"

// KV is the slice of the shared state store this adapter needs.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// KVSnapshotStore keeps the live countdown under the timer_state key of the
// durable store, written on every tick.
type KVSnapshotStore struct {
	kv KV
}

func NewKVSnapshotStore(kv KV) timerout.SnapshotStore {
	return &KVSnapshotStore{kv: kv}
}

func (s *KVSnapshotStore) Save(ctx context.Context, snapshot domain.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal timer snapshot: %w", err)
	}
	if err := s.kv.Set(ctx, snapshotKey, string(payload)); err != nil {
		return fmt.Errorf("write timer snapshot: %w", err)
	}
	return nil
}

// Load returns the persisted snapshot; a missing or corrupt document reads
// as absent.
func (s *KVSnapshotStore) Load(ctx context.Context) (domain.Snapshot, bool, error) {
	raw, ok, err := s.kv.Get(ctx, snapshotKey)
	if err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("read timer snapshot: %w", err)
	}
	if !ok || raw == "" {
		return domain.Snapshot{}, false, nil
	}
	var snapshot domain.Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return domain.Snapshot{}, false, nil
	}
	return snapshot, true, nil
}
