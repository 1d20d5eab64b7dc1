package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/domain"
	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/service"
	apperrors "github.com/nemagoudarshrirang-sys/study-streak/internal/platform/errors"
)

type fakeGroupStore struct {
	mu      sync.Mutex
	group   domain.Group
	joins   []string
	leaves  []string
	sets    []string
	clears  []string
	touched chan struct{}
	fail    error
}

func newFakeGroupStore() *fakeGroupStore {
	return &fakeGroupStore{touched: make(chan struct{}, 8)}
}

func (f *fakeGroupStore) Get(_ context.Context, code string) (domain.Group, error) {
	if f.fail != nil {
		return domain.Group{}, f.fail
	}
	return f.group, nil
}

func (f *fakeGroupStore) Join(_ context.Context, code, user string) (domain.Group, error) {
	if f.fail != nil {
		return domain.Group{}, f.fail
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.joins = append(f.joins, code+"/"+user)
	f.group = domain.Group{Code: code, Members: []string{user}}
	return f.group, nil
}

func (f *fakeGroupStore) Leave(_ context.Context, code, user string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leaves = append(f.leaves, code+"/"+user)
	return f.fail
}

func (f *fakeGroupStore) SetActive(_ context.Context, code, user string) error {
	f.mu.Lock()
	f.sets = append(f.sets, code+"/"+user)
	f.mu.Unlock()
	f.touched <- struct{}{}
	return f.fail
}

func (f *fakeGroupStore) ClearActive(_ context.Context, code, user string) error {
	f.mu.Lock()
	f.clears = append(f.clears, code+"/"+user)
	f.mu.Unlock()
	f.touched <- struct{}{}
	return f.fail
}

type fakeIdentity struct {
	user      string
	groupCode string
	autoEnter bool
}

func (f *fakeIdentity) UserName(context.Context) (string, error)  { return f.user, nil }
func (f *fakeIdentity) GroupCode(context.Context) (string, error) { return f.groupCode, nil }
func (f *fakeIdentity) SetGroupCode(_ context.Context, code string) error {
	f.groupCode = code
	return nil
}
func (f *fakeIdentity) AutoEnter(context.Context) (bool, error) { return f.autoEnter, nil }

func awaitPresence(t *testing.T, store *fakeGroupStore) {
	t.Helper()
	select {
	case <-store.touched:
	case <-time.After(2 * time.Second):
		t.Fatalf("presence write never happened")
	}
}

func TestJoinValidatesAndStoresCode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFakeGroupStore()
	identity := &fakeIdentity{user: "ana"}
	svc := service.NewRoomService(store, identity, nil)

	if _, err := svc.Join(ctx, "   "); !errors.Is(err, domain.ErrInvalidGroupCode) {
		t.Fatalf("blank code should be rejected, got %v", err)
	}

	group, err := svc.Join(ctx, "exam-crew")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if group.Code != "exam-crew" {
		t.Fatalf("joined group: %+v", group)
	}
	if identity.groupCode != "exam-crew" {
		t.Fatalf("group code not persisted: %q", identity.groupCode)
	}
	if len(store.joins) != 1 || store.joins[0] != "exam-crew/ana" {
		t.Fatalf("join calls: %v", store.joins)
	}
}

func TestLeaveGroupRetractsPresenceFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFakeGroupStore()
	identity := &fakeIdentity{user: "ana", groupCode: "exam-crew"}
	svc := service.NewRoomService(store, identity, nil)

	if err := svc.LeaveGroup(ctx); err != nil {
		t.Fatalf("leave group: %v", err)
	}
	if len(store.clears) != 1 || store.clears[0] != "exam-crew/ana" {
		t.Fatalf("presence clear calls: %v", store.clears)
	}
	if len(store.leaves) != 1 || store.leaves[0] != "exam-crew/ana" {
		t.Fatalf("leave calls: %v", store.leaves)
	}
	if identity.groupCode != "" {
		t.Fatalf("group code should be cleared, got %q", identity.groupCode)
	}
}

func TestGroupWithoutMembership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.NewRoomService(newFakeGroupStore(), &fakeIdentity{user: "ana"}, nil)

	if _, err := svc.Group(ctx); !errors.Is(err, apperrors.ErrNoGroupJoined) {
		t.Fatalf("no-group fetch should fail with ErrNoGroupJoined, got %v", err)
	}
	if err := svc.LeaveGroup(ctx); !errors.Is(err, apperrors.ErrNoGroupJoined) {
		t.Fatalf("no-group leave should fail with ErrNoGroupJoined, got %v", err)
	}
}

func TestEnterPublishesWhenAutoEnterOn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFakeGroupStore()
	svc := service.NewRoomService(store, &fakeIdentity{user: "ana", groupCode: "exam-crew", autoEnter: true}, nil)

	svc.Enter(ctx)
	awaitPresence(t, store)
	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.sets) != 1 || store.sets[0] != "exam-crew/ana" {
		t.Fatalf("presence set calls: %v", store.sets)
	}
}

func TestEnterSkippedWhenAutoEnterOff(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFakeGroupStore()
	svc := service.NewRoomService(store, &fakeIdentity{user: "ana", groupCode: "exam-crew", autoEnter: false}, nil)

	svc.Enter(ctx)
	svc.Enter(ctx)
	time.Sleep(50 * time.Millisecond)
	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.sets) != 0 {
		t.Fatalf("auto-enter off must not publish, got %v", store.sets)
	}
}

func TestLeaveIgnoresAutoEnterFlag(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFakeGroupStore()
	svc := service.NewRoomService(store, &fakeIdentity{user: "ana", groupCode: "exam-crew", autoEnter: false}, nil)

	svc.Leave(ctx)
	awaitPresence(t, store)
	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.clears) != 1 {
		t.Fatalf("presence clear calls: %v", store.clears)
	}
}

func TestEnterWithoutGroupIsNoop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFakeGroupStore()
	svc := service.NewRoomService(store, &fakeIdentity{user: "ana", autoEnter: true}, nil)

	svc.Enter(ctx)
	svc.Leave(ctx)
	time.Sleep(50 * time.Millisecond)
	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.sets) != 0 || len(store.clears) != 0 {
		t.Fatalf("no-group presence writes: sets=%v clears=%v", store.sets, store.clears)
	}
}
