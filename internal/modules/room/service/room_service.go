package service

import (
	"context"
	"fmt"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/domain"
	roomout "github.com/nemagoudarshrirang-sys/study-streak/internal/modules/room/port/out"
	apperrors "github.com/nemagoudarshrirang-sys/study-streak/internal/platform/errors"
)

const presenceTimeout = 5 * time.Second

// RoomService handles focus-room membership and presence. Presence writes
// are always fire-and-forget: they run on their own goroutine with their own
// deadline, log failures and never surface an error to the timer path.
type RoomService struct {
	store    roomout.GroupStore
	identity roomout.Identity
	log      hclog.Logger
}

func NewRoomService(store roomout.GroupStore, identity roomout.Identity, log hclog.Logger) *RoomService {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &RoomService{store: store, identity: identity, log: log}
}

func (s *RoomService) Join(ctx context.Context, code string) (domain.Group, error) {
	if err := domain.ValidateCode(code); err != nil {
		return domain.Group{}, err
	}
	user, err := s.identity.UserName(ctx)
	if err != nil {
		return domain.Group{}, err
	}
	group, err := s.store.Join(ctx, code, user)
	if err != nil {
		return domain.Group{}, fmt.Errorf("join group %s: %w", code, err)
	}
	if err := s.identity.SetGroupCode(ctx, code); err != nil {
		return domain.Group{}, err
	}
	return group, nil
}

func (s *RoomService) LeaveGroup(ctx context.Context) error {
	code, user, err := s.membership(ctx)
	if err != nil {
		return err
	}
	// Retract presence first so no stale marker survives the departure.
	if err := s.store.ClearActive(ctx, code, user); err != nil {
		s.log.Warn("clear presence on leave", "group", code, "error", err)
	}
	if err := s.store.Leave(ctx, code, user); err != nil {
		return fmt.Errorf("leave group %s: %w", code, err)
	}
	return s.identity.SetGroupCode(ctx, "")
}

func (s *RoomService) Group(ctx context.Context) (domain.Group, error) {
	code, _, err := s.membership(ctx)
	if err != nil {
		return domain.Group{}, err
	}
	group, err := s.store.Get(ctx, code)
	if err != nil {
		return domain.Group{}, fmt.Errorf("fetch group %s: %w", code, err)
	}
	return group, nil
}

// Enter asserts this device's "actively focusing" marker. No-op without a
// joined group or when auto-enter is disabled.
func (s *RoomService) Enter(ctx context.Context) {
	code, user, err := s.membership(ctx)
	if err != nil {
		return
	}
	if auto, err := s.identity.AutoEnter(ctx); err != nil || !auto {
		return
	}
	go func() {
		callCtx, cancel := context.WithTimeout(context.Background(), presenceTimeout)
		defer cancel()
		if err := s.store.SetActive(callCtx, code, user); err != nil {
			s.log.Warn("failed to enter focus room", "group", code, "error", err)
		}
	}()
}

// Leave retracts the marker. Unlike Enter it ignores the auto-enter flag so
// a marker set while the flag was on still gets cleaned up.
func (s *RoomService) Leave(ctx context.Context) {
	code, user, err := s.membership(ctx)
	if err != nil {
		return
	}
	go func() {
		callCtx, cancel := context.WithTimeout(context.Background(), presenceTimeout)
		defer cancel()
		if err := s.store.ClearActive(callCtx, code, user); err != nil {
			s.log.Warn("failed to leave focus room", "group", code, "error", err)
		}
	}()
}

func (s *RoomService) membership(ctx context.Context) (code, user string, err error) {
	code, err = s.identity.GroupCode(ctx)
	if err != nil {
		return "", "", err
	}
	if code == "" {
		return "", "", apperrors.ErrNoGroupJoined
	}
	user, err = s.identity.UserName(ctx)
	if err != nil {
		return "", "", err
	}
	return code, user, nil
}
