package domain

import (
	"errors"
	"testing"

	apperrors "github.com/nemagoudarshrirang-sys/study-streak/internal/platform/errors"
)

func TestMachineStartPauseResume(t *testing.T) {
	t.Parallel()
	m := NewMachine(1500)
	if m.State() != StateIdle {
		t.Fatalf("new machine should be idle, got %s", m.State())
	}
	if err := m.Start(1500); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Start(1500); !errors.Is(err, apperrors.ErrTimerRunning) {
		t.Fatalf("second start should fail with ErrTimerRunning, got %v", err)
	}
	m.Tick(1500)
	m.Tick(1500)
	if err := m.Pause(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if got := m.Remaining(); got != 1498 {
		t.Fatalf("remaining after two ticks: got %d want 1498", got)
	}
	// Starting a paused machine resumes with remaining intact, ignoring the
	// fresh duration.
	if err := m.Start(900); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if got := m.Remaining(); got != 1498 {
		t.Fatalf("resume should keep remaining, got %d", got)
	}
	if err := m.Pause(); err != nil {
		t.Fatalf("pause again: %v", err)
	}
	if err := m.Pause(); !errors.Is(err, apperrors.ErrTimerNotRunning) {
		t.Fatalf("pausing a paused machine should fail, got %v", err)
	}
}

func TestMachineTickCompletesExactlyOnce(t *testing.T) {
	t.Parallel()
	m := NewMachine(3)
	if err := m.Start(3); err != nil {
		t.Fatalf("start: %v", err)
	}
	completions := 0
	for i := 0; i < 10; i++ {
		if m.Tick(1500) {
			completions++
		}
	}
	if completions != 1 {
		t.Fatalf("expected exactly one completion, got %d", completions)
	}
	if m.State() != StateIdle {
		t.Fatalf("machine should reseed to idle after completing, got %s", m.State())
	}
	if got := m.Remaining(); got != 1500 {
		t.Fatalf("machine should reseed remaining to fresh duration, got %d", got)
	}
}

func TestMachineTickIgnoredWhenNotRunning(t *testing.T) {
	t.Parallel()
	m := NewMachine(10)
	if m.Tick(10) {
		t.Fatalf("idle tick must not complete")
	}
	if got := m.Remaining(); got != 10 {
		t.Fatalf("idle tick must not decrement, got %d", got)
	}
	if err := m.Start(10); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Pause(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if m.Tick(10) {
		t.Fatalf("paused tick must not complete")
	}
	if got := m.Remaining(); got != 10 {
		t.Fatalf("paused tick must not decrement, got %d", got)
	}
}

func TestMachineReset(t *testing.T) {
	t.Parallel()
	m := NewMachine(1500)
	if err := m.Start(1500); err != nil {
		t.Fatalf("start: %v", err)
	}
	m.Tick(1500)
	m.Reset(900)
	if m.State() != StateIdle {
		t.Fatalf("reset should return to idle, got %s", m.State())
	}
	if got := m.Remaining(); got != 900 {
		t.Fatalf("reset should reseed to full duration, got %d", got)
	}
}

func TestMachineResumeAndSeed(t *testing.T) {
	t.Parallel()
	m := NewMachine(1500)
	m.Resume(0)
	if m.State() != StateIdle {
		t.Fatalf("resume with no remaining must stay idle")
	}
	m.Resume(42)
	if m.State() != StateRunning || m.Remaining() != 42 {
		t.Fatalf("resume(42): state=%s remaining=%d", m.State(), m.Remaining())
	}

	m2 := NewMachine(1500)
	m2.Seed(300)
	if m2.State() != StateIdle || m2.Remaining() != 300 {
		t.Fatalf("seed(300): state=%s remaining=%d", m2.State(), m2.Remaining())
	}
	m2.Seed(0)
	if m2.Remaining() != 300 {
		t.Fatalf("seed(0) must be ignored, got %d", m2.Remaining())
	}
	if err := m2.Start(1500); err != nil {
		t.Fatalf("start seeded: %v", err)
	}
	if got := m2.Remaining(); got != 1500 {
		t.Fatalf("starting from idle uses the fresh duration, got %d", got)
	}
}

func TestMachineSnapshot(t *testing.T) {
	t.Parallel()
	m := NewMachine(120)
	snap := m.Snapshot()
	if snap.Running || snap.Remaining != 120 {
		t.Fatalf("idle snapshot: %+v", snap)
	}
	if err := m.Start(120); err != nil {
		t.Fatalf("start: %v", err)
	}
	m.Tick(120)
	snap = m.Snapshot()
	if !snap.Running || snap.Remaining != 119 {
		t.Fatalf("running snapshot: %+v", snap)
	}
}
