package domain

import apperrors "github.com/nemagoudarshrirang-sys/study-streak/internal/platform/errors"

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Snapshot is the persisted countdown state. The JSON field names match the
// historical timer_state document so existing stores resume cleanly.
type Snapshot struct {
	Running   bool `json:"running"`
	Remaining int  `json:"totalSeconds"`
}

// Machine is the session countdown state machine. Completion fires exactly
// once per countdown reaching zero; the machine then reseeds to the fresh
// duration and returns to Idle. Remaining never goes below zero.
type Machine struct {
	state     State
	remaining int
}

func NewMachine(duration int) *Machine {
	return &Machine{state: StateIdle, remaining: duration}
}

// Start begins a fresh countdown from Idle or resumes a paused one with its
// remaining seconds intact.
func (m *Machine) Start(duration int) error {
	switch m.state {
	case StateRunning:
		return apperrors.ErrTimerRunning
	case StateIdle:
		m.remaining = duration
	}
	m.state = StateRunning
	return nil
}

func (m *Machine) Pause() error {
	if m.state != StateRunning {
		return apperrors.ErrTimerNotRunning
	}
	m.state = StatePaused
	return nil
}

// Reset stops any countdown and reseeds to the full duration. Confirmation
// is the caller's concern; the machine only mutates.
func (m *Machine) Reset(duration int) {
	m.state = StateIdle
	m.remaining = duration
}

// Resume re-enters Running with a persisted remaining count, used when a
// restarted process finds a live snapshot.
func (m *Machine) Resume(remaining int) {
	if remaining <= 0 {
		return
	}
	m.remaining = remaining
	m.state = StateRunning
}

// Seed sets the idle remaining seconds without starting, used to restore a
// non-running snapshot.
func (m *Machine) Seed(remaining int) {
	if m.state != StateIdle || remaining <= 0 {
		return
	}
	m.remaining = remaining
}

// Tick advances the countdown by one second. When the countdown reaches
// zero it reports completion exactly once, reseeds to the given duration and
// returns to Idle.
func (m *Machine) Tick(reseed int) (completed bool) {
	if m.state != StateRunning {
		return false
	}
	m.remaining--
	if m.remaining > 0 {
		return false
	}
	m.remaining = reseed
	m.state = StateIdle
	return true
}

func (m *Machine) State() State   { return m.state }
func (m *Machine) Remaining() int { return m.remaining }
func (m *Machine) Running() bool  { return m.state == StateRunning }

func (m *Machine) Snapshot() Snapshot {
	return Snapshot{Running: m.state == StateRunning, Remaining: m.remaining}
}
