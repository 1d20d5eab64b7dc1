package domain

import apperrors "github.com/nemagoudarshrirang-sys/study-streak/internal/platform/errors"

type BreakState string

const (
	BreakIdle    BreakState = "idle"
	BreakRunning BreakState = "running"
	BreakExpired BreakState = "expired"
)

// Break is the independent break countdown. It shares the session timer's
// tick granularity but owns no completion side effects beyond expiry.
type Break struct {
	state     BreakState
	remaining int
}

func NewBreak() *Break {
	return &Break{state: BreakIdle}
}

func (b *Break) Start(minutes int) error {
	if b.state == BreakRunning {
		return apperrors.ErrBreakRunning
	}
	if minutes <= 0 {
		return apperrors.ErrInvalidInput
	}
	b.remaining = minutes * 60
	b.state = BreakRunning
	return nil
}

// Tick advances the break by one second, reporting expiry exactly once.
func (b *Break) Tick() (expired bool) {
	if b.state != BreakRunning {
		return false
	}
	b.remaining--
	if b.remaining > 0 {
		return false
	}
	b.remaining = 0
	b.state = BreakExpired
	return true
}

// End cancels or acknowledges the break.
func (b *Break) End() {
	b.state = BreakIdle
	b.remaining = 0
}

func (b *Break) State() BreakState { return b.state }
func (b *Break) Remaining() int    { return b.remaining }
func (b *Break) Running() bool     { return b.state == BreakRunning }
