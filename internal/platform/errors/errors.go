package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrTimerRunning      = errors.New("timer is already running")
	ErrTimerNotRunning   = errors.New("timer is not running")
	ErrBreakRunning      = errors.New("a break is already running")
	ErrResetNotConfirmed = errors.New("reset was not confirmed")
	ErrNoGroupJoined     = errors.New("no focus group joined")
)
