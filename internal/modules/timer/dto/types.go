package dto

type StatusOutput struct {
	State          string
	Remaining      int
	BreakState     string
	BreakRemaining int
	Status         string
	Completed      bool
	BreakExpired   bool
}
