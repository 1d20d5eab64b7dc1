package dto

import "time"

// Event kinds delivered to notifier plugins.
const (
	EventSessionCompleted = "session_completed"
	EventBreakOver        = "break_over"
	EventReminder         = "reminder"
)

type Event struct {
	Kind          string
	SessionID     string
	Subject       string
	Minutes       int
	Streak        int
	TodaySessions int
	TotalMinutes  int
	Message       string
	At            time.Time
}

type PluginInfo struct {
	Name         string
	Version      string
	Binary       string
	Capabilities []string
	Healthy      bool
	Error        string
}
