package dto

// Setting keys accepted by Setting/SetSetting/Flag, exported here so other
// modules can reference them without reaching into the stats domain.
const (
	SettingSessionLength    = "sessionLength"
	SettingFocusIntensity   = "focusIntensity"
	SettingAutoPlan         = "autoPlan"
	SettingAutoFocusRoom    = "autoFocusRoom"
	SettingFocusReminder    = "focusReminder"
	SettingSessionMood      = "sessionMood"
	SettingSessionIntention = "sessionIntention"
	SettingGroupCode        = "groupCode"
	SettingUserName         = "userName"
)

type CompletionInput struct {
	Subject string
	Minutes int
}

type CompletionOutput struct {
	Streak        int
	TodaySessions int
	TotalMinutes  int
}

type ProgressOutput struct {
	TotalMinutes  int
	TodaySessions int
}

type StreakOutput struct {
	Streak   int
	LastDate string
}

type HeatCellOutput struct {
	Date  string
	Count int
	Color string
}

type PlanEntryOutput struct {
	Subject string
	Target  int
	Done    int
}

type SubjectOutput struct {
	Name     string
	Minutes  int
	Sessions int
	LastDate string
}
