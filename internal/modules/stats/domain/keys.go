package domain

// Store keys. The values under these keys are JSON documents except for the
// scalar counters and settings, which are stored as plain strings.
const (
	KeyStreak           = "studyStreak"
	KeyTodaySessions    = "todaySessions"
	KeyTodayDate        = "todayDate"
	KeyHistory          = "studyHistory"
	KeyTotalMinutes     = "totalMinutes"
	KeySubjects         = "subjects"
	KeyPlan             = "plan"
	KeyCurrentSubject   = "currentSubject"
	KeyTimerState       = "timer_state"
	KeySessionLength    = "sessionLength"
	KeyFocusIntensity   = "focusIntensity"
	KeyAutoPlan         = "autoPlan"
	KeyAutoFocusRoom    = "autoFocusRoom"
	KeyFocusReminder    = "focusReminder"
	KeySessionMood      = "sessionMood"
	KeySessionIntention = "sessionIntention"
	KeyGroupCode        = "groupCode"
	KeyUserName         = "userName"
)
