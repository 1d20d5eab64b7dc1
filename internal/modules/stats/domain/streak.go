package domain

import "time"

const dayLayout = "2006-01-02"

// StreakRecord tracks consecutive study days. A missed day holds the streak
// instead of zeroing it; only an explicit user reset ever clears it.
type StreakRecord struct {
	Streak   int    `json:"streak"`
	LastDate string `json:"lastDate"`
}

// Reconcile applies a completed session on the given day. A second completion
// on the same day is a no-op, a completion on the day after LastDate extends
// the streak, and any longer gap holds the streak at its previous value
// (clamped to at least 1).
func (r StreakRecord) Reconcile(today time.Time) StreakRecord {
	day := today.Format(dayLayout)
	if r.LastDate == day {
		return r
	}
	if r.LastDate == today.AddDate(0, 0, -1).Format(dayLayout) {
		r.Streak++
	} else if r.Streak < 1 {
		r.Streak = 1
	}
	r.LastDate = day
	return r
}
