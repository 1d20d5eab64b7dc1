package domain

import "time"

// TodayCounter is the per-day session count. The stored date is checked on
// every read so the counter lazily resets at day rollover.
type TodayCounter struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Rolled returns the counter valid for today, resetting the count when the
// stored date is stale. Prior History entries are untouched by a rollover.
func (c TodayCounter) Rolled(today time.Time) TodayCounter {
	day := today.Format(dayLayout)
	if c.Date != day {
		return TodayCounter{Date: day}
	}
	return c
}

// History maps a day key (yyyy-mm-dd) to the number of sessions completed
// that day. A day's entry is overwritten with the running counter on every
// completion, never incremented independently.
type History map[string]int

// SubjectStat accumulates per-subject effort; mutated only on completion
// while a current subject is set.
type SubjectStat struct {
	Minutes  int    `json:"minutes"`
	Sessions int    `json:"sessions"`
	LastDate string `json:"lastDate"`
}

type Subjects map[string]SubjectStat

// Apply credits one completed session of the given length to the subject.
func (s Subjects) Apply(subject string, minutes int, today time.Time) {
	stat := s[subject]
	stat.Minutes += minutes
	stat.Sessions++
	stat.LastDate = today.Format(dayLayout)
	s[subject] = stat
}
