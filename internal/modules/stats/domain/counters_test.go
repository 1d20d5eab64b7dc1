package domain

import "testing"

func TestTodayCounterRolled(t *testing.T) {
	t.Parallel()
	today := day("2026-09-01")

	same := TodayCounter{Date: "2026-09-01", Count: 3}
	if got := same.Rolled(today); got != same {
		t.Fatalf("same-day counter must be unchanged, got %+v", got)
	}

	stale := TodayCounter{Date: "2026-08-31", Count: 3}
	got := stale.Rolled(today)
	if got.Date != "2026-09-01" || got.Count != 0 {
		t.Fatalf("stale counter should reset: %+v", got)
	}

	empty := TodayCounter{}
	got = empty.Rolled(today)
	if got.Date != "2026-09-01" || got.Count != 0 {
		t.Fatalf("empty counter should adopt today: %+v", got)
	}
}

func TestSubjectsApply(t *testing.T) {
	t.Parallel()
	subjects := Subjects{}
	today := day("2026-09-01")
	subjects.Apply("math", 25, today)
	subjects.Apply("math", 50, today)
	subjects.Apply("physics", 15, today)

	math := subjects["math"]
	if math.Minutes != 75 || math.Sessions != 2 || math.LastDate != "2026-09-01" {
		t.Fatalf("math stat: %+v", math)
	}
	physics := subjects["physics"]
	if physics.Minutes != 15 || physics.Sessions != 1 {
		t.Fatalf("physics stat: %+v", physics)
	}
}
