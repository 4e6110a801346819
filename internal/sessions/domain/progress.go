package domain

import "time"

// Progress is the state of a session's daily time window.
type Progress struct {
	Goal        time.Duration
	Elapsed     time.Duration
	LastStarted time.Time
}

// Remaining is the time left before the daily goal is met.
func (p Progress) Remaining() time.Duration {
	if p.Elapsed >= p.Goal {
		return 0
	}
	return p.Goal - p.Elapsed
}

// Percent is the goal completion in [0, 100].
func (p Progress) Percent() float64 {
	if p.Goal <= 0 {
		return 0
	}
	return float64(p.Elapsed) / float64(p.Goal) * 100
}

// AdvanceProgress computes the daily progress window for a session with the
// given goal. If lastStarted is zero or falls on a prior local calendar day,
// the window resets: elapsed is zero and the returned LastStarted is now.
// Otherwise elapsed is now−lastStarted clamped to the goal, so reported
// progress never exceeds 100%.
func AdvanceProgress(goal time.Duration, lastStarted, now time.Time) Progress {
	if lastStarted.IsZero() || !sameCalendarDay(lastStarted, now) {
		return Progress{Goal: goal, Elapsed: 0, LastStarted: now}
	}

	elapsed := now.Sub(lastStarted)
	if elapsed > goal {
		elapsed = goal
	}
	return Progress{Goal: goal, Elapsed: elapsed, LastStarted: lastStarted}
}

// sameCalendarDay compares local calendar dates, not a rolling 24h window.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
