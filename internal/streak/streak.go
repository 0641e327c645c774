// Package streak implements the daily-activity counters — the one piece of
// stateful decision logic in the app.
//
// The update is evaluated once per activity event (a quiz submission) and
// works entirely on calendar-date strings ("YYYY-MM-DD"): the question is
// never "how long ago", only "which day". Keeping the functions pure (state
// in, state out, today passed as a parameter) means tests pick the date and
// no clock abstraction is needed.
package streak

import "time"

// DateFormat is the calendar-date layout used everywhere: in the users
// table, the progress log, and the reminder gate.
const DateFormat = "2006-01-02"

// Policy names the streak-reset rule in force. The app's history has two
// incompatible rules, so the choice is an explicit, named configuration
// value — exactly one policy runs per deployment, and they are never mixed.
type Policy string

const (
	// PolicyCumulative: any active day adds 1 to streak and total_days,
	// no matter how long the absence before it. Streak never resets; it
	// is effectively "days active", monotonically non-decreasing. This is
	// the default.
	PolicyCumulative Policy = "cumulative"

	// PolicyConsecutive: streak counts consecutive days. Activity the day
	// after the last active day increments it; a gap of two or more days
	// resets it to 1. total_days still counts every active day.
	PolicyConsecutive Policy = "consecutive"
)

// Valid reports whether p is a known policy.
func (p Policy) Valid() bool {
	return p == PolicyCumulative || p == PolicyConsecutive
}

// State is the per-user streak bookkeeping as read from the user row.
type State struct {
	Streak     int
	TotalDays  int
	LastActive string // "YYYY-MM-DD" or "" for no activity yet
}

// Update applies one activity event on the given day and returns the new
// state plus whether anything changed.
//
// Invariants, under both policies:
//   - a second event on the same day changes nothing (changed == false)
//   - total_days increments by exactly 1 per distinct active day
//   - counters never decrease, except the consecutive policy's reset of
//     streak to 1 after a missed day
func Update(p Policy, s State, today string) (State, bool) {
	if s.LastActive == today {
		return s, false
	}

	switch p {
	case PolicyConsecutive:
		if s.LastActive == yesterdayOf(today) {
			s.Streak++
		} else {
			// First-ever activity or a gap of >= 2 days: the run starts over.
			s.Streak = 1
		}
	default: // PolicyCumulative
		s.Streak++
	}

	s.TotalDays++
	s.LastActive = today
	return s, true
}

// yesterdayOf returns the calendar day before a "YYYY-MM-DD" date.
// An unparseable date yields "" and therefore never matches — the caller
// then takes the reset branch, which is the safe default for bad data.
func yesterdayOf(date string) string {
	t, err := time.Parse(DateFormat, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DateFormat)
}
