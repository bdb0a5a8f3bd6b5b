package progress

import "time"

// DateLayout is the calendar-day key used for streaks and daily XP.
const DateLayout = "2006-01-02"

// DayKey returns the UTC calendar day of t.
func DayKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// NextStreak returns the streak after completing something on today, given
// the previous completion day and streak length.
//
// Completing again on the same day leaves the streak unchanged, completing
// on the day after lastSolvedDate extends it, and any other gap (or no
// previous completion) starts over at 1.
func NextStreak(lastSolvedDate string, streak int, today string) int {
	switch lastSolvedDate {
	case today:
		return streak
	case previousDay(today):
		return max(1, streak+1)
	default:
		return 1
	}
}

// previousDay returns the calendar day before day, or "" if day is not a
// valid date key.
func previousDay(day string) string {
	t, err := time.Parse(DateLayout, day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DateLayout)
}
