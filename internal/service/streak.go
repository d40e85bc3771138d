package service

import "time"

// DefaultStreakWindow bounds how many recent events a streak scan considers
// when no window is configured. A streak can never be reported longer than
// the window.
const DefaultStreakWindow = 30

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns midnight of the Sunday on or before t.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// endOfMonth returns midnight of the last day of t's month.
func endOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
	return firstOfNext.AddDate(0, 0, -1)
}

// computeStreak counts consecutive calendar days ending today with at least
// one event. Events are normalized to their calendar day; the walk starts at
// today and stops at the first day without an event, so a day gap breaks the
// streak and no event today means zero. Callers pass the most recent events
// only (bounded window), which caps the reportable streak at the window size.
func computeStreak(events []time.Time, now time.Time) int {
	if len(events) == 0 {
		return 0
	}

	days := make(map[time.Time]struct{}, len(events))
	for _, e := range events {
		days[startOfDay(e.In(now.Location()))] = struct{}{}
	}

	streak := 0
	for day := startOfDay(now); ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[day]; !ok {
			break
		}
		streak++
	}
	return streak
}
