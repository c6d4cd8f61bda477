package domain

import (
	"fmt"
	"time"
)

// DateLayout is the canonical layout for work dates.
const DateLayout = "2006-01-02"

const minutesPerDay = 24 * 60

// ComputeDuration returns the duration in minutes between two wall-clock
// timestamps, using only the hour/minute of day of each. An end at or before
// the start is treated as having crossed midnight, so 22:30 to 01:15 yields
// 165 minutes. Never negative.
func ComputeDuration(start, end time.Time) int {
	return NormalizeMinutes(minuteOfDay(start), minuteOfDay(end))
}

// NormalizeMinutes computes a duration from two minute-of-day values,
// applying cross-midnight normalization when endMin <= startMin.
func NormalizeMinutes(startMin, endMin int) int {
	if endMin <= startMin {
		endMin += minutesPerDay
	}
	d := endMin - startMin
	if d < 0 {
		return 0
	}
	return d
}

// FormatDuration renders minutes as whole hours and minutes, e.g. "2h 45m".
// Zero renders as "0h 0m" rather than being omitted.
func FormatDuration(min int) string {
	if min < 0 {
		min = 0
	}
	return fmt.Sprintf("%dh %dm", min/60, min%60)
}

// DateOf returns the work date string for a timestamp.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
