package aggregate

import (
	"math"
	"time"

	"github.com/tallyhq/tally/internal/domain"
)

// Bucket is one derived aggregation window. Buckets are rebuilt from scratch
// on every call and never stored; callers own any caching.
type Bucket struct {
	Label     string
	StartDate time.Time
	EndDate   time.Time

	// TotalHours is the precise total, kept to one decimal place. It is the
	// value to use for sums and percentages.
	TotalHours float64

	// DisplayHours is TotalHours rounded to the nearest whole hour, for bar
	// heights and headline counters only.
	DisplayHours int

	EntryCount int
	Weekend    bool
}

// WeekStart returns the Sunday beginning the week that contains anchor.
func WeekStart(anchor time.Time) time.Time {
	d := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// WeekBuckets buckets entries into the 7 calendar days of the week containing
// anchor, Sunday through Saturday. Entries are matched by WorkDate equality;
// the date is never re-derived from StartTime, since the two legitimately
// differ for sessions that crossed midnight.
func WeekBuckets(entries []*domain.TimeEntry, anchor time.Time) []Bucket {
	start := WeekStart(anchor)
	buckets := make([]Bucket, 7)
	for i := range buckets {
		day := start.AddDate(0, 0, i)
		buckets[i] = dayBucket(entries, day)
	}
	return buckets
}

// MonthBuckets buckets entries into every calendar day of the month
// containing anchor.
func MonthBuckets(entries []*domain.TimeEntry, anchor time.Time) []Bucket {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	buckets := make([]Bucket, daysInMonth)
	for i := range buckets {
		buckets[i] = dayBucket(entries, first.AddDate(0, 0, i))
	}
	return buckets
}

// MonthWeeks groups the month of anchor into Sunday-aligned weeks for list
// display. Weeks at the month boundary are truncated to the days that fall
// inside the month.
func MonthWeeks(entries []*domain.TimeEntry, anchor time.Time) []Bucket {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	last := first.AddDate(0, 1, -1)

	var weeks []Bucket
	weekStart := first
	for !weekStart.After(last) {
		weekEnd := WeekStart(weekStart).AddDate(0, 0, 6)
		if weekEnd.After(last) {
			weekEnd = last
		}

		b := Bucket{
			Label:     weekStart.Format("Jan 2") + " - " + weekEnd.Format("Jan 2"),
			StartDate: weekStart,
			EndDate:   weekEnd,
		}
		minutes := 0
		for d := weekStart; !d.After(weekEnd); d = d.AddDate(0, 0, 1) {
			date := domain.DateOf(d)
			for _, e := range entries {
				if e.WorkDate == date {
					minutes += e.DurationMinutes
					b.EntryCount++
				}
			}
		}
		b.TotalHours = PreciseHours(minutes)
		b.DisplayHours = DisplayHours(minutes)
		weeks = append(weeks, b)

		weekStart = weekEnd.AddDate(0, 0, 1)
	}
	return weeks
}

func dayBucket(entries []*domain.TimeEntry, day time.Time) Bucket {
	date := domain.DateOf(day)
	wd := day.Weekday()
	b := Bucket{
		Label:     wd.String()[:3] + " " + date,
		StartDate: day,
		EndDate:   day,
		Weekend:   wd == time.Saturday || wd == time.Sunday,
	}
	minutes := 0
	for _, e := range entries {
		if e.WorkDate == date {
			minutes += e.DurationMinutes
			b.EntryCount++
		}
	}
	b.TotalHours = PreciseHours(minutes)
	b.DisplayHours = DisplayHours(minutes)
	return b
}

// PreciseHours converts minutes to hours with one decimal place.
func PreciseHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*10) / 10
}

// DisplayHours converts minutes to the nearest whole hour.
func DisplayHours(minutes int) int {
	return int(math.Round(float64(minutes) / 60))
}
