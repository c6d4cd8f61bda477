package aggregate

import (
	"math"
	"time"

	"github.com/tallyhq/tally/internal/domain"
)

// referenceHours is the scale floor for bar charts: the scale never shrinks
// below an 8-hour day, so a short effort does not visually fill the chart.
const referenceHours = 8.0

// Summary is the headline rollup over a set of buckets.
type Summary struct {
	Buckets []Bucket

	// TotalHours is precise (one decimal); DisplayHours is the whole-hour
	// headline counter. The two must never be conflated.
	TotalHours   float64
	DisplayHours int

	ActiveDays int
	TaskCount  int
}

// WeekSummary aggregates entries for the week containing anchor.
func WeekSummary(entries []*domain.TimeEntry, anchor time.Time) Summary {
	return summarize(entries, WeekBuckets(entries, anchor))
}

// MonthSummary aggregates entries for the month containing anchor.
func MonthSummary(entries []*domain.TimeEntry, anchor time.Time) Summary {
	return summarize(entries, MonthBuckets(entries, anchor))
}

// DashboardWeek is WeekSummary with the weekend display policy applied:
// Saturday and Sunday totals are forced to zero regardless of logged
// entries. The raw entries are untouched; this is presentation policy only.
func DashboardWeek(entries []*domain.TimeEntry, anchor time.Time) Summary {
	buckets := WeekBuckets(entries, anchor)
	for i := range buckets {
		if buckets[i].Weekend {
			buckets[i].TotalHours = 0
			buckets[i].DisplayHours = 0
		}
	}
	s := Summary{Buckets: buckets}
	total := 0.0
	for _, b := range buckets {
		total += b.TotalHours
		if b.TotalHours > 0 {
			s.ActiveDays++
		}
	}
	s.TotalHours = roundTenth(total)
	s.DisplayHours = roundWhole(total)
	s.TaskCount = countTasks(entries, buckets)
	return s
}

// BarScale returns the chart scale for a set of buckets: the largest precise
// total observed, floored at referenceHours.
func BarScale(buckets []Bucket) float64 {
	scale := referenceHours
	for _, b := range buckets {
		if b.TotalHours > scale {
			scale = b.TotalHours
		}
	}
	return scale
}

// BarFraction returns the height fraction (0..1) for a bucket against the
// given scale.
func BarFraction(hours, scale float64) float64 {
	if scale <= 0 {
		return 0
	}
	f := hours / scale
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func summarize(entries []*domain.TimeEntry, buckets []Bucket) Summary {
	s := Summary{Buckets: buckets}
	total := 0.0
	for _, b := range buckets {
		total += b.TotalHours
		if b.EntryCount > 0 {
			s.ActiveDays++
		}
	}
	s.TotalHours = roundTenth(total)
	s.DisplayHours = roundWhole(total)
	s.TaskCount = countTasks(entries, buckets)
	return s
}

// countTasks counts distinct tasks among entries dated within the bucket range.
func countTasks(entries []*domain.TimeEntry, buckets []Bucket) int {
	if len(buckets) == 0 {
		return 0
	}
	inRange := make(map[string]bool)
	for _, b := range buckets {
		inRange[domain.DateOf(b.StartDate)] = true
	}
	tasks := make(map[string]bool)
	for _, e := range entries {
		if inRange[e.WorkDate] {
			tasks[e.TaskID] = true
		}
	}
	return len(tasks)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundWhole(v float64) int {
	return int(math.Round(v))
}
