package formatter

import (
	"fmt"
	"time"

	"github.com/tallyhq/tally/internal/domain"
)

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Money renders an amount as currency with two decimals.
func Money(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// Hours renders a fractional hour figure with one decimal.
func Hours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

// ClockTime renders a timestamp as HH:MM.
func ClockTime(t time.Time) string {
	return t.Format("15:04")
}

// TimeRange renders "09:00–17:30", marking a next-day end with "+1".
func TimeRange(start, end time.Time) string {
	suffix := ""
	if domain.DateOf(end) != domain.DateOf(start) {
		suffix = "+1"
	}
	return fmt.Sprintf("%s–%s%s", ClockTime(start), ClockTime(end), suffix)
}

// Elapsed renders a live duration as H:MM:SS.
func Elapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// HumanDate renders a date, collapsing today and yesterday.
func HumanDate(t time.Time) string {
	now := time.Now()
	if domain.DateOf(t) == domain.DateOf(now) {
		return "Today"
	}
	if domain.DateOf(t) == domain.DateOf(now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}
