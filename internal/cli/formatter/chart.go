package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tallyhq/tally/internal/aggregate"
	"github.com/tallyhq/tally/internal/domain"
)

const (
	barWidth    = 24
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBarChart renders one bar per bucket, scaled against the larger of
// the busiest bucket and a full working day. Bars show the whole-hour
// display figure; the caller's summary keeps the precise totals.
func RenderBarChart(buckets []aggregate.Bucket) string {
	scale := aggregate.BarScale(buckets)

	var b strings.Builder
	for _, bucket := range buckets {
		b.WriteString(renderBar(bucket, scale))
		b.WriteString("\n")
	}
	return b.String()
}

func renderBar(bucket aggregate.Bucket, scale float64) string {
	frac := aggregate.BarFraction(bucket.TotalHours, scale)
	filled := int(frac * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, barWidth-filled)
	style := StyleGreen
	switch {
	case bucket.Weekend:
		style = StyleDim
	case bucket.TotalHours == 0:
		style = StyleDim
	}

	label := fmt.Sprintf("%-14s", bucket.Label)
	hours := fmt.Sprintf("%dh", bucket.DisplayHours)
	return fmt.Sprintf("%s %s %s", StyleFg.Render(label), style.Render(bar), StyleBold.Render(hours))
}

// RenderBudgetBar renders spend against budget as a progress bar with the
// utilization percentage. Red past the budget, yellow from 80%.
func RenderBudgetBar(r aggregate.Rollup, width int) string {
	if width < 2 {
		width = 2
	}

	frac := 0.0
	if r.UtilizationPercent > 0 {
		frac = r.UtilizationPercent / 100
	}
	if frac > 1 {
		frac = 1
	}

	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case r.OverBudget:
		style = StyleRed
	case r.UtilizationPercent >= 80:
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %.1f%%", style.Render(bar), r.UtilizationPercent)
}

// SummaryLine renders the one-line footer under a report chart.
func SummaryLine(s aggregate.Summary) string {
	minutes := int(math.Round(s.TotalHours * 60))
	return fmt.Sprintf("%s tracked · %d active days · %d tasks",
		StyleBold.Render(domain.FormatDuration(minutes)),
		s.ActiveDays, s.TaskCount)
}

// WeekRangeLabel renders "Jan 7 – Jan 13, 2024" for a week starting at start.
func WeekRangeLabel(start time.Time) string {
	end := start.AddDate(0, 0, 6)
	return fmt.Sprintf("%s – %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
}
