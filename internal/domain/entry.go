package domain

import "time"

// TimeEntry is one logged interval of work against a task. It is the only
// durable entity in the core; everything else is derived from slices of it.
type TimeEntry struct {
	ID         string
	TaskID     string
	EmployeeID string
	ProjectID  string

	// WorkDate is the calendar date the entry is attributed to. A session
	// crossing midnight keeps the date it began on, so WorkDate may differ
	// from the date component of EndTime.
	WorkDate  string
	StartTime time.Time
	EndTime   time.Time

	// OriginalStartTime/OriginalEndTime are set exactly once, on the first
	// edit, to the pre-edit values. Subsequent edits never touch them.
	OriginalStartTime *time.Time
	OriginalEndTime   *time.Time

	// DurationMinutes is always recomputed from StartTime/EndTime; it is
	// never accepted from caller input.
	DurationMinutes int

	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Edited reports whether the entry has been modified since creation. The
// presence of the original fields is the canonical signal; UpdatedAt
// differing from CreatedAt is informational only and can be skewed by
// store-side touches.
func (e *TimeEntry) Edited() bool {
	return e.OriginalStartTime != nil || e.OriginalEndTime != nil
}

// CaptureOriginal records the current start/end as the audit originals if
// they have not been captured before. Returns true when the capture happened.
func (e *TimeEntry) CaptureOriginal() bool {
	if e.Edited() {
		return false
	}
	start := e.StartTime
	end := e.EndTime
	e.OriginalStartTime = &start
	e.OriginalEndTime = &end
	return true
}

// MinEntryMinutes is the minimum recorded duration for any entry. Sessions
// under one minute are rejected before persistence.
const MinEntryMinutes = 1
