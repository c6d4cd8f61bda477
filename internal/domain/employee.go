package domain

import "time"

// Employee carries the compensation data needed for budget rollups.
type Employee struct {
	ID            string
	Name          string
	MonthlySalary float64
	// HourlyRate, when set, takes precedence over salary derivation.
	HourlyRate *float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TeamMember is one resolved member of a project team. Depending on which
// resolution strategy produced it, the cost/minute totals may be zero.
type TeamMember struct {
	EmployeeID   string
	Name         string
	Source       TeamSource
	TotalMinutes int
	TotalCost    float64
}

// EmployeeBreakdown is the per-employee hours/cost slice returned by the
// stats endpoint of the store.
type EmployeeBreakdown struct {
	EmployeeID string
	Name       string
	Hours      float64
	Cost       float64
}
