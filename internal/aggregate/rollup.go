package aggregate

import (
	"sort"

	"github.com/tallyhq/tally/internal/domain"
)

// Salary-to-rate derivation constants. A month is counted as 24 working
// days of 8 hours when only a monthly salary is known.
const (
	WorkingDaysPerMonth = 24
	HoursPerDay         = 8
)

// BudgetLine is the derived per-employee cost row. It has no identity and is
// rebuilt on every rollup.
type BudgetLine struct {
	EmployeeID  string
	Name        string
	TotalHours  float64
	HourlyRate  float64
	TotalCost   float64
	CostPercent float64
}

// Rollup is the project-level budget utilization summary.
type Rollup struct {
	PerEmployee        []BudgetLine
	TotalSpent         float64
	Remaining          float64
	UtilizationPercent float64
	OverBudget         bool
}

// HourlyRate resolves an employee's rate. An explicit rate wins; otherwise
// the rate is derived from the monthly salary.
func HourlyRate(e *domain.Employee) float64 {
	derived := e.MonthlySalary / (WorkingDaysPerMonth * HoursPerDay)
	return domain.Float64FromPtrWithDefault(derived, e.HourlyRate)
}

// ComputeRollup derives per-employee cost lines from entries and rolls them
// up against the project budget. Entries from employees missing from the
// directory still contribute hours, at a zero rate. A zero budget yields
// zero utilization, never a division error, and Remaining is floored at
// zero; over-budget detection uses the raw difference.
func ComputeRollup(entries []*domain.TimeEntry, employees []*domain.Employee, projectBudget float64) Rollup {
	byID := make(map[string]*domain.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	minutesPer := make(map[string]int)
	var order []string
	for _, e := range entries {
		if _, seen := minutesPer[e.EmployeeID]; !seen {
			order = append(order, e.EmployeeID)
		}
		minutesPer[e.EmployeeID] += e.DurationMinutes
	}

	var lines []BudgetLine
	total := 0.0
	for _, id := range order {
		hours := PreciseHours(minutesPer[id])
		line := BudgetLine{
			EmployeeID: id,
			TotalHours: hours,
		}
		if emp, ok := byID[id]; ok {
			line.Name = emp.Name
			line.HourlyRate = HourlyRate(emp)
		}
		line.TotalCost = hours * line.HourlyRate
		total += line.TotalCost
		lines = append(lines, line)
	}

	for i := range lines {
		if total > 0 {
			lines[i].CostPercent = lines[i].TotalCost / total * 100
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].TotalCost > lines[j].TotalCost
	})

	r := Rollup{
		PerEmployee: lines,
		TotalSpent:  total,
		OverBudget:  total > projectBudget,
	}
	if projectBudget > 0 {
		r.UtilizationPercent = total / projectBudget * 100
	}
	if remaining := projectBudget - total; remaining > 0 {
		r.Remaining = remaining
	}
	return r
}
