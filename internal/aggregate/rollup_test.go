package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyhq/tally/internal/domain"
)

func TestHourlyRate_DerivedFromSalary(t *testing.T) {
	e := &domain.Employee{ID: "e1", MonthlySalary: 48000}
	// 48000 / (24 * 8) = 250
	assert.Equal(t, 250.0, HourlyRate(e))
}

func TestHourlyRate_ExplicitWins(t *testing.T) {
	rate := 300.0
	e := &domain.Employee{ID: "e1", MonthlySalary: 48000, HourlyRate: &rate}
	assert.Equal(t, 300.0, HourlyRate(e))
}

func TestComputeRollup_PerEmployeeCosts(t *testing.T) {
	employees := []*domain.Employee{
		{ID: "e1", Name: "Asha", MonthlySalary: 48000},
		{ID: "e2", Name: "Birk", MonthlySalary: 96000},
	}
	entries := []*domain.TimeEntry{
		entry("2024-01-08", 600, "t1", "e1"), // 10h * 250 = 2500
		entry("2024-01-09", 120, "t2", "e2"), // 2h * 500 = 1000
	}

	r := ComputeRollup(entries, employees, 10000)
	require.Len(t, r.PerEmployee, 2)

	// Sorted by cost, highest first.
	assert.Equal(t, "e1", r.PerEmployee[0].EmployeeID)
	assert.Equal(t, 2500.0, r.PerEmployee[0].TotalCost)
	assert.Equal(t, 1000.0, r.PerEmployee[1].TotalCost)

	assert.Equal(t, 3500.0, r.TotalSpent)
	assert.Equal(t, 6500.0, r.Remaining)
	assert.Equal(t, 35.0, r.UtilizationPercent)
	assert.False(t, r.OverBudget)

	assert.InDelta(t, 71.4, r.PerEmployee[0].CostPercent, 0.1)
	assert.InDelta(t, 28.6, r.PerEmployee[1].CostPercent, 0.1)
}

func TestComputeRollup_ZeroBudget(t *testing.T) {
	employees := []*domain.Employee{{ID: "e1", MonthlySalary: 48000}}
	entries := []*domain.TimeEntry{entry("2024-01-08", 60, "t1", "e1")}

	r := ComputeRollup(entries, employees, 0)
	assert.Equal(t, 0.0, r.UtilizationPercent)
	assert.Equal(t, 0.0, r.Remaining)
	assert.Equal(t, 250.0, r.TotalSpent)
	assert.True(t, r.OverBudget)
}

func TestComputeRollup_OverBudget(t *testing.T) {
	employees := []*domain.Employee{{ID: "e1", MonthlySalary: 48000}}
	entries := []*domain.TimeEntry{entry("2024-01-08", 600, "t1", "e1")}

	r := ComputeRollup(entries, employees, 1000)
	assert.Equal(t, 2500.0, r.TotalSpent)
	assert.Equal(t, 0.0, r.Remaining, "remaining never negative")
	assert.True(t, r.OverBudget)
	assert.Equal(t, 250.0, r.UtilizationPercent)
}

func TestComputeRollup_UnknownEmployeeZeroRate(t *testing.T) {
	entries := []*domain.TimeEntry{entry("2024-01-08", 120, "t1", "ghost")}

	r := ComputeRollup(entries, nil, 1000)
	require.Len(t, r.PerEmployee, 1)
	assert.Equal(t, 2.0, r.PerEmployee[0].TotalHours)
	assert.Equal(t, 0.0, r.PerEmployee[0].TotalCost)
	assert.Equal(t, 0.0, r.TotalSpent)
}

func TestComputeRollup_Empty(t *testing.T) {
	r := ComputeRollup(nil, nil, 5000)
	assert.Empty(t, r.PerEmployee)
	assert.Equal(t, 0.0, r.TotalSpent)
	assert.Equal(t, 5000.0, r.Remaining)
	assert.False(t, r.OverBudget)
}
